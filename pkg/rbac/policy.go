package rbac

import "github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"

// Screen identifies a top-level console screen
type Screen string

const (
	ScreenDashboard    Screen = "dashboard"
	ScreenPatients     Screen = "patients"
	ScreenDoctors      Screen = "doctors"
	ScreenAppointments Screen = "appointments"
	ScreenBilling      Screen = "billing"
	ScreenInventory    Screen = "inventory"
	ScreenReports      Screen = "reports"
	ScreenSettings     Screen = "settings"
)

// ScreenRoles maps each screen to the roles allowed to open it. An
// absent entry means the screen is open to any authenticated user.
var ScreenRoles = map[Screen]RoleSet{
	ScreenDashboard:    {},
	ScreenPatients:     {types.RoleAdmin, types.RoleDoctor, types.RoleNurse, types.RoleReceptionist},
	ScreenDoctors:      {},
	ScreenAppointments: {},
	ScreenBilling:      {types.RoleAdmin, types.RoleReceptionist},
	ScreenInventory:    {types.RoleAdmin, types.RoleNurse, types.RoleDoctor},
	ScreenReports:      {types.RoleAdmin},
	ScreenSettings:     {types.RoleAdmin},
}

// Action identifies a mutating affordance inside a screen. The route
// gate does not protect these; each is re-checked against the identity
// before it is offered.
type Action string

const (
	ActionBookAppointment     Action = "appointment.book"
	ActionEditAppointment     Action = "appointment.edit"
	ActionDeleteAppointment   Action = "appointment.delete"
	ActionConfirmAppointment  Action = "appointment.confirm"
	ActionCompleteAppointment Action = "appointment.complete"
	ActionCancelAppointment   Action = "appointment.cancel"

	ActionManagePatients  Action = "patient.manage"
	ActionManageDoctors   Action = "doctor.manage"
	ActionManageBills     Action = "bill.manage"
	ActionRecordPayment   Action = "bill.payment"
	ActionManageInventory Action = "inventory.manage"
	ActionRestockItem     Action = "inventory.restock"
)

// actionRoles maps each mutating affordance to the roles that may use it.
var actionRoles = map[Action]RoleSet{
	ActionBookAppointment:     {types.RoleAdmin, types.RoleReceptionist, types.RolePatient},
	ActionEditAppointment:     {types.RoleAdmin, types.RoleReceptionist, types.RoleDoctor},
	ActionDeleteAppointment:   {types.RoleAdmin, types.RoleReceptionist},
	ActionConfirmAppointment:  {types.RoleAdmin, types.RoleDoctor, types.RoleReceptionist},
	ActionCompleteAppointment: {types.RoleAdmin, types.RoleDoctor},
	ActionCancelAppointment:   {types.RoleAdmin, types.RoleReceptionist, types.RolePatient},

	ActionManagePatients:  {types.RoleAdmin, types.RoleReceptionist},
	ActionManageDoctors:   {types.RoleAdmin},
	ActionManageBills:     {types.RoleAdmin, types.RoleReceptionist},
	ActionRecordPayment:   {types.RoleAdmin, types.RoleReceptionist},
	ActionManageInventory: {types.RoleAdmin, types.RoleNurse},
	ActionRestockItem:     {types.RoleAdmin, types.RoleNurse},
}

// Allowed reports whether the role may use the action. Unknown actions
// are denied.
func Allowed(role types.RoleTag, action Action) bool {
	set, ok := actionRoles[action]
	if !ok {
		return false
	}
	if allowed := set.Contains(role); !allowed {
		return false
	}
	// Patients may book for themselves through the patient portal, but
	// the admin console hides the booking affordance from them.
	if action == ActionBookAppointment && role == types.RolePatient {
		return false
	}
	return true
}

// RolesFor returns the role requirement for a screen. A nil or empty
// result means any authenticated user may open it.
func RolesFor(screen Screen) RoleSet {
	return ScreenRoles[screen]
}
