package console

import (
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/internal/booking"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/rbac"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// The route guard only decides whether a screen renders. Every
// mutating affordance inside a screen re-checks the role on its own,
// so a viewer allowed onto a screen still sees only the actions their
// role permits.

// Navigation returns the screens the identity may open, in sidebar
// order. A nil identity sees nothing.
func Navigation(identity *types.User) []rbac.Screen {
	if identity == nil {
		return nil
	}
	ordered := []rbac.Screen{
		rbac.ScreenDashboard,
		rbac.ScreenPatients,
		rbac.ScreenDoctors,
		rbac.ScreenAppointments,
		rbac.ScreenBilling,
		rbac.ScreenInventory,
		rbac.ScreenReports,
		rbac.ScreenSettings,
	}
	var visible []rbac.Screen
	for _, screen := range ordered {
		required := rbac.RolesFor(screen)
		if required.Empty() || required.Contains(identity.Role) {
			visible = append(visible, screen)
		}
	}
	return visible
}

// CanBookAppointment reports whether the appointments screen offers
// the booking affordance to the identity
func CanBookAppointment(identity *types.User) bool {
	if identity == nil {
		return false
	}
	return rbac.Allowed(identity.Role, rbac.ActionBookAppointment)
}

// AppointmentActions returns the affordances the identity may use on
// one appointment row. Status transitions are offered only along the
// allowed path from the appointment's current status.
func AppointmentActions(identity *types.User, apt *types.Appointment) []rbac.Action {
	if identity == nil || apt == nil {
		return nil
	}
	var actions []rbac.Action

	if rbac.Allowed(identity.Role, rbac.ActionConfirmAppointment) &&
		booking.CanTransition(apt.Status, types.StatusConfirmed) {
		actions = append(actions, rbac.ActionConfirmAppointment)
	}
	if rbac.Allowed(identity.Role, rbac.ActionCompleteAppointment) &&
		booking.CanTransition(apt.Status, types.StatusCompleted) {
		actions = append(actions, rbac.ActionCompleteAppointment)
	}
	if rbac.Allowed(identity.Role, rbac.ActionCancelAppointment) &&
		booking.CanTransition(apt.Status, types.StatusCancelled) {
		actions = append(actions, rbac.ActionCancelAppointment)
	}
	if rbac.Allowed(identity.Role, rbac.ActionEditAppointment) {
		actions = append(actions, rbac.ActionEditAppointment)
	}
	if rbac.Allowed(identity.Role, rbac.ActionDeleteAppointment) {
		actions = append(actions, rbac.ActionDeleteAppointment)
	}
	return actions
}

// ListFilters scopes the appointment list for the identity. Patients
// see only their own appointments.
func ListFilters(identity *types.User) types.AppointmentFilters {
	filters := types.AppointmentFilters{}
	if identity != nil && identity.Role == types.RolePatient {
		filters.PatientID = identity.ID
	}
	return filters
}
