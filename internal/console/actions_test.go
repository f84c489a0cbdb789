package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/rbac"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

func user(role types.RoleTag) *types.User {
	return &types.User{ID: "u-" + string(role), Name: string(role), Role: role}
}

func TestNavigation(t *testing.T) {
	assert.Nil(t, Navigation(nil))

	admin := Navigation(user(types.RoleAdmin))
	assert.Len(t, admin, 8, "admin sees every screen")

	patient := Navigation(user(types.RolePatient))
	assert.Equal(t, []rbac.Screen{
		rbac.ScreenDashboard,
		rbac.ScreenDoctors,
		rbac.ScreenAppointments,
	}, patient)

	nurse := Navigation(user(types.RoleNurse))
	assert.Contains(t, nurse, rbac.ScreenInventory)
	assert.NotContains(t, nurse, rbac.ScreenBilling)
	assert.NotContains(t, nurse, rbac.ScreenReports)
}

func TestCanBookAppointment(t *testing.T) {
	assert.False(t, CanBookAppointment(nil))
	assert.True(t, CanBookAppointment(user(types.RoleAdmin)))
	assert.True(t, CanBookAppointment(user(types.RoleReceptionist)))

	// Patients can open the appointments screen but never see the
	// booking affordance there.
	assert.False(t, CanBookAppointment(user(types.RolePatient)))
	assert.False(t, CanBookAppointment(user(types.RoleDoctor)))
	assert.False(t, CanBookAppointment(user(types.RoleNurse)))
}

func TestAppointmentActions_ByRoleAndStatus(t *testing.T) {
	scheduled := &types.Appointment{ID: "a1", Status: types.StatusScheduled}
	confirmed := &types.Appointment{ID: "a2", Status: types.StatusConfirmed}
	completed := &types.Appointment{ID: "a3", Status: types.StatusCompleted}

	doctor := AppointmentActions(user(types.RoleDoctor), scheduled)
	assert.Contains(t, doctor, rbac.ActionConfirmAppointment)
	assert.Contains(t, doctor, rbac.ActionEditAppointment)
	assert.NotContains(t, doctor, rbac.ActionCompleteAppointment, "complete only from Confirmed")
	assert.NotContains(t, doctor, rbac.ActionCancelAppointment)
	assert.NotContains(t, doctor, rbac.ActionDeleteAppointment)

	doctorConfirmed := AppointmentActions(user(types.RoleDoctor), confirmed)
	assert.Contains(t, doctorConfirmed, rbac.ActionCompleteAppointment)
	assert.NotContains(t, doctorConfirmed, rbac.ActionConfirmAppointment)

	receptionist := AppointmentActions(user(types.RoleReceptionist), scheduled)
	assert.Contains(t, receptionist, rbac.ActionConfirmAppointment)
	assert.Contains(t, receptionist, rbac.ActionCancelAppointment)
	assert.Contains(t, receptionist, rbac.ActionDeleteAppointment)
	assert.NotContains(t, receptionist, rbac.ActionCompleteAppointment)

	patient := AppointmentActions(user(types.RolePatient), scheduled)
	assert.Equal(t, []rbac.Action{rbac.ActionCancelAppointment}, patient)

	// Terminal appointments offer no transitions to anyone.
	adminCompleted := AppointmentActions(user(types.RoleAdmin), completed)
	assert.NotContains(t, adminCompleted, rbac.ActionConfirmAppointment)
	assert.NotContains(t, adminCompleted, rbac.ActionCompleteAppointment)
	assert.NotContains(t, adminCompleted, rbac.ActionCancelAppointment)
	assert.Contains(t, adminCompleted, rbac.ActionEditAppointment)

	assert.Nil(t, AppointmentActions(nil, scheduled))
	assert.Nil(t, AppointmentActions(user(types.RoleAdmin), nil))
}

func TestListFilters_PatientsSeeOnlyTheirOwn(t *testing.T) {
	patient := user(types.RolePatient)
	filters := ListFilters(patient)
	assert.Equal(t, patient.ID, filters.PatientID)

	assert.Empty(t, ListFilters(user(types.RoleAdmin)).PatientID)
	assert.Empty(t, ListFilters(nil).PatientID)
}

func TestToast(t *testing.T) {
	var buf bytes.Buffer
	toast := NewToastWriter(&buf)

	toast.Success("Appointment booked successfully")
	toast.Error("Failed to fetch slots")

	out := buf.String()
	assert.Contains(t, out, "Appointment booked successfully")
	assert.Contains(t, out, "Failed to fetch slots")
}
