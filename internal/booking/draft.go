package booking

import (
	"strings"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// Draft is the transient form state for one create or edit. It lives
// from form open to form close and is never reused.
type Draft struct {
	// AppointmentID is set when editing an existing appointment.
	AppointmentID string

	PatientID string
	DoctorID  string
	// Date is a YYYY-MM-DD calendar-date string, no time component.
	Date string
	// TimeSlot is cleared whenever DoctorID or Date changes. A slot
	// chosen against one availability set must never survive into
	// another.
	TimeSlot types.TimeSlot

	AppointmentType types.AppointmentType
	Reason          string
	// SymptomsInput is the raw comma-separated text as typed.
	SymptomsInput string
	Notes         string
}

// NewDraft creates an empty draft for booking a new appointment
func NewDraft() *Draft {
	return &Draft{AppointmentType: types.TypeConsultation}
}

// DraftFromAppointment pre-fills a draft from an existing appointment
// for editing. The time slot is carried over but will be cleared by the
// availability fetch that editing triggers, forcing re-selection.
func DraftFromAppointment(apt *types.Appointment) *Draft {
	d := &Draft{
		AppointmentID:   apt.ID,
		Date:            apt.Date,
		TimeSlot:        apt.TimeSlot,
		AppointmentType: apt.AppointmentType,
		Reason:          apt.Reason,
		SymptomsInput:   strings.Join(apt.Symptoms, ", "),
		Notes:           apt.Notes,
	}
	if d.AppointmentType == "" {
		d.AppointmentType = types.TypeConsultation
	}
	if apt.Patient != nil {
		d.PatientID = apt.Patient.ID
	}
	if apt.Doctor != nil {
		d.DoctorID = apt.Doctor.ID
	}
	return d
}

// SplitSymptoms normalizes the comma-separated symptoms input into an
// ordered list: split on commas, trim each piece, drop empty pieces.
// The transformation is idempotent on its own output.
func SplitSymptoms(input string) []string {
	symptoms := []string{}
	for _, piece := range strings.Split(input, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			symptoms = append(symptoms, piece)
		}
	}
	return symptoms
}

// Request builds the normalized API payload from the draft
func (d *Draft) Request() types.AppointmentRequest {
	return types.AppointmentRequest{
		Patient:         d.PatientID,
		Doctor:          d.DoctorID,
		Date:            d.Date,
		TimeSlot:        d.TimeSlot,
		AppointmentType: d.AppointmentType,
		Reason:          d.Reason,
		Symptoms:        SplitSymptoms(d.SymptomsInput),
		Notes:           d.Notes,
	}
}
