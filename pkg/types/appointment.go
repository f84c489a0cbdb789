package types

// AppointmentStatus represents appointment status values
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Terminal reports whether no further transition is allowed out of the status.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AppointmentType represents appointment type values
type AppointmentType string

const (
	TypeConsultation   AppointmentType = "Consultation"
	TypeFollowUp       AppointmentType = "Follow-up"
	TypeEmergency      AppointmentType = "Emergency"
	TypeRoutineCheckup AppointmentType = "Routine Checkup"
	TypeTest           AppointmentType = "Test"
)

// AppointmentTypes lists the closed set of bookable appointment types.
var AppointmentTypes = []AppointmentType{
	TypeConsultation,
	TypeFollowUp,
	TypeEmergency,
	TypeRoutineCheckup,
	TypeTest,
}

// TimeSlot represents a wall-clock booking window. Start and End are
// HH:MM strings, never timestamps.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Empty reports whether neither endpoint of the slot has been chosen.
func (ts TimeSlot) Empty() bool {
	return ts.Start == "" && ts.End == ""
}

// AvailableSlot is one bookable window published by a doctor for a date.
type AvailableSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Appointment represents an appointment as returned by the API, with
// patient and doctor references populated.
type Appointment struct {
	ID              string            `json:"_id"`
	Patient         *PatientRef       `json:"patient"`
	Doctor          *DoctorRef        `json:"doctor"`
	Date            string            `json:"date"`
	TimeSlot        TimeSlot          `json:"timeSlot"`
	AppointmentType AppointmentType   `json:"appointmentType"`
	Reason          string            `json:"reason"`
	Symptoms        []string          `json:"symptoms"`
	Notes           string            `json:"notes,omitempty"`
	Status          AppointmentStatus `json:"status"`
}

// PatientRef is the populated patient reference inside an appointment
type PatientRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// DoctorRef is the populated doctor reference inside an appointment
type DoctorRef struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

// AppointmentRequest is the payload sent to create or update an
// appointment. Date is a YYYY-MM-DD calendar-date string.
type AppointmentRequest struct {
	Patient         string          `json:"patient"`
	Doctor          string          `json:"doctor"`
	Date            string          `json:"date"`
	TimeSlot        TimeSlot        `json:"timeSlot"`
	AppointmentType AppointmentType `json:"appointmentType"`
	Reason          string          `json:"reason"`
	Symptoms        []string        `json:"symptoms"`
	Notes           string          `json:"notes,omitempty"`
}

// AppointmentFilters represents filters for appointment list queries
type AppointmentFilters struct {
	PatientID string
	DoctorID  string
	Status    AppointmentStatus
	Date      string
	Search    string
	Page      int
	Limit     int
}
