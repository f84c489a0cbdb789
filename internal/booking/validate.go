package booking

import "time"

// FieldErrors maps field names to validation messages. Violations
// block submission and are reported per field.
type FieldErrors map[string]string

// validateDraft checks the draft at submit time. today is the current
// calendar date in the caller's location.
func validateDraft(d *Draft, today time.Time) FieldErrors {
	errs := FieldErrors{}

	if d.PatientID == "" {
		errs["patient"] = "Patient is required"
	}
	if d.DoctorID == "" {
		errs["doctor"] = "Doctor is required"
	}

	if d.Date == "" {
		errs["date"] = "Date is required"
	} else if parsed, err := time.Parse("2006-01-02", d.Date); err != nil {
		errs["date"] = "Date must be in YYYY-MM-DD format"
	} else {
		midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if parsed.Before(midnight) {
			errs["date"] = "Date cannot be in the past"
		}
	}

	if d.TimeSlot.Start == "" {
		errs["timeSlot.start"] = "Start time is required"
	}
	if d.TimeSlot.End == "" {
		errs["timeSlot.end"] = "End time is required"
	}

	if d.Reason == "" {
		errs["reason"] = "Reason is required"
	}

	return errs
}
