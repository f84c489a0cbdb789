package booking

import (
	"context"
	"sync"
	"time"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/api"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/config"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/logger"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/monitoring"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// State identifies where the booking form is in its lifecycle
type State string

const (
	StateIdle                  State = "idle"
	StateLoadingReferenceData  State = "loading_reference_data"
	StateReadyNoSlotContext    State = "ready_no_slot_context"
	StateLoadingSlots          State = "loading_slots"
	StateReadyWithSlots        State = "ready_with_slots"
	StateReadyNoPublishedSlots State = "ready_no_published_slots"
	StateSubmitting            State = "submitting"
	StateClosed                State = "closed"
)

// Notifier surfaces transient user notifications, the toast analog
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Workflow drives one open booking form: reference-data loading, slot
// resolution keyed on the (doctor, date) pair, validation and submit.
// Slot responses that arrive for a superseded pair are discarded.
type Workflow struct {
	mu       sync.Mutex
	client   *api.Client
	logger   *logger.Logger
	notifier Notifier
	dirCfg   config.DirectoryConfig

	// onRefresh signals the parent appointment list after a confirmed
	// successful submit.
	onRefresh func()

	state    State
	draft    *Draft
	patients []types.Patient
	doctors  []types.Doctor
	slots    []types.AvailableSlot

	// slotEpoch tags the current (doctor, date) pair. Every change
	// bumps it; an availability response is applied only if its epoch
	// is still current on arrival.
	slotEpoch uint64

	now func() time.Time
}

// NewWorkflow creates a booking workflow in the idle state
func NewWorkflow(client *api.Client, log *logger.Logger, notifier Notifier, dirCfg config.DirectoryConfig, onRefresh func()) *Workflow {
	return &Workflow{
		client:    client,
		logger:    log,
		notifier:  notifier,
		dirCfg:    dirCfg,
		onRefresh: onRefresh,
		state:     StateIdle,
		now:       time.Now,
	}
}

// Open opens the form with an empty draft and loads reference data
func (w *Workflow) Open(ctx context.Context) {
	w.mu.Lock()
	w.draft = NewDraft()
	w.state = StateLoadingReferenceData
	w.mu.Unlock()

	w.loadReferenceData(ctx)

	w.mu.Lock()
	w.state = StateReadyNoSlotContext
	w.mu.Unlock()
}

// OpenForEdit opens the form pre-filled from an existing appointment.
// The stored (doctor, date) pair triggers an availability fetch, so a
// previously booked slot is cleared and must be re-selected against
// the current availability.
func (w *Workflow) OpenForEdit(ctx context.Context, apt *types.Appointment) {
	w.mu.Lock()
	w.draft = DraftFromAppointment(apt)
	w.state = StateLoadingReferenceData
	w.mu.Unlock()

	w.loadReferenceData(ctx)

	w.mu.Lock()
	fetch := w.draft.DoctorID != "" && w.draft.Date != ""
	if fetch {
		w.state = StateLoadingSlots
	} else {
		w.state = StateReadyNoSlotContext
	}
	w.mu.Unlock()

	if fetch {
		w.ResolveAvailability(ctx)
	}
}

// loadReferenceData fetches the patient and doctor directories in
// parallel. Either failing produces a single notification; the form
// stays usable with whatever loaded.
func (w *Workflow) loadReferenceData(ctx context.Context) {
	var (
		wg          sync.WaitGroup
		patients    []types.Patient
		doctors     []types.Doctor
		patientsErr error
		doctorsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		patients, patientsErr = w.client.ListPatients(ctx, types.DirectoryQuery{
			Limit: w.dirCfg.PatientPageSize,
		})
	}()
	go func() {
		defer wg.Done()
		active := true
		doctors, doctorsErr = w.client.ListDoctors(ctx, types.DirectoryQuery{
			IsActive: &active,
			Limit:    w.dirCfg.DoctorPageSize,
		})
	}()
	wg.Wait()

	if patientsErr != nil || doctorsErr != nil {
		w.logger.WithFields(map[string]interface{}{
			"patients_err": patientsErr,
			"doctors_err":  doctorsErr,
		}).Warn("Reference data load incomplete")
		w.notifier.Error("Failed to fetch patients/doctors")
	}

	w.mu.Lock()
	w.patients = patients
	w.doctors = doctors
	w.mu.Unlock()
}

// SetPatient sets the patient reference
func (w *Workflow) SetPatient(patientID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		w.draft.PatientID = patientID
	}
}

// SetDoctor changes the doctor reference. The chosen time slot is
// cleared immediately and any in-flight availability fetch is
// superseded. Returns true when both doctor and date are now set and
// the caller should resolve availability.
func (w *Workflow) SetDoctor(doctorID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil || w.draft.DoctorID == doctorID {
		return false
	}
	w.draft.DoctorID = doctorID
	return w.slotContextChangedLocked()
}

// SetDate changes the appointment date with the same slot-clearing
// semantics as SetDoctor.
func (w *Workflow) SetDate(date string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil || w.draft.Date == date {
		return false
	}
	w.draft.Date = date
	return w.slotContextChangedLocked()
}

// slotContextChangedLocked records a change to the (doctor, date) pair.
// Caller holds the lock.
func (w *Workflow) slotContextChangedLocked() bool {
	w.draft.TimeSlot = types.TimeSlot{}
	w.slots = nil
	w.slotEpoch++

	if w.draft.DoctorID == "" || w.draft.Date == "" {
		w.state = StateReadyNoSlotContext
		return false
	}
	w.state = StateLoadingSlots
	return true
}

// ResolveAvailability fetches the doctor's published slots for the
// current (doctor, date) pair. The response is applied only if the
// pair is still current when it arrives; a late response for a
// superseded pair is discarded. On success the chosen time slot is
// cleared unconditionally, regardless of whether the old values would
// still be valid.
func (w *Workflow) ResolveAvailability(ctx context.Context) {
	w.mu.Lock()
	if w.draft == nil || w.draft.DoctorID == "" || w.draft.Date == "" {
		w.mu.Unlock()
		return
	}
	epoch := w.slotEpoch
	doctorID := w.draft.DoctorID
	date := w.draft.Date
	w.mu.Unlock()

	slots, err := w.client.AvailableSlots(ctx, doctorID, date)

	w.mu.Lock()
	defer w.mu.Unlock()

	if epoch != w.slotEpoch {
		monitoring.RecordStaleSlotResponse()
		w.logger.Debugf("Discarding stale slot response for doctor %s on %s", doctorID, date)
		return
	}

	if err != nil {
		w.notifier.Error("Failed to fetch slots")
		w.slots = nil
		w.state = StateReadyNoPublishedSlots
		return
	}

	w.slots = slots
	w.draft.TimeSlot = types.TimeSlot{}
	if len(slots) > 0 {
		w.state = StateReadyWithSlots
	} else {
		w.state = StateReadyNoPublishedSlots
	}
}

// SelectSlot chooses the start and end time. When the doctor has
// published availability for the date, both endpoints must come from
// the fetched set; otherwise any wall-clock strings are accepted.
func (w *Workflow) SelectSlot(start, end string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return types.NewValidationError("NO_DRAFT", "No open booking form")
	}
	if len(w.slots) > 0 {
		if !w.slotStartOfferedLocked(start) {
			return types.NewValidationError("SLOT_START", "Start time is not an offered slot")
		}
		if !w.slotEndOfferedLocked(end) {
			return types.NewValidationError("SLOT_END", "End time is not an offered slot")
		}
	}
	w.draft.TimeSlot = types.TimeSlot{Start: start, End: end}
	return nil
}

func (w *Workflow) slotStartOfferedLocked(start string) bool {
	for _, s := range w.slots {
		if s.Start == start {
			return true
		}
	}
	return false
}

func (w *Workflow) slotEndOfferedLocked(end string) bool {
	for _, s := range w.slots {
		if s.End == end {
			return true
		}
	}
	return false
}

// SetType sets the appointment type
func (w *Workflow) SetType(t types.AppointmentType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		w.draft.AppointmentType = t
	}
}

// SetReason sets the required reason text
func (w *Workflow) SetReason(reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		w.draft.Reason = reason
	}
}

// SetSymptoms sets the raw comma-separated symptoms input
func (w *Workflow) SetSymptoms(input string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		w.draft.SymptomsInput = input
	}
}

// SetNotes sets the optional notes text
func (w *Workflow) SetNotes(notes string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft != nil {
		w.draft.Notes = notes
	}
}

// Submit validates the draft and delegates to the create or update
// operation. Validation violations are returned per field and block
// the call. On a failed submit the form stays open with every entered
// value intact.
func (w *Workflow) Submit(ctx context.Context) (FieldErrors, error) {
	w.mu.Lock()
	if w.draft == nil || w.state == StateClosed || w.state == StateSubmitting {
		w.mu.Unlock()
		return nil, types.NewValidationError("NOT_OPEN", "No open booking form")
	}

	if errs := validateDraft(w.draft, w.now()); len(errs) > 0 {
		w.mu.Unlock()
		return errs, nil
	}

	prev := w.state
	w.state = StateSubmitting
	req := w.draft.Request()
	appointmentID := w.draft.AppointmentID
	w.mu.Unlock()

	var err error
	if appointmentID != "" {
		_, err = w.client.UpdateAppointment(ctx, appointmentID, req)
	} else {
		_, err = w.client.CreateAppointment(ctx, req)
	}

	w.mu.Lock()
	if err != nil {
		w.state = prev
		w.mu.Unlock()
		w.notifier.Error(types.UserMessage(err, "Failed to save appointment"))
		return nil, err
	}
	w.state = StateClosed
	w.draft = nil
	w.mu.Unlock()

	if appointmentID != "" {
		w.notifier.Success("Appointment updated successfully")
	} else {
		w.notifier.Success("Appointment booked successfully")
	}
	if w.onRefresh != nil {
		w.onRefresh()
	}
	return nil, nil
}

// Close abandons the form and destroys the draft
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateClosed
	w.draft = nil
}

// State returns the current workflow state
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the current draft, or nil when the form is
// not open
func (w *Workflow) Draft() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return nil
	}
	copy := *w.draft
	return &copy
}

// Patients returns the loaded patient directory
func (w *Workflow) Patients() []types.Patient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.patients
}

// Doctors returns the loaded active-doctor directory
func (w *Workflow) Doctors() []types.Doctor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doctors
}

// Slots returns the availability set for the current (doctor, date)
func (w *Workflow) Slots() []types.AvailableSlot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slots
}
