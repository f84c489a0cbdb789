package booking

import (
	"context"
	"fmt"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/api"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// Appointments move along a constrained path:
//
//	Scheduled -> Confirmed -> Completed
//
// with Cancelled reachable from any non-terminal state. Completed and
// Cancelled are terminal.

// CanTransition reports whether from -> to is an allowed status change
func CanTransition(from, to types.AppointmentStatus) bool {
	if from.Terminal() {
		return false
	}
	switch to {
	case types.StatusConfirmed:
		return from == types.StatusScheduled
	case types.StatusCompleted:
		return from == types.StatusConfirmed
	case types.StatusCancelled:
		return true
	default:
		return false
	}
}

// NextStatuses lists the statuses reachable from the given one, in
// display order
func NextStatuses(from types.AppointmentStatus) []types.AppointmentStatus {
	var next []types.AppointmentStatus
	for _, to := range []types.AppointmentStatus{
		types.StatusConfirmed,
		types.StatusCompleted,
		types.StatusCancelled,
	} {
		if CanTransition(from, to) {
			next = append(next, to)
		}
	}
	return next
}

// TransitionStatus applies one status change through the API. The list
// is only refreshed after confirmed success; on failure the prior
// status stays displayed and the user is notified.
func TransitionStatus(ctx context.Context, client *api.Client, notifier Notifier, apt *types.Appointment, to types.AppointmentStatus, onRefresh func()) error {
	if !CanTransition(apt.Status, to) {
		return types.NewValidationError("BAD_TRANSITION",
			fmt.Sprintf("Cannot move appointment from %s to %s", apt.Status, to))
	}

	if _, err := client.UpdateAppointmentStatus(ctx, apt.ID, to); err != nil {
		notifier.Error(types.UserMessage(err, "Failed to update status"))
		return err
	}

	notifier.Success(fmt.Sprintf("Appointment %s successfully", lower(to)))
	if onRefresh != nil {
		onRefresh()
	}
	return nil
}

func lower(s types.AppointmentStatus) string {
	out := []rune(string(s))
	if len(out) > 0 && out[0] >= 'A' && out[0] <= 'Z' {
		out[0] += 'a' - 'A'
	}
	return string(out)
}
