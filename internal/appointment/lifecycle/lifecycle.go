package lifecycle

import (
	"fmt"

	"appointment-scheduler/internal/appointment/model"
	appErrors "appointment-scheduler/pkg/errors"
)

// State machine for appointment status transitions. Cancelled and completed
// are terminal.
var validTransitions = map[model.Status][]model.Status{
	model.StatusScheduled: {
		model.StatusCancelled,
		model.StatusCompleted,
	},
	model.StatusCancelled: {},
	model.StatusCompleted: {},
}

// ValidateStatusTransition checks whether moving from currentStatus to
// newStatus is allowed. Setting the same status again is a no-op and always
// permitted.
func ValidateStatusTransition(currentStatus, newStatus model.Status) error {
	if currentStatus == newStatus {
		return nil
	}

	allowed, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			nil,
		)
	}

	if IsTerminal(currentStatus) {
		return appErrors.NewAppError(
			"INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition from terminal status %s", currentStatus),
			nil,
		)
	}

	for _, status := range allowed {
		if newStatus == status {
			return nil
		}
	}

	return appErrors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		nil,
	)
}

// IsTerminal reports whether no transition is defined away from the status.
func IsTerminal(status model.Status) bool {
	return len(validTransitions[status]) == 0
}
