package statemachine

import (
	"errors"

	"self-order-api/models"
)

// CanCancelReservation checks the reservation lifecycle: cancelled is only
// reachable from confirmed and is terminal.
func CanCancelReservation(from, to models.ReservationStatus) error {
	if from == models.ReservationConfirmed && to == models.ReservationCancelled {
		return nil
	}
	if from == to {
		return errors.New("reservation is already " + string(to))
	}
	return errors.New("invalid reservation transition: " + string(from) + " → " + string(to))
}
