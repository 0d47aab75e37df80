package statemachine

import (
	"testing"

	"self-order-api/models"
)

func TestLinearChain(t *testing.T) {
	valid := []struct{ from, to models.OrderStatus }{
		{models.StatusPending, models.StatusCooking},
		{models.StatusCooking, models.StatusReady},
		{models.StatusReady, models.StatusCompleted},
	}
	for _, tc := range valid {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Errorf("expected %s → %s to be valid: %v", tc.from, tc.to, err)
		}
	}
}

func TestNoSkipsOrBackwardEdges(t *testing.T) {
	invalid := []struct{ from, to models.OrderStatus }{
		{models.StatusPending, models.StatusReady},     // skip
		{models.StatusPending, models.StatusCompleted}, // skip
		{models.StatusCooking, models.StatusPending},   // backward
		{models.StatusReady, models.StatusCooking},     // backward
		{models.StatusCompleted, models.StatusPending}, // from terminal
		{models.StatusPending, models.StatusPending},   // self loop
	}
	for _, tc := range invalid {
		if err := CanTransition(tc.from, tc.to); err == nil {
			t.Errorf("expected %s → %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestNext(t *testing.T) {
	next, ok := Next(models.StatusPending)
	if !ok || next != models.StatusCooking {
		t.Errorf("Next(pending) = %s, %v; want cooking, true", next, ok)
	}
	if _, ok := Next(models.StatusCompleted); ok {
		t.Error("completed must be terminal")
	}
}

func TestReservationLifecycle(t *testing.T) {
	if err := CanCancelReservation(models.ReservationConfirmed, models.ReservationCancelled); err != nil {
		t.Errorf("confirmed → cancelled should be valid: %v", err)
	}
	if err := CanCancelReservation(models.ReservationCancelled, models.ReservationConfirmed); err == nil {
		t.Error("cancelled must be terminal")
	}
	if err := CanCancelReservation(models.ReservationCancelled, models.ReservationCancelled); err == nil {
		t.Error("cancelling twice must be rejected")
	}
}
