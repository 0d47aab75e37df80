package service

import (
	"context"
	"errors"

	"self-order-api/models"
	"self-order-api/statemachine"
)

func (s *Service) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return s.store.Reservations().GetAll(ctx)
}

// BookTable creates a reservation from guest input. New reservations are
// always confirmed.
func (s *Service) BookTable(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	if res.Name == "" {
		return models.Reservation{}, errors.New("reservation name is required")
	}
	if res.Date == "" || res.Time == "" {
		return models.Reservation{}, errors.New("reservation date and time are required")
	}
	if res.Guests < 1 || res.Guests > 20 {
		return models.Reservation{}, errors.New("guest count must be between 1 and 20")
	}
	res.Status = models.ReservationConfirmed

	created, err := s.store.Reservations().Create(ctx, res)
	if err != nil {
		return models.Reservation{}, err
	}
	s.log.Info("reservation created", "id", created.ID, "name", created.Name,
		"date", created.Date, "guests", created.Guests)
	return created, nil
}

// UpdateReservationStatus moves a reservation along confirmed → cancelled.
// Cancelled is terminal.
func (s *Service) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	reservations, err := s.store.Reservations().GetAll(ctx)
	if err != nil {
		return models.Reservation{}, err
	}
	var current *models.Reservation
	for i := range reservations {
		if reservations[i].ID == id {
			current = &reservations[i]
			break
		}
	}
	if current == nil {
		return models.Reservation{}, errors.New("reservation not found: " + id)
	}
	if err := statemachine.CanCancelReservation(current.Status, status); err != nil {
		return models.Reservation{}, err
	}
	return s.store.Reservations().UpdateStatus(ctx, id, status)
}
