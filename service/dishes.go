package service

import (
	"context"
	"errors"
	"fmt"

	"self-order-api/models"
)

// Menu returns every dish, newest first.
func (s *Service) Menu(ctx context.Context) ([]models.Dish, error) {
	return s.store.Dishes().GetAll(ctx)
}

// AddDish creates a dish from staff input. New dishes always start with a
// zero sales counter; the sold-out flag defaults to false unless overridden.
func (s *Service) AddDish(ctx context.Context, dish models.Dish) (models.Dish, error) {
	if dish.Name == "" {
		return models.Dish{}, errors.New("dish name is required")
	}
	if dish.Price <= 0 {
		return models.Dish{}, errors.New("dish price must be positive")
	}
	if !models.ValidCategory(dish.Category) {
		return models.Dish{}, fmt.Errorf("invalid dish category: %q", dish.Category)
	}
	if dish.Spiciness < 0 || dish.Spiciness > 5 {
		return models.Dish{}, errors.New("spiciness must be between 0 and 5")
	}
	dish.Sales = 0

	created, err := s.store.Dishes().Create(ctx, dish)
	if err != nil {
		return models.Dish{}, err
	}
	s.log.Info("dish created", "id", created.ID, "name", created.Name)
	return created, nil
}

// UpdateDish applies a partial staff edit.
func (s *Service) UpdateDish(ctx context.Context, id int, updates models.DishUpdate) (models.Dish, error) {
	if updates.Category != nil && !models.ValidCategory(*updates.Category) {
		return models.Dish{}, fmt.Errorf("invalid dish category: %q", *updates.Category)
	}
	if updates.Price != nil && *updates.Price <= 0 {
		return models.Dish{}, errors.New("dish price must be positive")
	}
	if updates.Spiciness != nil && (*updates.Spiciness < 0 || *updates.Spiciness > 5) {
		return models.Dish{}, errors.New("spiciness must be between 0 and 5")
	}
	return s.store.Dishes().Update(ctx, id, updates)
}

func (s *Service) DeleteDish(ctx context.Context, id int) error {
	if err := s.store.Dishes().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("dish deleted", "id", id)
	return nil
}
