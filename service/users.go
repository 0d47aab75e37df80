package service

import (
	"context"
	"errors"

	"self-order-api/models"
)

// newUserPoints is the welcome balance a first-time guest starts with.
const newUserPoints = 100

// Login finds a user by nickname or creates one on first visit. Nicknames
// are the natural lookup key; uniqueness is assumed rather than enforced.
func (s *Service) Login(ctx context.Context, nickname string, role models.UserRole) (models.User, error) {
	if nickname == "" {
		return models.User{}, errors.New("nickname is required")
	}
	if role != models.RoleGuest && role != models.RoleChef {
		return models.User{}, errors.New("role must be guest or chef")
	}

	user, err := s.store.Users().GetOrCreate(ctx, models.User{
		Nickname: nickname,
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=" + nickname,
		Role:     role,
		Points:   newUserPoints,
	})
	if err != nil {
		return models.User{}, err
	}
	s.log.Info("user logged in", "id", user.ID, "nickname", user.Nickname, "role", user.Role)
	return user, nil
}
