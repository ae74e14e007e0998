package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// PasswordChange is the body of a self-service password change.
type PasswordChange struct {
	Current string `json:"current_password" validate:"required"`
	New     string `json:"new_password" validate:"required"`
	Confirm string `json:"confirm_password"`
}

// Login returns the principal whose username, password and role all match.
// Passwords are compared as stored, in plain text.
func (s *Service) Login(ctx context.Context, username, password string, role models.Role) (Principal, error) {
	if username == "" || password == "" || !role.Valid() {
		return Principal{}, ErrInvalidCredentials
	}

	u, err := s.store.Authenticate(ctx, username, password, role)
	if errors.Is(err, store.ErrNotFound) {
		logging.FromContext(ctx).Info("login failed", "username", username, "role", role)
		return Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		return Principal{}, fmt.Errorf("authenticate: %w", err)
	}

	return Principal{UserID: u.ID, Username: u.Username, Role: u.Role, Name: u.Name}, nil
}

// ChangePassword replaces the signed-in user's password after checking the
// current one.
func (s *Service) ChangePassword(ctx context.Context, in PasswordChange) error {
	p, err := requireRole(ctx)
	if err != nil {
		return err
	}

	u, err := s.store.GetUser(ctx, p.UserID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && u.Password != in.Current) {
		return ErrWrongPassword
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if in.New != in.Confirm {
		return ErrPasswordMismatch
	}
	if err := checkInput(in); err != nil {
		return err
	}

	if err := s.store.UpdatePassword(ctx, p.UserID, in.New); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	logging.FromContext(ctx).Info("password changed", "user_id", p.UserID)
	return nil
}
