package core

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// ClubEventInput is the admin form for a club or event.
type ClubEventInput struct {
	Name string               `json:"name" validate:"required"`
	Type models.ClubEventType `json:"type" validate:"required,oneof=club event"`
}

// AddedMessage is the confirmation shown after creating a club or event,
// e.g. "Club added successfully".
func AddedMessage(kind models.ClubEventType) string {
	return cases.Title(language.English).String(string(kind)) + " added successfully"
}

// ListClubsEvents returns the active clubs and events. It needs no session.
func (s *Service) ListClubsEvents(ctx context.Context) ([]models.ClubEvent, error) {
	return s.store.ListActiveClubsEvents(ctx)
}

// AddClubEvent creates an active club or event.
func (s *Service) AddClubEvent(ctx context.Context, in ClubEventInput) (int64, error) {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return 0, err
	}
	if err := checkInput(in); err != nil {
		return 0, err
	}
	id, err := s.store.CreateClubEvent(ctx, in.Name, in.Type)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", in.Type, err)
	}
	return id, nil
}

// UpdateClubEvent renames or retypes entry id.
func (s *Service) UpdateClubEvent(ctx context.Context, id int64, in ClubEventInput) error {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return err
	}
	if err := checkInput(in); err != nil {
		return err
	}
	err := s.store.UpdateClubEvent(ctx, id, in.Name, in.Type)
	if errors.Is(err, store.ErrNotFound) {
		return ErrClubEventNotFound
	}
	return err
}

// DeleteClubEvent removes entry id.
func (s *Service) DeleteClubEvent(ctx context.Context, id int64) error {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return err
	}
	err := s.store.DeleteClubEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrClubEventNotFound
	}
	return err
}
