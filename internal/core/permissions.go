package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// PermissionRequest is a student's leave request form.
type PermissionRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"required"`
	Proof  string `json:"proof"`
}

// PermissionReview is a faculty decision on one request.
type PermissionReview struct {
	ID     int64                   `json:"permission_id" validate:"required"`
	Status models.PermissionStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

// RequestPermission files a leave request for the signed-in student. It is
// addressed to the faculty member with the lowest id.
func (s *Service) RequestPermission(ctx context.Context, in PermissionRequest) (int64, error) {
	student, err := requireRole(ctx, models.RoleStudent)
	if err != nil {
		return 0, err
	}
	if err := checkInput(in); err != nil {
		return 0, err
	}
	day, err := time.Parse(time.DateOnly, in.Date)
	if err != nil {
		return 0, &PublicError{Msg: fmt.Sprintf("Invalid date: %s", in.Date), Code: "VAL004", Err: err}
	}

	facultyID, err := s.store.FirstFacultyID(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrNoFaculty
	}
	if err != nil {
		return 0, fmt.Errorf("find faculty: %w", err)
	}

	id, err := s.store.CreatePermission(ctx, models.Permission{
		StudentID: student.UserID,
		FacultyID: facultyID,
		Date:      day,
		Reason:    in.Reason,
		Proof:     in.Proof,
	})
	if err != nil {
		return 0, fmt.Errorf("create permission: %w", err)
	}
	logging.FromContext(ctx).Info("permission requested", "permission_id", id, "student_id", student.UserID)
	return id, nil
}

// ReviewPermission sets the status of a request.
func (s *Service) ReviewPermission(ctx context.Context, in PermissionReview) error {
	faculty, err := requireRole(ctx, models.RoleFaculty)
	if err != nil {
		return err
	}
	if err := checkInput(in); err != nil {
		return err
	}

	err = s.store.SetPermissionStatus(ctx, in.ID, in.Status)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPermissionNotFound
	}
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}
	logging.FromContext(ctx).Info("permission reviewed",
		"permission_id", in.ID, "status", in.Status, "faculty_id", faculty.UserID)
	return nil
}
