package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// NewStudent is the admin form for adding one student.
type NewStudent struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Class      string `json:"class"`
	RollNo     string `json:"rollno"`
	Section    string `json:"section"`
	Department string `json:"department"`
}

// NewFaculty is the admin form for adding one faculty member.
type NewFaculty struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"department"`
}

// UserUpdate edits a user. Class, roll number and section only apply when
// Role is student.
type UserUpdate struct {
	Role       models.Role `json:"role"`
	Name       string      `json:"name" validate:"required"`
	Email      string      `json:"email" validate:"omitempty,email"`
	Class      string      `json:"class"`
	RollNo     string      `json:"rollno"`
	Section    string      `json:"section"`
	Department string      `json:"department"`
}

// AddStudent creates a student account.
func (s *Service) AddStudent(ctx context.Context, in NewStudent) (int64, error) {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return 0, err
	}
	if err := checkInput(in); err != nil {
		return 0, err
	}
	return s.createUser(ctx, models.User{
		Username:   in.Username,
		Password:   in.Password,
		Role:       models.RoleStudent,
		Name:       in.Name,
		Email:      in.Email,
		Class:      in.Class,
		RollNo:     in.RollNo,
		Section:    in.Section,
		Department: in.Department,
	})
}

// AddFaculty creates a faculty account.
func (s *Service) AddFaculty(ctx context.Context, in NewFaculty) (int64, error) {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return 0, err
	}
	if err := checkInput(in); err != nil {
		return 0, err
	}
	return s.createUser(ctx, models.User{
		Username:   in.Username,
		Password:   in.Password,
		Role:       models.RoleFaculty,
		Name:       in.Name,
		Email:      in.Email,
		Department: in.Department,
	})
}

func (s *Service) createUser(ctx context.Context, u models.User) (int64, error) {
	id, err := s.store.CreateUser(ctx, u)
	if errors.Is(err, store.ErrConflict) {
		return 0, ErrUsernameTaken
	}
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", u.Role, err)
	}
	logging.FromContext(ctx).Info("user created", "user_id", id, "role", u.Role)
	return id, nil
}

// GetUser loads one user for editing. The password is not returned.
func (s *Service) GetUser(ctx context.Context, id int64) (models.User, error) {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return models.User{}, err
	}
	u, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	u.Password = ""
	return u, nil
}

// UpdateUser overwrites the editable fields of user id.
func (s *Service) UpdateUser(ctx context.Context, id int64, in UserUpdate) error {
	if _, err := requireRole(ctx, models.RoleAdmin); err != nil {
		return err
	}
	if err := checkInput(in); err != nil {
		return err
	}

	u := models.User{
		ID:         id,
		Name:       in.Name,
		Email:      in.Email,
		Department: in.Department,
	}
	var err error
	if in.Role == models.RoleStudent {
		u.Class, u.RollNo, u.Section = in.Class, in.RollNo, in.Section
		err = s.store.UpdateStudent(ctx, u)
	} else {
		err = s.store.UpdateProfile(ctx, u)
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteUser removes user id. Their attendance and permission rows stay.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	admin, err := requireRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	err = s.store.DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("user deleted", "user_id", id, "admin", admin.Username)
	return nil
}
