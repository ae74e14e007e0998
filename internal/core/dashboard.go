package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/portal/internal/models"
)

// AdminDashboard is the data behind the admin home page.
type AdminDashboard struct {
	Principal          Principal
	StudentsCount      int
	FacultyCount       int
	PendingPermissions int
	EventsCount        int
	Students           []models.User
	Faculty            []models.User
}

// FacultyDashboard is the data behind the faculty home page.
type FacultyDashboard struct {
	Principal          Principal
	ClassesCount       int
	StudentsCount      int
	PendingPermissions int
	Permissions        []models.Permission
	Classes            []models.Class
	Students           []models.User
	TodayAttendance    map[int64]models.AttendanceStatus
}

// StudentDashboard is the data behind the student home page.
type StudentDashboard struct {
	Principal            Principal
	Student              models.User
	Clubs                []models.ClubEvent
	Events               []models.ClubEvent
	AttendancePercentage float64
	PendingPermissions   int
	EventsCount          int
	Attendance           []models.AttendanceEntry
	Permissions          []models.Permission
}

// AdminDashboard loads counts and user lists for the signed-in admin.
func (s *Service) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	p, err := requireRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	d := &AdminDashboard{Principal: p}
	if d.StudentsCount, err = s.store.CountUsersByRole(ctx, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if d.FacultyCount, err = s.store.CountUsersByRole(ctx, models.RoleFaculty); err != nil {
		return nil, fmt.Errorf("count faculty: %w", err)
	}
	if d.PendingPermissions, err = s.store.CountPendingPermissions(ctx, 0, 0); err != nil {
		return nil, fmt.Errorf("count permissions: %w", err)
	}
	if d.EventsCount, err = s.store.CountEvents(ctx); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if d.Students, err = s.store.ListUsersByRole(ctx, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if d.Faculty, err = s.store.ListUsersByRole(ctx, models.RoleFaculty); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return d, nil
}

// FacultyDashboard loads classes, requests and today's marks for the
// signed-in faculty member.
func (s *Service) FacultyDashboard(ctx context.Context) (*FacultyDashboard, error) {
	p, err := requireRole(ctx, models.RoleFaculty)
	if err != nil {
		return nil, err
	}

	d := &FacultyDashboard{Principal: p}
	if d.ClassesCount, err = s.store.CountClassesByFaculty(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}
	if d.StudentsCount, err = s.store.CountUsersByRole(ctx, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if d.PendingPermissions, err = s.store.CountPendingPermissions(ctx, p.UserID, 0); err != nil {
		return nil, fmt.Errorf("count permissions: %w", err)
	}
	if d.Permissions, err = s.store.ListPermissionsForFaculty(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	if d.Classes, err = s.store.ListClassesByFaculty(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if d.Students, err = s.store.ListStudentsByRollNo(ctx); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if d.TodayAttendance, err = s.store.AttendanceMarkedOn(ctx, p.UserID, s.today()); err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	return d, nil
}

// StudentDashboard loads attendance, requests and clubs for the signed-in
// student.
func (s *Service) StudentDashboard(ctx context.Context) (*StudentDashboard, error) {
	p, err := requireRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	d := &StudentDashboard{Principal: p}
	if d.Student, err = s.store.GetUser(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	d.Student.Password = ""

	entries, err := s.store.ListActiveClubsEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	for _, e := range entries {
		switch e.Type {
		case models.TypeClub:
			d.Clubs = append(d.Clubs, e)
		case models.TypeEvent:
			d.Events = append(d.Events, e)
		}
	}

	if d.AttendancePercentage, err = s.store.AttendancePercentage(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("attendance percentage: %w", err)
	}
	if d.PendingPermissions, err = s.store.CountPendingPermissions(ctx, 0, p.UserID); err != nil {
		return nil, fmt.Errorf("count permissions: %w", err)
	}
	if d.EventsCount, err = s.store.CountStudentEvents(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if d.Attendance, err = s.store.AttendanceHistory(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	if d.Permissions, err = s.store.ListPermissionsForStudent(ctx, p.UserID); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return d, nil
}
