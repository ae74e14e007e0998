package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/portal/internal/config"
	"github.com/JonMunkholm/portal/internal/core/roster"
	"github.com/JonMunkholm/portal/internal/metrics"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// UserStore persists portal users.
type UserStore interface {
	Authenticate(ctx context.Context, username, password string, role models.Role) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (int64, error)
	UpdateStudent(ctx context.Context, u models.User) error
	UpdateProfile(ctx context.Context, u models.User) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	ListStudentsByRollNo(ctx context.Context) ([]models.User, error)
	CountUsersByRole(ctx context.Context, role models.Role) (int, error)
	FirstFacultyID(ctx context.Context) (int64, error)
}

// PermissionStore persists leave requests.
type PermissionStore interface {
	CreatePermission(ctx context.Context, p models.Permission) (int64, error)
	SetPermissionStatus(ctx context.Context, id int64, status models.PermissionStatus) error
	CountPendingPermissions(ctx context.Context, facultyID, studentID int64) (int, error)
	ListPermissionsForFaculty(ctx context.Context, facultyID int64) ([]models.Permission, error)
	ListPermissionsForStudent(ctx context.Context, studentID int64) ([]models.Permission, error)
}

// AttendanceStore persists classes and attendance marks.
type AttendanceStore interface {
	ReplaceAttendance(ctx context.Context, facultyID, classID int64, day time.Time, marks []store.AttendanceMark) (int, error)
	AttendanceMarkedOn(ctx context.Context, facultyID int64, day time.Time) (map[int64]models.AttendanceStatus, error)
	AttendancePercentage(ctx context.Context, studentID int64) (float64, error)
	AttendanceHistory(ctx context.Context, studentID int64) ([]models.AttendanceEntry, error)
	ListClassesByFaculty(ctx context.Context, facultyID int64) ([]models.Class, error)
	CountClassesByFaculty(ctx context.Context, facultyID int64) (int, error)
	FirstClassID(ctx context.Context, facultyID int64) (int64, error)
}

// ClubStore persists clubs and events offered to students.
type ClubStore interface {
	ListActiveClubsEvents(ctx context.Context) ([]models.ClubEvent, error)
	CreateClubEvent(ctx context.Context, name string, kind models.ClubEventType) (int64, error)
	UpdateClubEvent(ctx context.Context, id int64, name string, kind models.ClubEventType) error
	DeleteClubEvent(ctx context.Context, id int64) error
	CountEvents(ctx context.Context) (int, error)
	CountStudentEvents(ctx context.Context, studentID int64) (int, error)
}

// Store is everything Service needs from persistence. *store.Store satisfies it.
type Store interface {
	roster.Store
	UserStore
	PermissionStore
	AttendanceStore
	ClubStore
	Ping(ctx context.Context) error
}

// Service is the entry point for every portal operation. Methods read the
// acting user from the request context.
type Service struct {
	store         Store
	limiter       *ImportLimiter
	importTimeout time.Duration
	now           func() time.Time
}

// NewService creates a Service backed by st.
func NewService(st Store, cfg *config.Config) *Service {
	return &Service{
		store:         st,
		limiter:       NewImportLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		importTimeout: cfg.Upload.Timeout,
		now:           time.Now,
	}
}

// Ping checks the database and records the latency.
func (s *Service) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.store.Ping(ctx)
	metrics.ObserveDBPing(time.Since(start))
	return err
}

// ImportLimiterStatus returns the current import slot usage.
func (s *Service) ImportLimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx ends.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func (s *Service) today() time.Time {
	return s.now()
}
