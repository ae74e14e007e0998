package core

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/JonMunkholm/portal/internal/config"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/testutil/memstore"
)

var (
	fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	errBoom  = errors.New("boom")
)

func newTestService(f *memstore.Store) *Service {
	cfg := &config.Config{Upload: config.UploadConfig{
		MaxConcurrent: 2,
		MaxWaitTime:   50 * time.Millisecond,
		Timeout:       time.Minute,
	}}
	s := NewService(f, cfg)
	s.now = func() time.Time { return fixedNow }
	return s
}

func as(f *memstore.Store, id int64) context.Context {
	u := f.Users[id]
	return ContextWithPrincipal(context.Background(), Principal{
		UserID: u.ID, Username: u.Username, Role: u.Role, Name: u.Name,
	})
}

// seed adds one admin, two faculty, two students and a class for the first
// faculty member.
func seed(f *memstore.Store) (admin, fac1, fac2, stu1, stu2 int64) {
	admin = f.AddUser(models.User{Username: "admin", Password: "admin123", Role: models.RoleAdmin, Name: "Administrator"})
	fac1 = f.AddUser(models.User{Username: "faculty1", Password: "faculty123", Role: models.RoleFaculty, Name: "Dr. Smith"})
	fac2 = f.AddUser(models.User{Username: "faculty2", Password: "faculty123", Role: models.RoleFaculty, Name: "Prof. Johnson"})
	stu1 = f.AddUser(models.User{Username: "student1", Password: "student123", Role: models.RoleStudent, Name: "John Doe", RollNo: "002"})
	stu2 = f.AddUser(models.User{Username: "student2", Password: "student123", Role: models.RoleStudent, Name: "Jane Smith", RollNo: "001"})
	f.AddClass("Mathematics", fac1)
	return
}

// ============================================================================
// Authorization
// ============================================================================

func TestRequireRole(t *testing.T) {
	f := memstore.New()
	admin, _, _, stu, _ := seed(f)
	s := newTestService(f)

	tests := []struct {
		name string
		ctx  context.Context
		want error
	}{
		{"no principal", context.Background(), ErrUnauthenticated},
		{"wrong role", as(f, stu), ErrForbidden},
		{"admin", as(f, admin), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AdminDashboard(tt.ctx)
			if !errors.Is(err, tt.want) {
				t.Errorf("AdminDashboard() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnauthorizedMessage(t *testing.T) {
	for _, err := range []error{ErrUnauthenticated, ErrForbidden} {
		if got := MapError(err).Message; got != "Unauthorized" {
			t.Errorf("MapError(%v).Message = %q, want %q", err, got, "Unauthorized")
		}
	}
}

// ============================================================================
// Login and passwords
// ============================================================================

func TestLogin(t *testing.T) {
	f := memstore.New()
	_, fac1, _, _, _ := seed(f)
	s := newTestService(f)
	ctx := context.Background()

	p, err := s.Login(ctx, "faculty1", "faculty123", models.RoleFaculty)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if p.UserID != fac1 || p.Role != models.RoleFaculty || p.Name != "Dr. Smith" {
		t.Errorf("Login() = %+v, want faculty1 principal", p)
	}

	bad := []struct {
		name       string
		user, pass string
		role       models.Role
	}{
		{"wrong password", "faculty1", "nope", models.RoleFaculty},
		{"wrong role", "faculty1", "faculty123", models.RoleStudent},
		{"unknown role", "faculty1", "faculty123", "dean"},
		{"empty username", "", "faculty123", models.RoleFaculty},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(ctx, tt.user, tt.pass, tt.role)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	if got := MapError(ErrInvalidCredentials).Message; got != "Invalid credentials. Please try again." {
		t.Errorf("message = %q", got)
	}
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name    string
		in      PasswordChange
		wantErr error
	}{
		{"wrong current", PasswordChange{Current: "x", New: "a", Confirm: "a"}, ErrWrongPassword},
		{"mismatch", PasswordChange{Current: "student123", New: "a", Confirm: "b"}, ErrPasswordMismatch},
		{"ok", PasswordChange{Current: "student123", New: "fresh", Confirm: "fresh"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := memstore.New()
			_, _, _, stu, _ := seed(f)
			s := newTestService(f)

			err := s.ChangePassword(as(f, stu), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ChangePassword() error = %v, want %v", err, tt.wantErr)
			}
			want := "student123"
			if tt.wantErr == nil {
				want = tt.in.New
			}
			if got := f.Users[stu].Password; got != want {
				t.Errorf("password = %q, want %q", got, want)
			}
		})
	}
}

func TestChangePassword_RequiresSession(t *testing.T) {
	s := newTestService(memstore.New())
	err := s.ChangePassword(context.Background(), PasswordChange{Current: "a", New: "b", Confirm: "b"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ChangePassword() error = %v, want ErrUnauthenticated", err)
	}
}

// ============================================================================
// User administration
// ============================================================================

func TestAddStudent(t *testing.T) {
	f := memstore.New()
	admin, _, _, _, _ := seed(f)
	s := newTestService(f)
	ctx := as(f, admin)

	id, err := s.AddStudent(ctx, NewStudent{Username: "21CS099", Password: "pw", Name: "New Student", RollNo: "21CS099"})
	if err != nil {
		t.Fatalf("AddStudent() error = %v", err)
	}
	if got := f.Users[id]; got.Role != models.RoleStudent || got.RollNo != "21CS099" {
		t.Errorf("stored user = %+v", got)
	}

	_, err = s.AddStudent(ctx, NewStudent{Username: "21CS099", Password: "pw", Name: "Again"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate AddStudent() error = %v, want ErrUsernameTaken", err)
	}
	if got := MapError(err).Message; got != "Username already exists" {
		t.Errorf("message = %q, want %q", got, "Username already exists")
	}
}

func TestAddFaculty_Validation(t *testing.T) {
	f := memstore.New()
	admin, _, _, _, _ := seed(f)
	s := newTestService(f)
	ctx := as(f, admin)

	tests := []struct {
		name    string
		in      NewFaculty
		wantMsg string
	}{
		{"missing name", NewFaculty{Username: "x", Password: "pw"}, "Missing required field: name"},
		{"missing password", NewFaculty{Username: "x", Name: "X"}, "Missing required field: password"},
		{"bad email", NewFaculty{Username: "x", Password: "pw", Name: "X", Email: "nope"}, `Invalid email: nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddFaculty(ctx, tt.in)
			var pe *PublicError
			if !errors.As(err, &pe) {
				t.Fatalf("AddFaculty() error = %v, want *PublicError", err)
			}
			if pe.Msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", pe.Msg, tt.wantMsg)
			}
		})
	}
}

func TestGetUpdateDeleteUser(t *testing.T) {
	f := memstore.New()
	admin, fac1, _, stu, _ := seed(f)
	s := newTestService(f)
	ctx := as(f, admin)

	u, err := s.GetUser(ctx, stu)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.Password != "" {
		t.Errorf("GetUser() password = %q, want empty", u.Password)
	}

	if err := s.UpdateUser(ctx, stu, UserUpdate{Role: models.RoleStudent, Name: "John D", Section: "B"}); err != nil {
		t.Fatalf("UpdateUser(student) error = %v", err)
	}
	if got := f.Users[stu]; got.Name != "John D" || got.Section != "B" {
		t.Errorf("student after update = %+v", got)
	}

	if err := s.UpdateUser(ctx, fac1, UserUpdate{Role: models.RoleFaculty, Name: "Dr. S", Section: "ignored"}); err != nil {
		t.Fatalf("UpdateUser(faculty) error = %v", err)
	}
	if got := f.Users[fac1]; got.Name != "Dr. S" || got.Section != "" {
		t.Errorf("faculty after update = %+v", got)
	}

	if err := s.DeleteUser(ctx, stu); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if err := s.DeleteUser(ctx, stu); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second DeleteUser() error = %v, want ErrUserNotFound", err)
	}
	if _, err := s.GetUser(ctx, stu); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() after delete error = %v, want ErrUserNotFound", err)
	}
	if got := MapError(ErrUserNotFound).Message; got != "User not found" {
		t.Errorf("message = %q", got)
	}
}

// ============================================================================
// Clubs and events
// ============================================================================

func TestClubEvents(t *testing.T) {
	f := memstore.New()
	admin, _, _, _, _ := seed(f)
	s := newTestService(f)
	ctx := as(f, admin)

	id, err := s.AddClubEvent(ctx, ClubEventInput{Name: "Chess Club", Type: models.TypeClub})
	if err != nil {
		t.Fatalf("AddClubEvent() error = %v", err)
	}

	if _, err := s.AddClubEvent(ctx, ClubEventInput{Name: "X", Type: "party"}); err == nil {
		t.Error("AddClubEvent() with bad type error = nil")
	}

	if err := s.UpdateClubEvent(ctx, id, ClubEventInput{Name: "Chess Society", Type: models.TypeClub}); err != nil {
		t.Fatalf("UpdateClubEvent() error = %v", err)
	}

	list, err := s.ListClubsEvents(context.Background())
	if err != nil || len(list) != 1 || list[0].Name != "Chess Society" {
		t.Fatalf("ListClubsEvents() = %+v, %v", list, err)
	}

	if err := s.DeleteClubEvent(ctx, id); err != nil {
		t.Fatalf("DeleteClubEvent() error = %v", err)
	}
	if err := s.DeleteClubEvent(ctx, id); !errors.Is(err, ErrClubEventNotFound) {
		t.Errorf("second DeleteClubEvent() error = %v, want ErrClubEventNotFound", err)
	}
}

func TestAddedMessage(t *testing.T) {
	tests := []struct {
		kind models.ClubEventType
		want string
	}{
		{models.TypeClub, "Club added successfully"},
		{models.TypeEvent, "Event added successfully"},
	}
	for _, tt := range tests {
		if got := AddedMessage(tt.kind); got != tt.want {
			t.Errorf("AddedMessage(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// ============================================================================
// Permissions
// ============================================================================

func TestRequestPermission(t *testing.T) {
	f := memstore.New()
	_, fac1, _, stu, _ := seed(f)
	s := newTestService(f)

	id, err := s.RequestPermission(as(f, stu), PermissionRequest{Date: "2026-03-05", Reason: "Medical"})
	if err != nil {
		t.Fatalf("RequestPermission() error = %v", err)
	}

	p := f.Permissions[0]
	if p.ID != id || p.FacultyID != fac1 || p.StudentID != stu {
		t.Errorf("permission = %+v, want addressed to first faculty", p)
	}
	if p.Date.Format(time.DateOnly) != "2026-03-05" {
		t.Errorf("date = %v", p.Date)
	}

	_, err = s.RequestPermission(as(f, stu), PermissionRequest{Date: "05/03/2026", Reason: "Medical"})
	var pe *PublicError
	if !errors.As(err, &pe) || pe.Code != "VAL004" {
		t.Errorf("bad date error = %v, want VAL004 PublicError", err)
	}
}

func TestRequestPermission_NoFaculty(t *testing.T) {
	f := memstore.New()
	stu := f.AddUser(models.User{Username: "s", Password: "p", Role: models.RoleStudent, Name: "S"})
	s := newTestService(f)

	_, err := s.RequestPermission(as(f, stu), PermissionRequest{Date: "2026-03-05", Reason: "Trip"})
	if !errors.Is(err, ErrNoFaculty) {
		t.Fatalf("RequestPermission() error = %v, want ErrNoFaculty", err)
	}
	if got := MapError(err).Message; got != "No faculty found" {
		t.Errorf("message = %q", got)
	}
}

func TestReviewPermission(t *testing.T) {
	f := memstore.New()
	_, fac1, _, stu, _ := seed(f)
	s := newTestService(f)

	id, _ := s.RequestPermission(as(f, stu), PermissionRequest{Date: "2026-03-05", Reason: "Medical"})

	if err := s.ReviewPermission(as(f, fac1), PermissionReview{ID: id, Status: models.PermissionApproved}); err != nil {
		t.Fatalf("ReviewPermission() error = %v", err)
	}
	if got := f.Permissions[0].Status; got != models.PermissionApproved {
		t.Errorf("status = %q, want approved", got)
	}

	if err := s.ReviewPermission(as(f, fac1), PermissionReview{ID: id, Status: "maybe"}); err == nil {
		t.Error("ReviewPermission() with bad status error = nil")
	}
	if err := s.ReviewPermission(as(f, fac1), PermissionReview{ID: 999, Status: models.PermissionRejected}); !errors.Is(err, ErrPermissionNotFound) {
		t.Errorf("ReviewPermission() unknown id error = %v, want ErrPermissionNotFound", err)
	}
	if err := s.ReviewPermission(as(f, stu), PermissionReview{ID: id, Status: models.PermissionRejected}); !errors.Is(err, ErrForbidden) {
		t.Errorf("ReviewPermission() by student error = %v, want ErrForbidden", err)
	}
}

// ============================================================================
// Attendance
// ============================================================================

func TestMarkAttendance_ReplacesTodaysMarks(t *testing.T) {
	f := memstore.New()
	_, fac1, _, stu1, stu2 := seed(f)
	s := newTestService(f)
	ctx := as(f, fac1)

	n, err := s.MarkAttendance(ctx, map[string]models.AttendanceStatus{
		itoa(stu1): models.AttendancePresent,
		itoa(stu2): "late",
	})
	if err != nil {
		t.Fatalf("MarkAttendance() error = %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1 (unknown status ignored)", n)
	}

	if _, err := s.MarkAttendance(ctx, map[string]models.AttendanceStatus{
		itoa(stu1): models.AttendanceAbsent,
		itoa(stu2): models.AttendanceAbsent,
	}); err != nil {
		t.Fatalf("second MarkAttendance() error = %v", err)
	}

	today, _ := f.AttendanceMarkedOn(context.Background(), fac1, fixedNow)
	if len(today) != 2 || today[stu1] != models.AttendanceAbsent {
		t.Errorf("today's marks = %v, want both absent", today)
	}
	if len(f.Attendance) != 2 {
		t.Errorf("attendance rows = %d, want 2", len(f.Attendance))
	}
}

func TestMarkAttendance_NoClasses(t *testing.T) {
	f := memstore.New()
	_, _, fac2, stu1, _ := seed(f)
	s := newTestService(f)

	_, err := s.MarkAttendance(as(f, fac2), map[string]models.AttendanceStatus{itoa(stu1): models.AttendancePresent})
	if !errors.Is(err, ErrNoClasses) {
		t.Fatalf("MarkAttendance() error = %v, want ErrNoClasses", err)
	}
	if got := MapError(err).Message; got != "No classes assigned to faculty" {
		t.Errorf("message = %q", got)
	}
}

func TestMarkAttendance_BadStudentID(t *testing.T) {
	f := memstore.New()
	_, fac1, _, _, _ := seed(f)
	s := newTestService(f)

	_, err := s.MarkAttendance(as(f, fac1), map[string]models.AttendanceStatus{"abc": models.AttendancePresent})
	var pe *PublicError
	if !errors.As(err, &pe) {
		t.Fatalf("MarkAttendance() error = %v, want *PublicError", err)
	}
	if len(f.Attendance) != 0 {
		t.Errorf("attendance rows = %d, want 0", len(f.Attendance))
	}
}

// ============================================================================
// Dashboards
// ============================================================================

func TestDashboards(t *testing.T) {
	f := memstore.New()
	admin, fac1, _, stu1, stu2 := seed(f)
	f.Events = 2
	f.Joined[stu1] = 1
	f.Clubs = []models.ClubEvent{
		{ID: 100, Name: "Coding Club", Type: models.TypeClub, IsActive: true},
		{ID: 101, Name: "Hackathon", Type: models.TypeEvent, IsActive: true},
	}
	s := newTestService(f)

	if _, err := s.RequestPermission(as(f, stu1), PermissionRequest{Date: "2026-03-05", Reason: "Medical"}); err != nil {
		t.Fatalf("RequestPermission() error = %v", err)
	}
	if _, err := s.MarkAttendance(as(f, fac1), map[string]models.AttendanceStatus{
		itoa(stu1): models.AttendancePresent,
		itoa(stu2): models.AttendanceAbsent,
	}); err != nil {
		t.Fatalf("MarkAttendance() error = %v", err)
	}

	t.Run("admin", func(t *testing.T) {
		d, err := s.AdminDashboard(as(f, admin))
		if err != nil {
			t.Fatalf("AdminDashboard() error = %v", err)
		}
		if d.StudentsCount != 2 || d.FacultyCount != 2 || d.PendingPermissions != 1 || d.EventsCount != 2 {
			t.Errorf("counts = %d/%d/%d/%d, want 2/2/1/2",
				d.StudentsCount, d.FacultyCount, d.PendingPermissions, d.EventsCount)
		}
	})

	t.Run("faculty", func(t *testing.T) {
		d, err := s.FacultyDashboard(as(f, fac1))
		if err != nil {
			t.Fatalf("FacultyDashboard() error = %v", err)
		}
		if d.ClassesCount != 1 || d.PendingPermissions != 1 {
			t.Errorf("classes = %d, pending = %d, want 1, 1", d.ClassesCount, d.PendingPermissions)
		}
		if len(d.Students) != 2 || d.Students[0].RollNo != "001" {
			t.Errorf("students not ordered by rollno: %+v", d.Students)
		}
		if len(d.Permissions) != 1 || d.Permissions[0].StudentName != "John Doe" {
			t.Errorf("permissions = %+v", d.Permissions)
		}
		if d.TodayAttendance[stu2] != models.AttendanceAbsent {
			t.Errorf("today attendance = %v", d.TodayAttendance)
		}
	})

	t.Run("student", func(t *testing.T) {
		d, err := s.StudentDashboard(as(f, stu1))
		if err != nil {
			t.Fatalf("StudentDashboard() error = %v", err)
		}
		if len(d.Clubs) != 1 || len(d.Events) != 1 {
			t.Errorf("clubs = %d, events = %d, want 1, 1", len(d.Clubs), len(d.Events))
		}
		if d.AttendancePercentage != 100 {
			t.Errorf("AttendancePercentage = %v, want 100", d.AttendancePercentage)
		}
		if d.EventsCount != 1 || d.PendingPermissions != 1 {
			t.Errorf("events = %d, pending = %d, want 1, 1", d.EventsCount, d.PendingPermissions)
		}
		if len(d.Permissions) != 1 || d.Permissions[0].FacultyName != "Dr. Smith" {
			t.Errorf("permissions = %+v", d.Permissions)
		}
		if d.Student.Password != "" {
			t.Error("student password leaked into dashboard")
		}
	})

	t.Run("student without attendance", func(t *testing.T) {
		other := f.AddUser(models.User{Username: "s3", Password: "p", Role: models.RoleStudent, Name: "New"})
		d, err := s.StudentDashboard(as(f, other))
		if err != nil {
			t.Fatalf("StudentDashboard() error = %v", err)
		}
		if d.AttendancePercentage != 0 {
			t.Errorf("AttendancePercentage = %v, want 0", d.AttendancePercentage)
		}
	})
}

func TestPing(t *testing.T) {
	f := memstore.New()
	s := newTestService(f)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	f.PingErr = errBoom
	if err := s.Ping(context.Background()); !errors.Is(err, errBoom) {
		t.Errorf("Ping() error = %v, want errBoom", err)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
