// Package memstore is an in-memory implementation of the portal store for
// service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/portal/internal/core/roster"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// AttendanceRow is one stored attendance mark.
type AttendanceRow struct {
	StudentID, ClassID, MarkedBy int64
	Day                          time.Time
	Status                       models.AttendanceStatus
}

// Store satisfies core.Store. Fields may be set directly between calls.
type Store struct {
	mu          sync.Mutex
	nextID      int64
	Users       map[int64]models.User
	Permissions []models.Permission
	Attendance  []AttendanceRow
	Classes     []models.Class
	Clubs       []models.ClubEvent
	Events      int
	Joined      map[int64]int

	PingErr   error
	CommitErr error
}

// New returns an empty Store.
func New() *Store {
	return &Store{Users: make(map[int64]models.User), Joined: make(map[int64]int)}
}

func (f *Store) id() int64 {
	f.nextID++
	return f.nextID
}

// AddUser stores u under a fresh id and returns the id.
func (f *Store) AddUser(u models.User) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.id()
	f.Users[u.ID] = u
	return u.ID
}

// AddClass stores a class taught by facultyID.
func (f *Store) AddClass(name string, facultyID int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Class{ID: f.id(), Name: name, FacultyID: facultyID}
	f.Classes = append(f.Classes, c)
	return c.ID
}

// ByUsername returns the committed user with the given username.
func (f *Store) ByUsername(username string) (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byUsername(username)
}

func (f *Store) byUsername(username string) (models.User, bool) {
	for _, u := range f.Users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (f *Store) Ping(ctx context.Context) error { return f.PingErr }

// ---- roster.Store ----

func (f *Store) BeginImport(ctx context.Context) (roster.Batch, error) {
	return &batch{store: f}, nil
}

type batch struct {
	store   *Store
	pending []models.User
	done    bool
}

func (b *batch) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range b.pending {
		if u.Username == username {
			return &u, nil
		}
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if u, ok := b.store.byUsername(username); ok {
		return &u, nil
	}
	return nil, nil
}

func (b *batch) Insert(ctx context.Context, u models.User) (int64, error) {
	b.store.mu.Lock()
	u.ID = b.store.id()
	b.store.mu.Unlock()
	b.pending = append(b.pending, u)
	return u.ID, nil
}

func (b *batch) Commit(ctx context.Context) error {
	b.done = true
	if b.store.CommitErr != nil {
		return b.store.CommitErr
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for _, u := range b.pending {
		b.store.Users[u.ID] = u
	}
	return nil
}

func (b *batch) Rollback(ctx context.Context) error {
	b.done = true
	return nil
}

// ---- UserStore ----

func (f *Store) Authenticate(ctx context.Context, username, password string, role models.Role) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byUsername(username)
	if !ok || u.Password != password || u.Role != role {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.Users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *Store) CreateUser(ctx context.Context, u models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUsername(u.Username); ok {
		return 0, store.ErrConflict
	}
	u.ID = f.id()
	f.Users[u.ID] = u
	return u.ID, nil
}

func (f *Store) UpdateStudent(ctx context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.Users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Name, cur.Email, cur.Class, cur.RollNo, cur.Section, cur.Department =
		u.Name, u.Email, u.Class, u.RollNo, u.Section, u.Department
	f.Users[u.ID] = cur
	return nil
}

func (f *Store) UpdateProfile(ctx context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.Users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Name, cur.Email, cur.Department = u.Name, u.Email, u.Department
	f.Users[u.ID] = cur
	return nil
}

func (f *Store) UpdatePassword(ctx context.Context, id int64, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.Users[id]
	if !ok {
		return store.ErrNotFound
	}
	cur.Password = password
	f.Users[id] = cur
	return nil
}

func (f *Store) DeleteUser(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.Users, id)
	return nil
}

func (f *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Store) ListStudentsByRollNo(ctx context.Context) ([]models.User, error) {
	out, _ := f.ListUsersByRole(ctx, models.RoleStudent)
	sort.Slice(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}

func (f *Store) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	out, _ := f.ListUsersByRole(ctx, role)
	return len(out), nil
}

func (f *Store) FirstFacultyID(ctx context.Context) (int64, error) {
	out, _ := f.ListUsersByRole(ctx, models.RoleFaculty)
	if len(out) == 0 {
		return 0, store.ErrNotFound
	}
	return out[0].ID, nil
}

// ---- PermissionStore ----

func (f *Store) CreatePermission(ctx context.Context, p models.Permission) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.id()
	p.Status = models.PermissionPending
	f.Permissions = append(f.Permissions, p)
	return p.ID, nil
}

func (f *Store) SetPermissionStatus(ctx context.Context, id int64, status models.PermissionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Permissions {
		if f.Permissions[i].ID == id {
			f.Permissions[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *Store) CountPendingPermissions(ctx context.Context, facultyID, studentID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.Permissions {
		if p.Status != models.PermissionPending {
			continue
		}
		if facultyID != 0 && p.FacultyID != facultyID {
			continue
		}
		if studentID != 0 && p.StudentID != studentID {
			continue
		}
		n++
	}
	return n, nil
}

func (f *Store) ListPermissionsForFaculty(ctx context.Context, facultyID int64) ([]models.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Permission
	for _, p := range f.Permissions {
		if p.FacultyID == facultyID {
			s := f.Users[p.StudentID]
			p.StudentName, p.RollNo = s.Name, s.RollNo
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Store) ListPermissionsForStudent(ctx context.Context, studentID int64) ([]models.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Permission
	for _, p := range f.Permissions {
		if p.StudentID == studentID {
			p.FacultyName = f.Users[p.FacultyID].Name
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- AttendanceStore ----

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (f *Store) ReplaceAttendance(ctx context.Context, facultyID, classID int64, day time.Time, marks []store.AttendanceMark) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.Attendance[:0]
	for _, a := range f.Attendance {
		if a.MarkedBy == facultyID && sameDay(a.Day, day) {
			continue
		}
		kept = append(kept, a)
	}
	f.Attendance = kept
	for _, m := range marks {
		f.Attendance = append(f.Attendance, AttendanceRow{
			StudentID: m.StudentID, ClassID: classID, MarkedBy: facultyID, Day: day, Status: m.Status,
		})
	}
	return len(marks), nil
}

func (f *Store) AttendanceMarkedOn(ctx context.Context, facultyID int64, day time.Time) (map[int64]models.AttendanceStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64]models.AttendanceStatus)
	for _, a := range f.Attendance {
		if a.MarkedBy == facultyID && sameDay(a.Day, day) {
			out[a.StudentID] = a.Status
		}
	}
	return out, nil
}

func (f *Store) AttendancePercentage(ctx context.Context, studentID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total, present := 0, 0
	for _, a := range f.Attendance {
		if a.StudentID == studentID {
			total++
			if a.Status == models.AttendancePresent {
				present++
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return float64(present) * 100 / float64(total), nil
}

func (f *Store) AttendanceHistory(ctx context.Context, studentID int64) ([]models.AttendanceEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AttendanceEntry
	for _, a := range f.Attendance {
		if a.StudentID == studentID {
			out = append(out, models.AttendanceEntry{Date: a.Day, Status: a.Status, MarkedBy: f.Users[a.MarkedBy].Name})
		}
	}
	return out, nil
}

func (f *Store) ListClassesByFaculty(ctx context.Context, facultyID int64) ([]models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Class
	for _, c := range f.Classes {
		if c.FacultyID == facultyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *Store) CountClassesByFaculty(ctx context.Context, facultyID int64) (int, error) {
	out, _ := f.ListClassesByFaculty(ctx, facultyID)
	return len(out), nil
}

func (f *Store) FirstClassID(ctx context.Context, facultyID int64) (int64, error) {
	out, _ := f.ListClassesByFaculty(ctx, facultyID)
	if len(out) == 0 {
		return 0, store.ErrNotFound
	}
	return out[0].ID, nil
}

// ---- ClubStore ----

func (f *Store) ListActiveClubsEvents(ctx context.Context) ([]models.ClubEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]models.ClubEvent(nil), f.Clubs...)
	return out, nil
}

func (f *Store) CreateClubEvent(ctx context.Context, name string, kind models.ClubEventType) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.ClubEvent{ID: f.id(), Name: name, Type: kind, IsActive: true}
	f.Clubs = append(f.Clubs, c)
	return c.ID, nil
}

func (f *Store) UpdateClubEvent(ctx context.Context, id int64, name string, kind models.ClubEventType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Clubs {
		if f.Clubs[i].ID == id {
			f.Clubs[i].Name, f.Clubs[i].Type = name, kind
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *Store) DeleteClubEvent(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Clubs {
		if f.Clubs[i].ID == id {
			f.Clubs = append(f.Clubs[:i], f.Clubs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *Store) CountEvents(ctx context.Context) (int, error) { return f.Events, nil }

func (f *Store) CountStudentEvents(ctx context.Context, studentID int64) (int, error) {
	return f.Joined[studentID], nil
}
