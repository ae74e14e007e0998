// Package models holds the persisted portal entities shared by the store,
// the roster importer and the web layer.
package models

import "time"

// Role is the portal role of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	default:
		return false
	}
}

// User is a person known to the portal. Username is unique across all roles.
// Optional columns are empty strings when NULL.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNo     string `json:"rollno"`
	Section    string `json:"section"`
	Department string `json:"department"`
	Class      string `json:"class"`
}

// PermissionStatus is the review state of a leave request.
type PermissionStatus string

const (
	PermissionPending  PermissionStatus = "pending"
	PermissionApproved PermissionStatus = "approved"
	PermissionRejected PermissionStatus = "rejected"
)

// Permission is a student's leave request addressed to a faculty member.
type Permission struct {
	ID          int64            `json:"id"`
	StudentID   int64            `json:"student_id"`
	FacultyID   int64            `json:"faculty_id"`
	Date        time.Time        `json:"date"`
	Reason      string           `json:"reason"`
	Proof       string           `json:"proof"`
	Status      PermissionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	StudentName string           `json:"student_name,omitempty"`
	RollNo      string           `json:"rollno,omitempty"`
	FacultyName string           `json:"faculty_name,omitempty"`
}

// AttendanceStatus is the recorded presence of a student.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status can be recorded.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// AttendanceEntry is one row of a student's attendance history.
type AttendanceEntry struct {
	Date     time.Time        `json:"date"`
	Subject  string           `json:"subject"`
	Status   AttendanceStatus `json:"status"`
	MarkedBy string           `json:"marked_by"`
}

// Class is a course taught by one faculty member.
type Class struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FacultyID int64  `json:"faculty_id"`
	Schedule  string `json:"schedule"`
	Room      string `json:"room"`
}

// ClubEventType distinguishes clubs from events in the clubs_events table.
type ClubEventType string

const (
	TypeClub  ClubEventType = "club"
	TypeEvent ClubEventType = "event"
)

// ClubEvent is an entry students can name in a permission request.
type ClubEvent struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Type      ClubEventType `json:"type"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
}
