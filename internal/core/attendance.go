package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/JonMunkholm/portal/internal/logging"
	"github.com/JonMunkholm/portal/internal/models"
	"github.com/JonMunkholm/portal/internal/store"
)

// MarkAttendance records today's attendance for the signed-in faculty member.
// Marks are keyed by student id. Anything other than present or absent is
// ignored. Marks this faculty member already recorded today are replaced.
// It returns the number of rows written.
func (s *Service) MarkAttendance(ctx context.Context, marks map[string]models.AttendanceStatus) (int, error) {
	faculty, err := requireRole(ctx, models.RoleFaculty)
	if err != nil {
		return 0, err
	}

	classID, err := s.store.FirstClassID(ctx, faculty.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrNoClasses
	}
	if err != nil {
		return 0, fmt.Errorf("find class: %w", err)
	}

	rows := make([]store.AttendanceMark, 0, len(marks))
	for key, status := range marks {
		if !status.Valid() {
			continue
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= 0 {
			return 0, &PublicError{Msg: fmt.Sprintf("Invalid student id %q", key), Code: "VAL006", Err: err}
		}
		rows = append(rows, store.AttendanceMark{StudentID: id, Status: status})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentID < rows[j].StudentID })

	n, err := s.store.ReplaceAttendance(ctx, faculty.UserID, classID, s.today(), rows)
	if err != nil {
		return 0, fmt.Errorf("mark attendance: %w", err)
	}
	logging.FromContext(ctx).Info("attendance marked", "faculty_id", faculty.UserID, "class_id", classID, "rows", n)
	return n, nil
}
