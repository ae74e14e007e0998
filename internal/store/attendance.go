package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/portal/internal/models"
)

// HistoryLimit caps the attendance rows shown to a student.
const HistoryLimit = 50

// AttendanceMark is one student's status for a day.
type AttendanceMark struct {
	StudentID int64
	Status    models.AttendanceStatus
}

// ReplaceAttendance deletes the day's rows marked by facultyID and inserts
// marks in their place, in one transaction. It returns the number inserted.
func (s *Store) ReplaceAttendance(ctx context.Context, facultyID, classID int64, day time.Time, marks []AttendanceMark) (int, error) {
	inserted := 0
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM attendance WHERE date = $1 AND marked_by = $2`,
			ToPgDate(day), facultyID); err != nil {
			return fmt.Errorf("clear attendance: %w", err)
		}

		batch := &pgx.Batch{}
		for _, m := range marks {
			batch.Queue(`
				INSERT INTO attendance (student_id, class_id, date, status, marked_by)
				VALUES ($1, $2, $3, $4, $5)`,
				m.StudentID, classID, ToPgDate(day), string(m.Status), facultyID)
		}
		if batch.Len() == 0 {
			return nil
		}

		results := tx.SendBatch(ctx, batch)
		for range marks {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("insert attendance: %w", err)
			}
			inserted++
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// AttendanceMarkedOn returns student id to status for rows facultyID marked on day.
func (s *Store) AttendanceMarkedOn(ctx context.Context, facultyID int64, day time.Time) (map[int64]models.AttendanceStatus, error) {
	rows, err := s.db.Query(ctx,
		`SELECT student_id, status FROM attendance WHERE date = $1 AND marked_by = $2`,
		ToPgDate(day), facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]models.AttendanceStatus)
	for rows.Next() {
		var (
			studentID pgtype.Int8
			status    string
		)
		if err := rows.Scan(&studentID, &status); err != nil {
			return nil, err
		}
		out[int8OrZero(studentID)] = models.AttendanceStatus(status)
	}
	return out, rows.Err()
}

// AttendancePercentage is the share of a student's rows marked present,
// in percent. It is 0 when the student has no rows.
func (s *Store) AttendancePercentage(ctx context.Context, studentID int64) (float64, error) {
	var pct pgtype.Float8
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'present') * 100.0 / NULLIF(COUNT(*), 0)
		FROM attendance WHERE student_id = $1`, studentID).Scan(&pct)
	if err != nil {
		return 0, err
	}
	if !pct.Valid {
		return 0, nil
	}
	return pct.Float64, nil
}

// AttendanceHistory returns a student's most recent attendance rows,
// newest first, with class name and marker name.
func (s *Store) AttendanceHistory(ctx context.Context, studentID int64) ([]models.AttendanceEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT a.date, c.name, a.status, u.name
		FROM attendance a
		LEFT JOIN classes c ON a.class_id = c.id
		LEFT JOIN users u ON a.marked_by = u.id
		WHERE a.student_id = $1
		ORDER BY a.date DESC, a.id DESC
		LIMIT $2`, studentID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AttendanceEntry
	for rows.Next() {
		var (
			e                 models.AttendanceEntry
			date              pgtype.Date
			subject, markedBy pgtype.Text
			status            string
		)
		if err := rows.Scan(&date, &subject, &status, &markedBy); err != nil {
			return nil, err
		}
		e.Date = date.Time
		e.Subject = textOrEmpty(subject)
		e.Status = models.AttendanceStatus(status)
		e.MarkedBy = textOrEmpty(markedBy)
		out = append(out, e)
	}
	return out, rows.Err()
}
