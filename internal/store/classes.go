package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/portal/internal/models"
)

// ListClassesByFaculty returns the classes assigned to facultyID ordered by id.
func (s *Store) ListClassesByFaculty(ctx context.Context, facultyID int64) ([]models.Class, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, faculty_id, schedule, room
		FROM classes WHERE faculty_id = $1 ORDER BY id`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Class
	for rows.Next() {
		var (
			c              models.Class
			faculty        pgtype.Int8
			schedule, room pgtype.Text
		)
		if err := rows.Scan(&c.ID, &c.Name, &faculty, &schedule, &room); err != nil {
			return nil, err
		}
		c.FacultyID = int8OrZero(faculty)
		c.Schedule = textOrEmpty(schedule)
		c.Room = textOrEmpty(room)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountClassesByFaculty counts the classes assigned to facultyID.
func (s *Store) CountClassesByFaculty(ctx context.Context, facultyID int64) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes WHERE faculty_id = $1`, facultyID).Scan(&n)
	return n, err
}

// FirstClassID returns the lowest class id taught by facultyID, or ErrNotFound.
func (s *Store) FirstClassID(ctx context.Context, facultyID int64) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`SELECT id FROM classes WHERE faculty_id = $1 ORDER BY id LIMIT 1`, facultyID).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}
