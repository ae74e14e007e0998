package store

import "context"

// CountEvents counts scheduled events.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// CountStudentEvents counts the events studentID has joined.
func (s *Store) CountStudentEvents(ctx context.Context, studentID int64) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM student_events WHERE student_id = $1`, studentID).Scan(&n)
	return n, err
}
