package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/portal/internal/models"
)

// CreatePermission files a leave request and returns its id.
func (s *Store) CreatePermission(ctx context.Context, p models.Permission) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO permissions (student_id, faculty_id, date, reason, proof)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.StudentID, p.FacultyID, ToPgDate(p.Date), p.Reason, ToPgText(p.Proof),
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// SetPermissionStatus updates the review status of permission id.
func (s *Store) SetPermissionStatus(ctx context.Context, id int64, status models.PermissionStatus) error {
	tag, err := s.db.Exec(ctx, `UPDATE permissions SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountPendingPermissions counts pending requests. A zero facultyID or
// studentID disables that filter.
func (s *Store) CountPendingPermissions(ctx context.Context, facultyID, studentID int64) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM permissions
		WHERE status = 'pending'
		  AND ($1::bigint IS NULL OR faculty_id = $1)
		  AND ($2::bigint IS NULL OR student_id = $2)`,
		ToPgInt8(facultyID), ToPgInt8(studentID),
	).Scan(&n)
	return n, err
}

// ListPermissionsForFaculty returns requests addressed to a faculty member
// with the requesting student's name and roll number.
func (s *Store) ListPermissionsForFaculty(ctx context.Context, facultyID int64) ([]models.Permission, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.student_id, p.faculty_id, p.date, p.reason, p.proof, p.status, p.created_at,
		       u.name, u.rollno, NULL::text
		FROM permissions p
		JOIN users u ON p.student_id = u.id
		WHERE p.faculty_id = $1
		ORDER BY p.created_at DESC, p.id DESC`, facultyID)
	if err != nil {
		return nil, err
	}
	return collectPermissions(rows)
}

// ListPermissionsForStudent returns a student's requests with the reviewing
// faculty member's name.
func (s *Store) ListPermissionsForStudent(ctx context.Context, studentID int64) ([]models.Permission, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.student_id, p.faculty_id, p.date, p.reason, p.proof, p.status, p.created_at,
		       NULL::text, NULL::text, u.name
		FROM permissions p
		LEFT JOIN users u ON p.faculty_id = u.id
		WHERE p.student_id = $1
		ORDER BY p.created_at DESC, p.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	return collectPermissions(rows)
}

func collectPermissions(rows pgx.Rows) ([]models.Permission, error) {
	defer rows.Close()
	var out []models.Permission
	for rows.Next() {
		var (
			p                                    models.Permission
			studentID, facultyID                 pgtype.Int8
			date                                 pgtype.Date
			proof, studentName, rollno, facultyN pgtype.Text
			status                               string
			created                              time.Time
		)
		if err := rows.Scan(&p.ID, &studentID, &facultyID, &date, &p.Reason, &proof, &status, &created,
			&studentName, &rollno, &facultyN); err != nil {
			return nil, err
		}
		p.StudentID = int8OrZero(studentID)
		p.FacultyID = int8OrZero(facultyID)
		p.Date = date.Time
		p.Proof = textOrEmpty(proof)
		p.Status = models.PermissionStatus(status)
		p.CreatedAt = created
		p.StudentName = textOrEmpty(studentName)
		p.RollNo = textOrEmpty(rollno)
		p.FacultyName = textOrEmpty(facultyN)
		out = append(out, p)
	}
	return out, rows.Err()
}
