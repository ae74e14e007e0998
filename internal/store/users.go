package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/portal/internal/models"
)

const userColumns = `id, username, password, role, name, email, rollno, section, department, class`

func scanUser(row pgx.Row) (models.User, error) {
	var (
		u                                         models.User
		role                                      string
		email, rollno, section, department, class pgtype.Text
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &role, &u.Name,
		&email, &rollno, &section, &department, &class); err != nil {
		return models.User{}, err
	}
	u.Role = models.Role(role)
	u.Email = textOrEmpty(email)
	u.RollNo = textOrEmpty(rollno)
	u.Section = textOrEmpty(section)
	u.Department = textOrEmpty(department)
	u.Class = textOrEmpty(class)
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// FindByUsername returns the user with the given username, or nil when none exists.
func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return findByUsername(ctx, s.db, username)
}

func findByUsername(ctx context.Context, db DBTX, username string) (*models.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if translate(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate returns the user whose username, password and role all match.
// Passwords are stored and compared as plain text.
func (s *Store) Authenticate(ctx context.Context, username, password string, role models.Role) (models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 AND password = $2 AND role = $3`,
		username, password, string(role)))
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// CreateUser inserts u and returns its id.
func (s *Store) CreateUser(ctx context.Context, u models.User) (int64, error) {
	return insertUser(ctx, s.db, u)
}

func insertUser(ctx context.Context, db DBTX, u models.User) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO users (username, password, role, name, email, rollno, section, department, class)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		u.Username, u.Password, string(u.Role), u.Name,
		ToPgText(u.Email), ToPgText(u.RollNo), ToPgText(u.Section),
		ToPgText(u.Department), ToPgText(u.Class),
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// UpdateStudent overwrites the student profile fields of user id.
func (s *Store) UpdateStudent(ctx context.Context, u models.User) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET name = $1, email = $2, class = $3, rollno = $4, section = $5, department = $6
		WHERE id = $7`,
		u.Name, ToPgText(u.Email), ToPgText(u.Class), ToPgText(u.RollNo),
		ToPgText(u.Section), ToPgText(u.Department), u.ID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile overwrites name, email and department of user id.
func (s *Store) UpdateProfile(ctx context.Context, u models.User) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, department = $3 WHERE id = $4`,
		u.Name, ToPgText(u.Email), ToPgText(u.Department), u.ID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password of user id.
func (s *Store) UpdatePassword(ctx context.Context, id int64, password string) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, password, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes user id. Attendance and permission rows are left behind.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsersByRole returns every user with the given role ordered by id.
func (s *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, string(role))
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// ListStudentsByRollNo returns all students ordered by roll number.
func (s *Store) ListStudentsByRollNo(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'student' ORDER BY rollno NULLS LAST, id`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// CountUsersByRole counts users with the given role.
func (s *Store) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&n)
	return n, err
}

// FirstFacultyID returns the lowest faculty id, or ErrNotFound when there is no faculty.
func (s *Store) FirstFacultyID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`SELECT id FROM users WHERE role = 'faculty' ORDER BY id LIMIT 1`).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}
