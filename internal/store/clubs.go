package store

import (
	"context"

	"github.com/JonMunkholm/portal/internal/models"
)

// ListActiveClubsEvents returns active clubs and events ordered by type then name.
func (s *Store) ListActiveClubsEvents(ctx context.Context) ([]models.ClubEvent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, type, is_active, created_at
		FROM clubs_events WHERE is_active ORDER BY type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ClubEvent
	for rows.Next() {
		var (
			c    models.ClubEvent
			kind string
		)
		if err := rows.Scan(&c.ID, &c.Name, &kind, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Type = models.ClubEventType(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateClubEvent inserts an active club or event and returns its id.
func (s *Store) CreateClubEvent(ctx context.Context, name string, kind models.ClubEventType) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO clubs_events (name, type) VALUES ($1, $2) RETURNING id`,
		name, string(kind)).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// UpdateClubEvent renames and retypes entry id.
func (s *Store) UpdateClubEvent(ctx context.Context, id int64, name string, kind models.ClubEventType) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE clubs_events SET name = $1, type = $2 WHERE id = $3`, name, string(kind), id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClubEvent removes entry id.
func (s *Store) DeleteClubEvent(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM clubs_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
