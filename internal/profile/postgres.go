package profile

import (
	"context"

	"backend-sparnet/internal/db"
)

type PostgresStore struct {
	db db.Querier
}

func NewPostgresStore(db db.Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, params UpsertParams) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, username, location, preferred_arts, skill_level, updated_at)
		VALUES ($1,$2,$3,$4,$5, now())
		ON CONFLICT (user_id) DO UPDATE
		SET username=EXCLUDED.username,
		    location=EXCLUDED.location,
		    preferred_arts=EXCLUDED.preferred_arts,
		    skill_level=EXCLUDED.skill_level,
		    updated_at=now()
		RETURNING user_id, username, location, preferred_arts, skill_level, updated_at
	`, params.UserID, params.Username, params.Location, params.PreferredArts, params.SkillLevel)

	var p Profile
	if err := row.Scan(&p.UserID, &p.Username, &p.Location, &p.PreferredArts, &p.SkillLevel, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *PostgresStore) CreateSkeleton(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO profiles (user_id, username, location, preferred_arts, skill_level)
		VALUES ($1, NULL, NULL, '{}', NULL)
	`, userID)
	return err
}
