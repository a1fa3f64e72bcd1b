package gym

import (
	"context"
	"sort"

	"backend-sparnet/internal/db"
	"backend-sparnet/internal/onboarding"
	"backend-sparnet/internal/shared/geo"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateGym(ctx context.Context, input Gym) (Gym, error) {
	input.ID = uuid.NewString()
	input.Disciplines = knownDisciplines(input.Disciplines)
	row := s.db.QueryRow(ctx, `
		INSERT INTO gyms (id, name, description, address, location, disciplines, created_by, is_verified)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7, $8, $9)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Address, input.Lng, input.Lat, input.Disciplines, input.CreatedBy, input.IsVerified)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Gym{}, err
	}
	return input, nil
}

func (s *Service) UpdateGym(ctx context.Context, id string, patch Gym) (Gym, error) {
	g, err := s.GetGym(ctx, id)
	if err != nil {
		return Gym{}, err
	}
	if patch.Name != "" {
		g.Name = patch.Name
	}
	if patch.Description != "" {
		g.Description = patch.Description
	}
	if patch.Address != "" {
		g.Address = patch.Address
	}
	if patch.Lat != 0 {
		g.Lat = patch.Lat
	}
	if patch.Lng != 0 {
		g.Lng = patch.Lng
	}
	if len(patch.Disciplines) > 0 {
		g.Disciplines = knownDisciplines(patch.Disciplines)
	}
	if patch.IsVerified {
		g.IsVerified = true
	}

	_, err = s.db.Exec(ctx, `
		UPDATE gyms
		SET name=$2, description=$3, address=$4,
		    location=ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography,
		    disciplines=$7, is_verified=$8
		WHERE id=$1
	`, g.ID, g.Name, g.Description, g.Address, g.Lng, g.Lat, g.Disciplines, g.IsVerified)
	if err != nil {
		return Gym{}, err
	}
	return g, nil
}

func (s *Service) GetGym(ctx context.Context, id string) (Gym, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, address, ST_Y(location::geometry), ST_X(location::geometry),
		       disciplines, created_by, is_verified, created_at
		FROM gyms WHERE id=$1
	`, id)
	var g Gym
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Address, &g.Lat, &g.Lng, &g.Disciplines, &g.CreatedBy, &g.IsVerified, &g.CreatedAt); err != nil {
		return Gym{}, err
	}
	return g, nil
}

func (s *Service) ListGyms(ctx context.Context, limit int) ([]Gym, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, address, ST_Y(location::geometry), ST_X(location::geometry),
		       disciplines, created_by, is_verified, created_at
		FROM gyms
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gyms []Gym
	for rows.Next() {
		var g Gym
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Address, &g.Lat, &g.Lng, &g.Disciplines, &g.CreatedBy, &g.IsVerified, &g.CreatedAt); err != nil {
			return nil, err
		}
		gyms = append(gyms, g)
	}
	return gyms, nil
}

func (s *Service) DeleteGym(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM gyms WHERE id=$1`, id)
	return err
}

func (s *Service) AddReview(ctx context.Context, gymID, userID string, rating int, comment string) (Review, error) {
	review := Review{
		ID:      uuid.NewString(),
		GymID:   gymID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO gym_reviews (id, gym_id, user_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (gym_id, user_id) DO UPDATE
		SET rating=EXCLUDED.rating, comment=EXCLUDED.comment
		RETURNING created_at
	`, review.ID, review.GymID, review.UserID, review.Rating, review.Comment)
	if err := row.Scan(&review.CreatedAt); err != nil {
		return Review{}, err
	}
	return review, nil
}

func (s *Service) Reviews(ctx context.Context, gymID string) ([]Review, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, gym_id, user_id, rating, comment, created_at
		FROM gym_reviews WHERE gym_id=$1
		ORDER BY created_at DESC
	`, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.GymID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// Nearby returns gyms within radiusKm of the given point, closest first.
// Discipline, when non-empty, restricts results to gyms teaching it.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64, discipline string) ([]Gym, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, address, ST_Y(location::geometry), ST_X(location::geometry),
		       disciplines, created_by, is_verified, created_at
		FROM gyms
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		  AND ($4 = '' OR $4 = ANY(disciplines))
	`, lng, lat, radiusKm*1000, discipline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Gym
	for rows.Next() {
		var g Gym
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Address, &g.Lat, &g.Lng, &g.Disciplines, &g.CreatedBy, &g.IsVerified, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.DistanceKm = geo.HaversineKm(lat, lng, g.Lat, g.Lng)
		results = append(results, g)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

func knownDisciplines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		for _, art := range onboarding.MartialArts {
			if d == art {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
