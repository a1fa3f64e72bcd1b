package gym

import "time"

type Gym struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Disciplines []string  `json:"disciplines"`
	CreatedBy   string    `json:"created_by"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`

	// DistanceKm is populated on nearby searches only.
	DistanceKm float64 `json:"distance_km,omitempty"`
}

type Review struct {
	ID        string    `json:"id"`
	GymID     string    `json:"gym_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
