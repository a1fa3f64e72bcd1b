package profile

import "time"

// Profile is one row of the profiles table, keyed by the auth user id.
type Profile struct {
	UserID        string    `json:"user_id"`
	Username      *string   `json:"username"`
	Location      *string   `json:"location"`
	PreferredArts []string  `json:"preferred_arts"`
	SkillLevel    *string   `json:"skill_level"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpsertParams is the strongly-typed result of sanitizing an upsert request.
type UpsertParams struct {
	UserID        string
	Username      string
	Location      *string
	PreferredArts []string
	SkillLevel    *string
}
