package profile

import (
	"errors"
	"strconv"
)

// UpsertRequest is the loosely-shaped inbound payload. Clients send
// preferred_arts and skill_level in whatever shape they have; coercion to the
// typed UpsertParams happens here and nowhere else.
type UpsertRequest struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Location      string `json:"location"`
	PreferredArts []any  `json:"preferred_arts"`
	SkillLevel    any    `json:"skill_level"`
}

var ErrMissingIdentity = errors.New("user_id and username required")

// Sanitize validates the required fields and coerces the rest:
// non-string preferred_arts entries are dropped, skill_level becomes a
// string or null, an empty location becomes null.
func (r UpsertRequest) Sanitize() (UpsertParams, error) {
	if r.UserID == "" || r.Username == "" {
		return UpsertParams{}, ErrMissingIdentity
	}

	arts := make([]string, 0, len(r.PreferredArts))
	for _, entry := range r.PreferredArts {
		if s, ok := entry.(string); ok {
			arts = append(arts, s)
		}
	}

	params := UpsertParams{
		UserID:        r.UserID,
		Username:      r.Username,
		PreferredArts: arts,
		SkillLevel:    coerceString(r.SkillLevel),
	}
	if r.Location != "" {
		location := r.Location
		params.Location = &location
	}
	return params, nil
}

func coerceString(value any) *string {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}
