package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SupabaseStore upserts profiles through the managed service's REST layer
// using the service-role key.
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewSupabaseStore(baseURL, serviceKey string) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type supabaseProfile struct {
	UserID        string   `json:"user_id"`
	Username      *string  `json:"username"`
	Location      *string  `json:"location"`
	PreferredArts []string `json:"preferred_arts"`
	SkillLevel    *string  `json:"skill_level"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

func (s *SupabaseStore) Upsert(ctx context.Context, params UpsertParams) (Profile, error) {
	username := params.Username
	body := supabaseProfile{
		UserID:        params.UserID,
		Username:      &username,
		Location:      params.Location,
		PreferredArts: params.PreferredArts,
		SkillLevel:    params.SkillLevel,
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	var rows []supabaseProfile
	err := s.do(ctx, "/rest/v1/profiles?on_conflict=user_id", "resolution=merge-duplicates,return=representation", body, &rows)
	if err != nil {
		return Profile{}, err
	}
	if len(rows) == 0 {
		return Profile{}, errors.New("upsert returned no rows")
	}

	p := Profile{
		UserID:        rows[0].UserID,
		Username:      rows[0].Username,
		Location:      rows[0].Location,
		PreferredArts: rows[0].PreferredArts,
		SkillLevel:    rows[0].SkillLevel,
	}
	if rows[0].UpdatedAt != "" {
		if at, parseErr := time.Parse(time.RFC3339, rows[0].UpdatedAt); parseErr == nil {
			p.UpdatedAt = at
		}
	}
	return p, nil
}

func (s *SupabaseStore) CreateSkeleton(ctx context.Context, userID string) error {
	body := supabaseProfile{UserID: userID, PreferredArts: []string{}}
	return s.do(ctx, "/rest/v1/profiles", "return=minimal", body, nil)
}

func (s *SupabaseStore) do(ctx context.Context, path, prefer string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Prefer", prefer)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New(restErrorMessage(payload, resp.StatusCode))
	}
	if out != nil {
		return json.Unmarshal(payload, out)
	}
	return nil
}

// restErrorMessage surfaces the upstream message verbatim when present.
func restErrorMessage(payload []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Msg != "":
			return body.Msg
		case body.Error != "":
			return body.Error
		}
	}
	return fmt.Sprintf("upstream error (status %d)", status)
}
