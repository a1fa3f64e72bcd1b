package identity

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

// ErrMissingAnonKey marks a deployment fault: sign-in is configured
// against Supabase but no anon key was provided.
var ErrMissingAnonKey = errors.New("missing anon key")

// Supabase talks to the managed auth service. Admin user creation uses the
// service-role key; password sign-in uses the anon key only.
type Supabase struct {
	baseURL    string
	serviceKey string
	anonKey    string
	client     *http.Client
}

func NewSupabase(baseURL, serviceKey, anonKey string) *Supabase {
	return &Supabase{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		anonKey:    anonKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Supabase) SignUp(ctx context.Context, email, password string) (User, error) {
	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}

	var user supabaseUser
	err := s.post(ctx, "/auth/v1/admin/users", s.serviceKey, body, &user)
	if err != nil {
		return User{}, err
	}
	return user.toUser(), nil
}

func (s *Supabase) SignIn(ctx context.Context, email, password string) (Session, User, error) {
	if s.anonKey == "" {
		return Session{}, User{}, ErrMissingAnonKey
	}

	body := map[string]any{"email": email, "password": password}
	var grant struct {
		AccessToken  string       `json:"access_token"`
		TokenType    string       `json:"token_type"`
		ExpiresIn    int64        `json:"expires_in"`
		RefreshToken string       `json:"refresh_token"`
		User         supabaseUser `json:"user"`
	}
	err := s.post(ctx, "/auth/v1/token?grant_type=password", s.anonKey, body, &grant)
	if err != nil {
		return Session{}, User{}, err
	}

	session := Session{
		AccessToken:  grant.AccessToken,
		TokenType:    grant.TokenType,
		ExpiresIn:    grant.ExpiresIn,
		RefreshToken: grant.RefreshToken,
	}
	return session, grant.User.toUser(), nil
}

type supabaseUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func (u supabaseUser) toUser() User {
	user := User{ID: u.ID, Email: u.Email}
	if at, err := time.Parse(time.RFC3339, u.CreatedAt); err == nil {
		user.CreatedAt = at
	}
	return user
}

func (s *Supabase) post(ctx context.Context, path, key string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)

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
		return errors.New(authErrorMessage(payload, resp.StatusCode))
	}
	if out != nil {
		return json.Unmarshal(payload, out)
	}
	return nil
}

func authErrorMessage(payload []byte, status int) string {
	var body struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		switch {
		case body.ErrorDescription != "":
			return body.ErrorDescription
		case body.Msg != "":
			return body.Msg
		case body.Message != "":
			return body.Message
		}
	}
	return fmt.Sprintf("auth error (status %d)", status)
}
