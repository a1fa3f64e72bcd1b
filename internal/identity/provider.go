package identity

import (
	"context"
	"time"
)

// User is the identity record returned by the provider.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the credential bundle handed back to the client on login.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Provider is the external identity boundary. The Supabase implementation
// proxies to the managed service; the Local implementation backs development
// and tests. Sign-in never uses elevated credentials.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (User, error)
	SignIn(ctx context.Context, email, password string) (Session, User, error)
}
