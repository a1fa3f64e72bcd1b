package identity

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestLocalSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	provider := NewLocal("test-secret")

	user, err := provider.SignUp(ctx, "a@b.com", "pw123456")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.ID == "" || user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	session, loggedIn, err := provider.SignIn(ctx, "a@b.com", "pw123456")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected same user id")
	}
	if session.AccessToken == "" || session.TokenType != "bearer" || session.ExpiresIn != 3600 {
		t.Fatalf("unexpected session: %+v", session)
	}

	claims := &localClaims{}
	parsed, err := jwt.ParseWithClaims(session.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not validate: %v", err)
	}
	if claims.Subject != user.ID || claims.Email != "a@b.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLocalDuplicateSignUp(t *testing.T) {
	ctx := context.Background()
	provider := NewLocal("secret")

	if _, err := provider.SignUp(ctx, "a@b.com", "pw123456"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := provider.SignUp(ctx, "a@b.com", "other"); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestLocalInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	provider := NewLocal("secret")
	_, _ = provider.SignUp(ctx, "a@b.com", "pw123456")

	if _, _, err := provider.SignIn(ctx, "a@b.com", "wrong"); err == nil {
		t.Fatalf("expected error for wrong password")
	}
	if _, _, err := provider.SignIn(ctx, "unknown@b.com", "pw123456"); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}
