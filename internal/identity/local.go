package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const localSessionTTL = time.Hour

// Local is an in-process identity provider for development and tests.
// It mimics the managed service's error messages so the HTTP surface
// behaves the same either way.
type Local struct {
	secret []byte

	mu    sync.Mutex
	users map[string]localUser
}

type localUser struct {
	id        string
	hash      []byte
	createdAt time.Time
}

func NewLocal(secret string) *Local {
	return &Local{secret: []byte(secret), users: map[string]localUser{}}
}

func (l *Local) SignUp(_ context.Context, email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.users[email]; exists {
		return User{}, errors.New("User already registered")
	}

	user := localUser{id: uuid.NewString(), hash: hash, createdAt: time.Now()}
	l.users[email] = user
	return User{ID: user.id, Email: email, CreatedAt: user.createdAt}, nil
}

func (l *Local) SignIn(_ context.Context, email, password string) (Session, User, error) {
	l.mu.Lock()
	user, ok := l.users[email]
	l.mu.Unlock()
	if !ok {
		return Session{}, User{}, errors.New("Invalid login credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.hash, []byte(password)); err != nil {
		return Session{}, User{}, errors.New("Invalid login credentials")
	}

	token, err := l.signToken(user.id, email)
	if err != nil {
		return Session{}, User{}, err
	}

	session := Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(localSessionTTL.Seconds()),
	}
	return session, User{ID: user.id, Email: email, CreatedAt: user.createdAt}, nil
}

type localClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (l *Local) signToken(userID, email string) (string, error) {
	claims := localClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(localSessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(l.secret)
}
