package auth

import (
	"context"
	"log"

	"backend-sparnet/internal/identity"
	"backend-sparnet/internal/profile"
)

type Service struct {
	provider identity.Provider
	profiles profile.Store
}

func NewService(provider identity.Provider, profiles profile.Store) *Service {
	return &Service{provider: provider, profiles: profiles}
}

// SignUp creates the identity and a skeleton profile row. A failed skeleton
// insert is reported alongside the successful user creation, not as a hard
// failure.
func (s *Service) SignUp(ctx context.Context, email, password string) (identity.User, error, error) {
	user, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return identity.User{}, nil, err
	}

	if s.profiles != nil {
		if pErr := s.profiles.CreateSkeleton(ctx, user.ID); pErr != nil {
			log.Printf("auth: profile insert failed for %s: %v", user.ID, pErr)
			return user, pErr, nil
		}
	}
	return user, nil, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (identity.Session, identity.User, error) {
	return s.provider.SignIn(ctx, email, password)
}
