package user

import (
	"context"
	"errors"

	"github.com/prerna-auth/internal/domain"
)

const msgUserNotFound = "User not found"

type Service interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

// Me loads the profile of the authenticated caller.
func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.NewError(domain.ErrUnauthorized, "missing user id")
	}
	u, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, msgUserNotFound)
	}
	if err != nil {
		return nil, domain.Dependency("get user", err)
	}
	return u, nil
}
