package auth

import (
	"context"

	"trainerhub/internal/domain"
)

// UserRepository is the subset of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User, p *domain.Profile, t *domain.Trainer) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, updates map[string]any) (*domain.Profile, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
