package repositories

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// UserRepository manages application users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdateRefreshToken stores the hash and expiry of the user's current
	// refresh token; both nil-equivalents clear it.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error
}
