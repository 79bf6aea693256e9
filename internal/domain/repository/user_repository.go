package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
)

var (
	// ErrNotFound indicates no user matches the given key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates the unique email constraint rejected a write.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the durable store for User records, keyed by id and by
// email. Implementations must call FinalizeForCreate on the entity exactly
// once inside Create, and must surface unique-constraint violations as
// ErrDuplicateEmail so duplicate registration stays safe under concurrency.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]*entity.User, error)
}
