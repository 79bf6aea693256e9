package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	repo "github.com/sportgear/ecommerce-auth/internal/domain/repository"
	"github.com/sportgear/ecommerce-auth/pkg/helpers"
)

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
)

// UserService carries the management operations around the auth core:
// listing and searching accounts, role/status transitions, profile and
// password updates, and aggregate stats.
type UserService struct {
	Repo         repo.UserRepository
	Hasher       entity.PasswordHasher
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repo.UserRepository, hasher entity.PasswordHasher,
	rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{Repo: repo, Hasher: hasher, Redis: rdb, Logger: logger, ES: es, ESUsersIndex: esUsersIndex}
}

// ListFilter narrows the user listing. Empty fields match everything.
type ListFilter struct {
	Search string
	Role   string
	Status string
}

// List returns public profiles matching the filter. Free-text search goes
// through Elasticsearch when configured and falls back to a store scan.
func (s *UserService) List(ctx context.Context, f ListFilter) ([]Profile, error) {
	var roleFilter entity.Role
	if f.Role != "" {
		r, ok := entity.ParseRole(f.Role)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, f.Role)
		}
		roleFilter = r
	}
	var statusFilter entity.Status
	if f.Status != "" {
		st, ok := entity.ParseStatus(f.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, f.Status)
		}
		statusFilter = st
	}

	users, err := s.candidates(ctx, f.Search)
	if err != nil {
		return nil, err
	}

	out := make([]Profile, 0, len(users))
	for _, u := range users {
		if roleFilter != "" && u.Role != roleFilter {
			continue
		}
		if statusFilter != "" && u.Status != statusFilter {
			continue
		}
		out = append(out, profileOf(u))
	}
	return out, nil
}

// candidates resolves the free-text search, preferring the ES index.
func (s *UserService) candidates(ctx context.Context, search string) ([]*entity.User, error) {
	if search != "" && s.ES != nil && s.ESUsersIndex != "" {
		ids, err := searchUserIDs(ctx, s.ES, s.ESUsersIndex, search, 50)
		if err == nil {
			users := make([]*entity.User, 0, len(ids))
			for _, id := range ids {
				if u, err := s.Repo.GetByID(ctx, id); err == nil && u != nil {
					users = append(users, u)
				}
			}
			return users, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to store scan")
		}
	}

	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return users, nil
	}
	q := strings.ToLower(search)
	matched := users[:0]
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// Stats aggregates account totals by role and by status.
type Stats struct {
	Total    int            `json:"total"`
	ByRole   map[string]int `json:"roleStats"`
	ByStatus map[string]int `json:"statusStats"`
}

func (s *UserService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{Total: len(users), ByRole: map[string]int{}, ByStatus: map[string]int{}}
	for _, u := range users {
		st.ByRole[string(u.Role)]++
		st.ByStatus[string(u.Status)]++
	}
	return st, nil
}

// GetByID returns the public profile, bypassing any cache.
func (s *UserService) GetByID(ctx context.Context, id string) (*Profile, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	p := profileOf(u)
	return &p, nil
}

// UpdateRole moves the account onto a new role.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*Profile, error) {
	r, ok := entity.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	return s.mutate(ctx, id, func(u *entity.User) { u.Role = r })
}

// UpdateStatus moves the account onto a new lifecycle status.
func (s *UserService) UpdateStatus(ctx context.Context, id, status string) (*Profile, error) {
	st, ok := entity.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.mutate(ctx, id, func(u *entity.User) { u.Status = st })
}

// ProfileUpdate carries the optional profile fields; nil means untouched.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	DateOfBirth *time.Time
}

// UpdateProfile overwrites only the provided fields.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*Profile, error) {
	return s.mutate(ctx, id, func(u *entity.User) {
		u.UpdateProfile(in.FirstName, in.LastName, in.PhoneNumber, in.DateOfBirth)
	})
}

// ChangePassword verifies the current credential and stores a new hash.
// The length rule applies regardless of whether the current password is
// correct.
func (s *UserService) ChangePassword(ctx context.Context, id, currentRaw, newRaw string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if len(newRaw) < 6 {
		return ErrPasswordTooShort
	}
	if !u.ChangePassword(currentRaw, newRaw, s.Hasher) {
		return ErrInvalidCredentials
	}
	return s.Repo.UpdatePassword(ctx, id, u.PasswordHash)
}

func (s *UserService) mutate(ctx context.Context, id string, fn func(*entity.User)) (*Profile, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	fn(u)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	indexUserDoc(ctx, s.ES, s.ESUsersIndex, s.Logger, u)
	p := profileOf(u)
	return &p, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.KeyUserProfile(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache invalidation failed")
	}
}
