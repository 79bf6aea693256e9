package application

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	repo "github.com/sportgear/ecommerce-auth/internal/domain/repository"
	"github.com/sportgear/ecommerce-auth/pkg/helpers"
	"github.com/sportgear/ecommerce-auth/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
)

const profileCacheTTL = 10 * time.Minute

// AuthService coordinates the register/login/lookup use cases across the
// user store, the password hasher, and the token issuer. The hasher and
// token issuer are injected capabilities, never globals.
type AuthService struct {
	Repo         repo.UserRepository
	Hasher       entity.PasswordHasher
	Tokens       *helpers.JWTManager
	Redis        *redis.Client
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	MailEnabled  bool
}

func NewAuthService(repo repo.UserRepository, hasher entity.PasswordHasher, tokens *helpers.JWTManager,
	rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher,
	es *elasticsearch.Client, esUsersIndex string, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:         repo,
		Hasher:       hasher,
		Tokens:       tokens,
		Redis:        rdb,
		Logger:       logger,
		Pub:          pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		MailEnabled:  mailEnabled,
	}
}

// RegisterInput is the candidate record for a new account. Password is the
// raw credential; it is hashed before anything touches the store.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth *time.Time
	Addresses   []entity.Address
}

// AuthResult carries a freshly issued token plus the public profile of the
// authenticated user. It never exposes the password hash.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      Profile
}

// Register creates a new account and issues a token keyed on the email.
// The email-existence check here is a fast path; the unique index in the
// store is the authoritative guard when two registrations race.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}

	u := &entity.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		DateOfBirth: in.DateOfBirth,
	}
	if err := u.SetPassword(in.Password, s.Hasher); err != nil {
		return nil, err
	}
	if !u.PrepareForRegistration() {
		return nil, ErrInvalidEmail
	}
	// Role is forced regardless of caller input; admins are seeded, not
	// self-registered.
	u.Role = entity.RoleCustomer
	for _, a := range in.Addresses {
		u.AddAddress(a)
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.Tokens.Generate(u.Email)
	if err != nil {
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, u)
	s.indexUser(ctx, u)

	return &AuthResult{Token: token, ExpiresAt: exp, User: profileOf(u)}, nil
}

// Login authenticates the credentials and issues a token keyed on the
// email. A successful login persists the updated last-login stamp.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if !u.Authenticate(rawPassword, s.Hasher) {
		return nil, ErrInvalidCredentials
	}
	if u.LastLogin != nil {
		if err := s.Repo.UpdateLastLogin(ctx, u.ID, *u.LastLogin); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("persist last_login failed")
		}
	}
	s.invalidateProfile(ctx, u.ID)

	token, exp, err := s.Tokens.Generate(u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: profileOf(u)}, nil
}

// GetUserByID returns the public profile for the id, reading through a
// redis cache when one is configured. Not-found surfaces as ErrUserNotFound;
// malformed ids are a boundary-layer concern.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*Profile, error) {
	if s.Redis != nil {
		var cached Profile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, helpers.KeyUserProfile(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	p := profileOf(u)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, helpers.KeyUserProfile(id), p, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache write failed")
		}
	}
	return &p, nil
}

// VerifyToken is the non-throwing guard used by the verify endpoint.
func (s *AuthService) VerifyToken(token string) bool {
	return s.Tokens.Validate(token)
}

func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"Name":     displayName(u),
			"Initials": u.Initials(),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) {
	indexUserDoc(ctx, s.ES, s.ESUsersIndex, s.Logger, u)
}

func (s *AuthService) invalidateProfile(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.KeyUserProfile(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache invalidation failed")
	}
}

func displayName(u *entity.User) string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
