package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/sportgear/ecommerce-auth/internal/application"
	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	"github.com/sportgear/ecommerce-auth/internal/domain/repository"
	"github.com/sportgear/ecommerce-auth/pkg/helpers"
	"github.com/sportgear/ecommerce-auth/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type stubUserRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[string]*entity.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.FinalizeForCreate()
	u.ID = uuid.NewString()
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (s *stubUserRepo) List(_ context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.User, 0, len(s.byID))
	for _, u := range s.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type echoHasher struct{}

func (echoHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("empty password")
	}
	return "hashed:" + plain, nil
}

func (echoHasher) Verify(hash, plain string) bool {
	return hash == "hashed:"+plain
}

type testEnv struct {
	repo    *stubUserRepo
	authSvc *application.AuthService
	userSvc *application.UserService
	router  *gin.Engine
}

func newTestEnv() *testEnv {
	repo := newStubUserRepo()
	logger := logrus.New()
	tokens := helpers.NewJWTManager("test-secret", time.Hour)
	authSvc := application.NewAuthService(repo, echoHasher{}, tokens, nil, logger, nil, nil, "", false)
	userSvc := application.NewUserService(repo, echoHasher{}, nil, logger, nil, "")

	r := gin.New()
	auth := NewAuthHandler(authSvc, logger)
	users := NewUserHandler(userSvc, logger)

	r.POST("/api/auth/register", auth.Register)
	r.POST("/api/auth/login", auth.Login)
	r.GET("/api/auth/verify", auth.Verify)
	r.GET("/api/auth/users/:id", auth.GetUser)

	r.GET("/api/users", users.List)
	r.GET("/api/users/stats", users.Stats)
	r.GET("/api/users/:id", users.Get)
	r.PUT("/api/users/:id/role", users.UpdateRole)
	r.PUT("/api/users/:id/status", users.UpdateStatus)
	r.PUT("/api/users/:id/profile", users.UpdateProfile)
	r.PUT("/api/users/:id/password", users.UpdatePassword)

	return &testEnv{repo: repo, authSvc: authSvc, userSvc: userSvc, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) register(t *testing.T, email, password string) map[string]any {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":     email,
		"password":  password,
		"firstName": "Jane",
		"lastName":  "Doe",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)
}
