package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aptmap/backend/internal/config"
	"github.com/aptmap/backend/internal/db"
	"github.com/aptmap/backend/internal/model"
	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type memUserStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[string]*model.User
	err     error
	swapErr error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*model.User{}}
}

func (s *memUserStore) CreateUser(ctx context.Context, loginID, name, passwordHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[loginID]; ok {
		return 0, db.ErrDuplicate
	}
	s.nextID++
	s.users[loginID] = &model.User{ID: s.nextID, LoginID: loginID, Name: name, Email: loginID, PasswordHash: passwordHash}
	return s.nextID, nil
}

func (s *memUserStore) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[loginID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) UpdatePasswordHash(ctx context.Context, loginID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[loginID]
	if !ok {
		return db.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *memUserStore) UpdateProfile(ctx context.Context, loginID, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[loginID]
	if !ok {
		return db.ErrNotFound
	}
	u.Name, u.Email = name, email
	return nil
}

func (s *memUserStore) SwapRefreshToken(ctx context.Context, loginID string, prev, next *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.swapErr != nil {
		return false, s.swapErr
	}
	u, ok := s.users[loginID]
	if !ok {
		return false, nil
	}
	cur := u.RefreshToken
	if (cur == nil) != (prev == nil) || (cur != nil && *cur != *prev) {
		return false, nil
	}
	u.RefreshToken = next
	return true, nil
}

type memApartmentStore struct {
	apartments []model.Apartment
	err        error
}

func (s *memApartmentStore) ListApartments(ctx context.Context, q model.ApartmentQuery) ([]model.Apartment, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.apartments
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memApartmentStore) ClusterApartments(ctx context.Context, q model.ClusterQuery) ([]model.ApartmentCluster, error) {
	return []model.ApartmentCluster{{Latitude: 37.5, Longitude: 127.0, Count: int64(len(s.apartments))}}, nil
}

func (s *memApartmentStore) PriceHistory(ctx context.Context, limit int) ([]model.PriceHistory, error) {
	return []model.PriceHistory{{Seq: 1, ComplexNo: 7}, {Seq: 2, ComplexNo: 7}}, nil
}

type testServer struct {
	router     *gin.Engine
	users      *memUserStore
	apartments *memApartmentStore
}

const testAccessSecret = "access-secret-for-tests"

// expiredAccessCookie signs an access token for loginID that expired an hour ago.
func expiredAccessCookie(t *testing.T, loginID string) *http.Cookie {
	t.Helper()
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.TokenClaims{
		Type: service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   loginID,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: service.AccessCookieName, Value: token}
}

func newTestServer(t *testing.T, env string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := service.NewTokenService(config.AuthConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  "15m",
		RefreshExpiry: "7d",
	})
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := config.AppConfig{Env: env}
	users := newMemUserStore()
	apartments := &memApartmentStore{}

	router, err := NewRouter(RouterDeps{
		App:        app,
		Auth:       service.NewAuthService(users, tokens, app, nil, log),
		Apartments: service.NewApartmentService(apartments),
		Log:        log,
		Ping:       func(context.Context) error { return nil },
	})
	require.NoError(t, err)

	return &testServer{router: router, users: users, apartments: apartments}
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
