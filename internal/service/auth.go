package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/aptmap/backend/internal/config"
	"github.com/aptmap/backend/internal/db"
	"github.com/aptmap/backend/internal/metrics"
	"github.com/aptmap/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"

	bcryptCost        = 10
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
	// 다른 요청이 refresh token을 먼저 바꾼 경우 다시 읽고 재시도합니다.
	maxSwapAttempts = 3
	passwordSpecial = `!@#$%^&*(),.?":{}|<>`
)

var errSwapContention = errors.New("refresh token swap lost too many races")

type CookieConfig struct {
	Path          string
	Secure        bool
	SameSite      http.SameSite
	AccessMaxAge  int
	RefreshMaxAge int
}

type RegisterInput struct {
	LoginID  string
	Name     string
	Password string
}

// UpdateProfileInput fields left nil keep their stored value.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

type AuthService struct {
	users     db.UserStore
	tokens    *TokenService
	metrics   *metrics.Metrics
	log       *slog.Logger
	cookieCfg CookieConfig
}

func NewAuthService(users db.UserStore, tokens *TokenService, app config.AppConfig, m *metrics.Metrics, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: m,
		log:     log,
		cookieCfg: CookieConfig{
			Path:          "/",
			Secure:        app.IsProduction(),
			SameSite:      http.SameSiteStrictMode,
			AccessMaxAge:  int(tokens.AccessTTL().Seconds()),
			RefreshMaxAge: int(tokens.RefreshTTL().Seconds()),
		},
	}
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (id int64, err error) {
	defer func() { s.metrics.ObserveAuth("register", err) }()

	loginID := strings.TrimSpace(in.LoginID)
	name := strings.TrimSpace(in.Name)
	if loginID == "" || name == "" || !StrongPassword(in.Password) {
		return 0, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return 0, err
	}

	id, err = s.users.CreateUser(ctx, loginID, name, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}

	s.log.Info("auth.register", "user_id", id, "login_id", loginID)
	return id, nil
}

// Login verifies the password and stores the new refresh token, replacing
// any previous one. Unknown users and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (res *LoginResult, err error) {
	defer func() { s.metrics.ObserveAuth("login", err) }()

	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.LoginID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.LoginID)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user, &refreshToken); err != nil {
		// 비밀번호 확인 뒤 계정이 삭제된 경우
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	user.RefreshToken = &refreshToken

	s.log.Info("auth.login", "user_id", user.ID)
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh issues a new access token for a refresh token that verifies and
// still matches the stored one. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	defer func() { s.metrics.ObserveAuth("refresh", err) }()

	if strings.TrimSpace(refreshToken) == "" {
		return "", ErrMissingToken
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrRefreshRejected
	}

	user, err := s.users.GetUserByLoginID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrRefreshRejected
		}
		return "", err
	}
	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		return "", ErrRefreshRejected
	}

	return s.tokens.IssueAccessToken(user.LoginID)
}

// Logout clears the stored refresh token. A user without one is a no-op.
func (s *AuthService) Logout(ctx context.Context, loginID string) (err error) {
	defer func() { s.metrics.ObserveAuth("logout", err) }()

	user, err := s.GetUser(ctx, loginID)
	if err != nil {
		return err
	}
	if err := s.storeRefreshToken(ctx, user, nil); err != nil {
		return err
	}
	s.log.Info("auth.logout", "user_id", user.ID)
	return nil
}

// EndSession ends the session named by an access token, expired or not,
// and returns its login id. ErrMissingToken and ErrInvalidToken mean nothing
// was touched; any other error comes from Logout.
func (s *AuthService) EndSession(ctx context.Context, accessToken string) (string, error) {
	if strings.TrimSpace(accessToken) == "" {
		return "", ErrMissingToken
	}
	claims, err := s.tokens.VerifyAccessTokenAllowExpired(accessToken)
	if err != nil {
		return "", err
	}
	return claims.Subject, s.Logout(ctx, claims.Subject)
}

// storeRefreshToken compare-and-sets the refresh token column, re-reading
// the row when a concurrent login or logout changed it first.
func (s *AuthService) storeRefreshToken(ctx context.Context, user *model.User, next *string) error {
	prev := user.RefreshToken
	for attempt := 1; ; attempt++ {
		if prev == nil && next == nil {
			return nil
		}
		swapped, err := s.users.SwapRefreshToken(ctx, user.LoginID, prev, next)
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}
		if attempt == maxSwapAttempts {
			return fmt.Errorf("%w: user %d", errSwapContention, user.ID)
		}

		current, err := s.users.GetUserByLoginID(ctx, user.LoginID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		prev = current.RefreshToken
	}
}

// Authenticate resolves an access token to a live account.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.AuthUser, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrMissingToken
	}
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return &model.AuthUser{ID: user.ID, LoginID: user.LoginID}, nil
}

func (s *AuthService) GetUser(ctx context.Context, loginID string) (*model.User, error) {
	user, err := s.users.GetUserByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword leaves existing sessions alone.
func (s *AuthService) ChangePassword(ctx context.Context, loginID, current, next string) (err error) {
	defer func() { s.metrics.ObserveAuth("change_password", err) }()

	user, err := s.GetUser(ctx, loginID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrIncorrectPassword
	}
	if !StrongPassword(next) {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, loginID, string(hash)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info("auth.change_password", "user_id", user.ID)
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, loginID string, in UpdateProfileInput) (*model.User, error) {
	user, err := s.GetUser(ctx, loginID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		user.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, ErrInvalidInput
		}
		user.Email = email
	}

	if err := s.users.UpdateProfile(ctx, loginID, user.Name, user.Email); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// StrongPassword requires 8 to 72 bytes with at least one digit, one upper
// case letter, one lower case letter and one special character.
func StrongPassword(pw string) bool {
	if len(pw) < minPasswordLength || len(pw) > maxPasswordLength {
		return false
	}
	var digit, upper, lower, special bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case strings.ContainsRune(passwordSpecial, r):
			special = true
		}
	}
	return digit && upper && lower && special
}
