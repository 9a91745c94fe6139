package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aptmap/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims carries the login id in sub. Every token gets a fresh ULID
// jti, so two tokens issued in the same second still differ.
type TokenClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh JWTs. It does no I/O.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.AccessSecret) == "" {
		return nil, fmt.Errorf("%w: JWT_ACCESS_SECRET is required", ErrMisconfigured)
	}
	if strings.TrimSpace(cfg.RefreshSecret) == "" {
		return nil, fmt.Errorf("%w: JWT_REFRESH_SECRET is required", ErrMisconfigured)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrMisconfigured)
	}

	accessTTL, err := ParseExpiry(cfg.AccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ACCESS_TOKEN_EXPIRY: %v", ErrMisconfigured, err)
	}
	refreshTTL, err := ParseExpiry(cfg.RefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid REFRESH_TOKEN_EXPIRY: %v", ErrMisconfigured, err)
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(loginID string) (string, error) {
	return s.issue(loginID, TokenTypeAccess, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(loginID string) (string, error) {
	return s.issue(loginID, TokenTypeRefresh, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) VerifyAccessToken(token string) (*TokenClaims, error) {
	return s.verify(token, TokenTypeAccess, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (*TokenClaims, error) {
	return s.verify(token, TokenTypeRefresh, s.refreshSecret)
}

// VerifyAccessTokenAllowExpired checks signature and kind but not expiry.
// Only logout uses it, so an expired session can still be ended.
func (s *TokenService) VerifyAccessTokenAllowExpired(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return s.accessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || claims.Type != TokenTypeAccess || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) issue(loginID, typ string, secret []byte, ttl time.Duration) (string, error) {
	if loginID == "" {
		return "", ErrInvalidInput
	}
	now := s.now()
	claims := TokenClaims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   loginID,
			ID:        ulid.Make().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *TokenService) verify(tokenStr, typ string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Type != typ || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseExpiry accepts Go durations ("15m", "1h30m"), a leading day count
// ("7d", "1d12h") and bare seconds ("900").
func ParseExpiry(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty expiry")
	}

	var d time.Duration
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		if idx := strings.IndexByte(value, 'd'); idx > 0 {
			days, err := strconv.Atoi(value[:idx])
			if err != nil {
				return 0, fmt.Errorf("bad day count in %q", value)
			}
			d = time.Duration(days) * 24 * time.Hour
			value = value[idx+1:]
		}
		if value != "" {
			rest, err := time.ParseDuration(value)
			if err != nil {
				return 0, err
			}
			d += rest
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %s", d)
	}
	return d, nil
}
