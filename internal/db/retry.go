package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/aptmap/backend/internal/config"
	"github.com/aptmap/backend/internal/metrics"
	"github.com/aptmap/backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// UserStore is the credential store as seen by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, loginID, name, passwordHash string) (int64, error)
	GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, loginID, passwordHash string) error
	UpdateProfile(ctx context.Context, loginID, name, email string) error
	SwapRefreshToken(ctx context.Context, loginID string, prev, next *string) (bool, error)
}

type ApartmentStore interface {
	ListApartments(ctx context.Context, q model.ApartmentQuery) ([]model.Apartment, error)
	ClusterApartments(ctx context.Context, q model.ClusterQuery) ([]model.ApartmentCluster, error)
	PriceHistory(ctx context.Context, limit int) ([]model.PriceHistory, error)
}

var (
	_ UserStore      = (*Postgres)(nil)
	_ ApartmentStore = (*Postgres)(nil)
	_ UserStore      = (*RetryingUserStore)(nil)
	_ ApartmentStore = (*RetryingApartmentStore)(nil)
)

// Retrier runs a store call with a per-call timeout and retries it with a
// constant backoff while the failure looks like a dropped connection.
type Retrier struct {
	attempts uint64
	backoff  time.Duration
	timeout  time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
}

func NewRetrier(cfg config.PostgresConfig, log *slog.Logger, m *metrics.Metrics) *Retrier {
	if log == nil {
		log = slog.Default()
	}
	return &Retrier{
		attempts: cfg.RetryAttempts,
		backoff:  max(cfg.RetryBackoff, time.Millisecond),
		timeout:  cfg.QueryTimeout,
		log:      log,
		metrics:  m,
	}
}

// Do retries fn on any transient failure. Use it for reads and idempotent
// writes only.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return r.do(ctx, op, IsTransient, fn)
}

// DoOnce retries fn only when the failure proves the statement never reached
// the server. A reset or EOF after sending may hide a commit.
func (r *Retrier) DoOnce(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return r.do(ctx, op, NotSent, fn)
}

func (r *Retrier) do(ctx context.Context, op string, retryable func(error) bool, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(r.attempts, retry.NewConstant(r.backoff))

	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		callCtx, cancel := r.callContext(ctx)
		defer cancel()

		err := fn(callCtx)
		if err == nil {
			return nil
		}
		if retryable(err) && ctx.Err() == nil {
			r.log.Warn("db.retry", "op", op, "attempt", attempt, "err", err)
			r.metrics.ObserveRetry(op)
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrDatabase, op, err)
}

func (r *Retrier) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// IsTransient reports whether err is a connection-level failure worth
// retrying. Context cancellation and SQL errors are never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx: connection exception, 57P01: admin shutdown
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "57P01"
	}

	var connectErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connectErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, net.ErrClosed):
		return true
	}
	return pgconn.SafeToRetry(err)
}

// NotSent reports whether err means the statement was never delivered to the
// server, so running it again cannot apply it twice.
func NotSent(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

type RetryingUserStore struct {
	next UserStore
	r    *Retrier
}

func NewRetryingUserStore(next UserStore, r *Retrier) *RetryingUserStore {
	return &RetryingUserStore{next: next, r: r}
}

func (s *RetryingUserStore) CreateUser(ctx context.Context, loginID, name, passwordHash string) (int64, error) {
	var id int64
	err := s.r.DoOnce(ctx, "create_user", func(ctx context.Context) error {
		var err error
		id, err = s.next.CreateUser(ctx, loginID, name, passwordHash)
		return err
	})
	return id, err
}

func (s *RetryingUserStore) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	var user *model.User
	err := s.r.Do(ctx, "get_user", func(ctx context.Context) error {
		var err error
		user, err = s.next.GetUserByLoginID(ctx, loginID)
		return err
	})
	return user, err
}

func (s *RetryingUserStore) UpdatePasswordHash(ctx context.Context, loginID, passwordHash string) error {
	return s.r.Do(ctx, "update_password", func(ctx context.Context) error {
		return s.next.UpdatePasswordHash(ctx, loginID, passwordHash)
	})
}

func (s *RetryingUserStore) UpdateProfile(ctx context.Context, loginID, name, email string) error {
	return s.r.Do(ctx, "update_profile", func(ctx context.Context) error {
		return s.next.UpdateProfile(ctx, loginID, name, email)
	})
}

func (s *RetryingUserStore) SwapRefreshToken(ctx context.Context, loginID string, prev, next *string) (bool, error) {
	var swapped bool
	err := s.r.Do(ctx, "swap_refresh_token", func(ctx context.Context) error {
		var err error
		swapped, err = s.next.SwapRefreshToken(ctx, loginID, prev, next)
		return err
	})
	return swapped, err
}

type RetryingApartmentStore struct {
	next ApartmentStore
	r    *Retrier
}

func NewRetryingApartmentStore(next ApartmentStore, r *Retrier) *RetryingApartmentStore {
	return &RetryingApartmentStore{next: next, r: r}
}

func (s *RetryingApartmentStore) ListApartments(ctx context.Context, q model.ApartmentQuery) ([]model.Apartment, error) {
	var out []model.Apartment
	err := s.r.Do(ctx, "list_apartments", func(ctx context.Context) error {
		var err error
		out, err = s.next.ListApartments(ctx, q)
		return err
	})
	return out, err
}

func (s *RetryingApartmentStore) ClusterApartments(ctx context.Context, q model.ClusterQuery) ([]model.ApartmentCluster, error) {
	var out []model.ApartmentCluster
	err := s.r.Do(ctx, "cluster_apartments", func(ctx context.Context) error {
		var err error
		out, err = s.next.ClusterApartments(ctx, q)
		return err
	})
	return out, err
}

func (s *RetryingApartmentStore) PriceHistory(ctx context.Context, limit int) ([]model.PriceHistory, error) {
	var out []model.PriceHistory
	err := s.r.Do(ctx, "price_history", func(ctx context.Context) error {
		var err error
		out, err = s.next.PriceHistory(ctx, limit)
		return err
	})
	return out, err
}
