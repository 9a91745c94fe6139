package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/aptmap/backend/internal/config"
	"github.com/aptmap/backend/internal/metrics"
	"github.com/aptmap/backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyUserStore struct {
	UserStore
	failures int
	failWith error
	calls    int
}

func (f *flakyUserStore) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.failWith
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("missing per-call deadline")
	}
	return &model.User{ID: 1, LoginID: loginID}, nil
}

func (f *flakyUserStore) CreateUser(ctx context.Context, loginID, name, passwordHash string) (int64, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, f.failWith
	}
	return 42, nil
}

func newTestRetrier(attempts uint64, m *metrics.Metrics) *Retrier {
	return NewRetrier(config.PostgresConfig{
		RetryAttempts: attempts,
		RetryBackoff:  time.Millisecond,
		QueryTimeout:  time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), m)
}

func TestRetryingUserStore_RecoversFromTransientErrors(t *testing.T) {
	m := metrics.New()
	inner := &flakyUserStore{failures: 2, failWith: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}
	store := NewRetryingUserStore(inner, newTestRetrier(3, m))

	user, err := store.GetUserByLoginID(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.LoginID)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.DBRetries.WithLabelValues("get_user")))
}

func TestRetryingUserStore_GivesUpAfterBudget(t *testing.T) {
	inner := &flakyUserStore{failures: 10, failWith: io.ErrUnexpectedEOF}
	store := NewRetryingUserStore(inner, newTestRetrier(3, nil))

	_, err := store.GetUserByLoginID(context.Background(), "bob@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 4, inner.calls)
}

func TestRetryingUserStore_DoesNotRetryDomainErrors(t *testing.T) {
	inner := &flakyUserStore{failures: 10, failWith: ErrNotFound}
	store := NewRetryingUserStore(inner, newTestRetrier(3, nil))

	_, err := store.GetUserByLoginID(context.Background(), "carol@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDatabase)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingUserStore_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &flakyUserStore{failures: 10, failWith: syscall.ECONNRESET}
	store := NewRetryingUserStore(inner, newTestRetrier(3, nil))

	_, err := store.GetUserByLoginID(ctx, "dave@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.LessOrEqual(t, inner.calls, 1)
}

func TestRetryingUserStore_CreateUserRetriesOnlyUnsentStatements(t *testing.T) {
	tests := []struct {
		name      string
		failWith  error
		wantCalls int
		wantErr   bool
	}{
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, 3, false},
		{"reset-after-send", syscall.ECONNRESET, 1, true},
		{"eof-after-send", io.ErrUnexpectedEOF, 1, true},
		{"broken-pipe", syscall.EPIPE, 1, true},
		{"admin-shutdown", &pgconn.PgError{Code: "57P01"}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &flakyUserStore{failures: 2, failWith: tt.failWith}
			store := NewRetryingUserStore(inner, newTestRetrier(3, nil))

			id, err := store.CreateUser(context.Background(), "erin@example.com", "Erin", "hash")
			assert.Equal(t, tt.wantCalls, inner.calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDatabase)
				assert.NotErrorIs(t, err, ErrDuplicate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), id)
		})
	}
}

func TestNotSent(t *testing.T) {
	assert.False(t, NotSent(nil))
	assert.False(t, NotSent(context.Canceled))
	assert.True(t, NotSent(&pgconn.ConnectError{}))
	assert.True(t, NotSent(fmt.Errorf("dial: %w", syscall.ECONNREFUSED)))
	assert.False(t, NotSent(syscall.ECONNRESET))
	assert.False(t, NotSent(io.ErrUnexpectedEOF))
	assert.False(t, NotSent(&pgconn.PgError{Code: "08006"}))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"reset", syscall.ECONNRESET, true},
		{"broken-pipe", syscall.EPIPE, true},
		{"unexpected-eof", io.ErrUnexpectedEOF, true},
		{"closed", net.ErrClosed, true},
		{"admin-shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"connection-exception", &pgconn.PgError{Code: "08006"}, true},
		{"unique-violation", &pgconn.PgError{Code: "23505"}, false},
		{"deadline", context.DeadlineExceeded, false},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), false},
		{"not-found", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
