package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAuth(t *testing.T) {
	m := New()

	m.ObserveAuth("login", nil)
	m.ObserveAuth("login", errors.New("nope"))
	m.ObserveAuth("login", errors.New("nope"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", OutcomeFailure)))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAuth("login", nil)
		m.ObserveRetry("get_user")
		m.ObserveRequest("GET", "/ping", 200, time.Millisecond)
	})
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("POST", "/api/v1/login", 200, 20*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/login", 401, 5*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}
