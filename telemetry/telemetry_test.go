package telemetry_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdistrict/telemetry"
)

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		l, err := telemetry.NewLogger(lvl, false)
		require.NoError(t, err, lvl)
		assert.NotNil(t, l)
	}
	_, err := telemetry.NewLogger("verbose", true)
	assert.Error(t, err)

	assert.NotNil(t, telemetry.OrNop(nil))
}

func TestChainMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewChainMetrics(reg)
	require.NoError(t, err)

	m.ObserveStep(1, "accepted", 0.6, time.Millisecond)
	m.ObserveStep(2, "no_split", 0.6, time.Millisecond)
	m.ObserveStep(3, "accepted", 0.7, time.Millisecond)
	m.ObserveInitial(time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Steps.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("no_split")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Step))
	assert.Equal(t, 0.7, testutil.ToFloat64(m.Compactness))

	// registering twice on one registry fails
	_, err = telemetry.NewChainMetrics(reg)
	assert.Error(t, err)

	var none *telemetry.ChainMetrics
	assert.NotPanics(t, func() { none.ObserveStep(1, "accepted", 0, 0) })
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewChainMetrics(reg)
	require.NoError(t, err)
	m.ObserveStep(1, "rejected", 0.5, time.Millisecond)

	srv := httptest.NewServer(telemetry.MetricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `lvdistrict_chain_steps_total{outcome="rejected"} 1`)

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- telemetry.Serve(ctx, "127.0.0.1:0", prometheus.NewRegistry(), nil) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
