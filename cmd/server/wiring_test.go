package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stargate/internal/platform/config"
)

func TestBuildInMemory(t *testing.T) {
	cfg := config.Defaults()
	cfg.Seed = true
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := build(context.Background(), cfg, logger, prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.close()
	assert.Equal(t, "memory", a.storage)
	assert.Empty(t, a.background)

	t.Run("healthz", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("seeded person is served", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/person/Neil%20Armstrong", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"current_duty_title":"RETIRED"`)
	})

	t.Run("record duty round trip", func(t *testing.T) {
		body := `{"name":"Dan Carson","rank":"2LT","duty_title":"Pilot","duty_start_date":"2025-01-01"}`
		req := httptest.NewRequest(http.MethodPost, "/astronautduty", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		a.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/astronautduty/Dan%20Carson", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"duty_title":"Pilot"`)
	})
}

func TestRunClosesResourcesWhenServerFails(t *testing.T) {
	t.Chdir(t.TempDir())
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	t.Setenv("STARGATE_ADDR", busy.Addr().String())

	closed := false
	original := buildApp
	buildApp = func(ctx context.Context, cfg config.Server, log *slog.Logger, _ prometheus.Registerer) (*app, error) {
		a, err := original(ctx, cfg, log, prometheus.NewRegistry())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { closed = true })
		return a, nil
	}
	t.Cleanup(func() { buildApp = original })

	assert.Equal(t, 1, run())
	assert.True(t, closed, "closers run on the error path")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STARGATE_TX_TIMEOUT", "-1s")
	assert.Equal(t, 1, run())
}
