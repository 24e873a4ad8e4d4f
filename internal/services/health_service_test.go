package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"bikeshare/internal/dataset"
	"bikeshare/internal/shared/testutil"
)

func TestHealthService_Readiness(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	t.Run("datasets present", func(t *testing.T) {
		dir := testutil.DatasetDir(t)
		hs := NewHealthService("1.0.0", dir, dataset.NewFileLoader(dir, logger), logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "ready", status.Status)
		assert.Equal(t, ServiceHealth{Status: "ready"}, status.Services["dataset:new_york_city"])
	})

	t.Run("empty data directory", func(t *testing.T) {
		dir := t.TempDir()
		hs := NewHealthService("1.0.0", dir, dataset.NewFileLoader(dir, logger), logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Status)
		assert.Equal(t, "missing", status.Services["dataset:chicago"].(ServiceHealth).Status)
	})

	t.Run("missing data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nope")
		hs := NewHealthService("1.0.0", dir, dataset.NewFileLoader(dir, logger), logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Status)
		assert.Equal(t, "not_ready", status.Services["data"].(ServiceHealth).Status)
	})
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthService("1.2.3", t.TempDir(), nil, nil)

	assert.Equal(t, "ok", hs.HealthCheck(context.Background()).Status)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	version := hs.Version()
	assert.Equal(t, "1.2.3", version["version"])
	assert.Contains(t, version, "go_version")
}
