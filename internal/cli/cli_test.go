package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalcoach/internal/core/timekeeper"
	"intervalcoach/internal/telemetry"
	"intervalcoach/resources"
)

func TestBuildLogger_JSON(t *testing.T) {
	var out bytes.Buffer
	logger := buildLogger(&out, "WARN", "json")

	logger.Info("hidden")
	logger.Warn("shown", "phase", "work")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.Contains(t, out.String(), `"phase":"work"`)
}

func TestBuildLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var out bytes.Buffer
	logger := buildLogger(&out, "loud", "json")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestListenerDiagnostics(t *testing.T) {
	var out bytes.Buffer
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	diagnostics := listenerDiagnostics(buildLogger(&out, "info", "json"), metrics)

	diagnostics("tick", errors.New("boom"))
	diagnostics("tick", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ListenerFailures.WithLabelValues("tick")))
	assert.Contains(t, out.String(), "timer listener failed")
	assert.Contains(t, out.String(), "boom")
}

func TestWriteConfig(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "intervalcoach.yaml")

	require.NoError(t, writeConfig(dest, defaultYAML, false))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, defaultYAML, string(data))

	err = writeConfig(dest, "sets: 3\n", false)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, writeConfig(dest, "sets: 3\n", true))
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "sets: 3\n", string(data))
}

func TestOpacityToAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), opacityToAlpha(-1))
	assert.Equal(t, uint8(127), opacityToAlpha(0.5))
	assert.Equal(t, uint8(255), opacityToAlpha(2))
}

func TestTrayIconFor(t *testing.T) {
	assert.Equal(t, resources.IconWork, trayIconFor(timekeeper.PhaseWork))
	assert.Equal(t, resources.IconRest, trayIconFor(timekeeper.PhaseRest))
	assert.Equal(t, resources.IconIdle, trayIconFor(timekeeper.PhasePreparation))
}

func TestAttachPrinter(t *testing.T) {
	var out bytes.Buffer
	keeper := timekeeper.New(timekeeper.Config{})
	attachPrinter(keeper, &out)

	keeper.Tick.Raise(timekeeper.TickEvent{Phase: timekeeper.PhaseWork, Elapsed: 5, Remaining: 25})
	keeper.Ended.Raise(timekeeper.RunInfo{})

	assert.Equal(t, "Work        00:25\nAll done!\n", out.String())
}

func TestHomeConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir, err := homeConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".intervalcoach"), dir)

	t.Setenv("HOME", "")
	_, err = homeConfigDir()
	assert.ErrorContains(t, err, "home dir")
}
