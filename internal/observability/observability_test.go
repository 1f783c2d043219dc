package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "station_id", "260")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, serviceName, entry["service"])
	assert.Equal(t, "260", entry["station_id"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "TEXT")

	logger.Debug("hello", "year", 2025)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "2025")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestMetricsRegister(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	require.NoError(t, func() (err error) {
		for _, c := range m.collectors() {
			if err = reg.Register(c); err != nil {
				return err
			}
		}
		return nil
	}())

	m.RowsRejected.WithLabelValues("out_of_range").Add(2)
	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() != "uv_etl_rows_rejected_total" {
			continue
		}
		found = true
		require.Len(t, f.GetMetric(), 1)
		assert.InDelta(t, 2.0, f.GetMetric()[0].GetCounter().GetValue(), 1e-9)
	}
	assert.True(t, found)
}
