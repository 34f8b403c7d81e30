package utils

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{45 * time.Second, "45.00s"},
		{90 * time.Second, "1m 30s"},
		{time.Hour + 5*time.Minute, "1h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanizeDuration(tt.d))
	}
}

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
}

func TestMetricsCollectorCountersAndGauges(t *testing.T) {
	mc := NewMetricsCollector(false)

	require.NoError(t, mc.RegisterCounter("test_total", "test counter"))
	require.NoError(t, mc.RegisterGauge("test_gauge", "test gauge"))

	mc.IncCounter("test_total", 3, nil)
	mc.IncCounter("test_total", 2, nil)
	mc.AddGauge("test_gauge", 5, nil)
	mc.AddGauge("test_gauge", -2, nil)

	total, err := mc.GatherValue("test_total")
	require.NoError(t, err)
	assert.Equal(t, float64(5), total)

	gauge, err := mc.GatherValue("test_gauge")
	require.NoError(t, err)
	assert.Equal(t, float64(3), gauge)
}

func TestMetricsCollectorDoubleRegister(t *testing.T) {
	mc := NewMetricsCollector(false)

	require.NoError(t, mc.RegisterCounter("dup_total", "first"))
	assert.NoError(t, mc.RegisterCounter("dup_total", "second"))

	mc.IncCounter("dup_total", 1, nil)
	v, err := mc.GatherValue("dup_total")
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)
}

func TestMetricsCollectorHistogram(t *testing.T) {
	mc := NewMetricsCollector(false)
	require.NoError(t, mc.RegisterHistogram("test_seconds", "test histogram", prometheus.DefBuckets))

	mc.ObserveHistogram("test_seconds", 0.25, nil)
	mc.ObserveHistogram("test_seconds", 1.5, nil)

	families, err := mc.GetRegistry().Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() == "test_seconds" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
	assert.True(t, found)
}

func TestMetricsCollectorUnknownMetricIgnored(t *testing.T) {
	mc := NewMetricsCollector(false)

	// writes against unregistered names must not panic
	mc.IncCounter("nope_total", 1, nil)
	mc.SetGauge("nope_gauge", 1, nil)
	mc.ObserveHistogram("nope_seconds", 1, nil)

	_, err := mc.GatherValue("nope_total")
	assert.Error(t, err)
}

func TestNewLoggerDefaults(t *testing.T) {
	l, err := NewLogger(LogConfig{}, "subsift-test", "0.0.1")
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l.UpdateLevel("debug")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.UpdateLevel("bogus")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestLoggerServiceFields(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "debug", Format: "json"}, "subsift-test", "1.2.3")
	require.NoError(t, err)
	defer l.Close()

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"service":"subsift-test"`)
	assert.Contains(t, out, `"version":"1.2.3"`)
	assert.Contains(t, out, `"hostname"`)
}

func TestLoggerFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "subsift.log")
	l, err := NewLogger(LogConfig{FileLocation: path, Output: "file"}, "subsift-test", "0.0.1")
	require.NoError(t, err)

	l.Info("to file")
	require.NoError(t, l.Close())
	assert.True(t, FileExists(path))
}
