package models

import (
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"normal", ModeNormal, false},
		{"Medium", ModeMedium, false},
		{" ULTIMATE ", ModeUltimate, false},
		{"", ModeNormal, false},
		{"turbo", ModeNormal, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "medium", ModeMedium.String())
	assert.Equal(t, "ultimate", ModeUltimate.String())
	assert.False(t, Mode(42).Valid())
}

func TestConfigForMode(t *testing.T) {
	normal := ConfigForMode(ModeNormal)
	medium := ConfigForMode(ModeMedium)
	ultimate := ConfigForMode(ModeUltimate)

	assert.Equal(t, ScanConfig{Concurrency: 20, Timeout: 5 * time.Second}, normal)
	assert.Equal(t, ScanConfig{Concurrency: 30, Timeout: 8 * time.Second}, medium)
	assert.Equal(t, ScanConfig{Concurrency: 50, Timeout: 10 * time.Second}, ultimate)

	// heavier modes never get a smaller budget
	assert.LessOrEqual(t, normal.Concurrency, medium.Concurrency)
	assert.LessOrEqual(t, medium.Concurrency, ultimate.Concurrency)
	assert.LessOrEqual(t, normal.Timeout, medium.Timeout)
	assert.LessOrEqual(t, medium.Timeout, ultimate.Timeout)
}

func TestQuickConfig(t *testing.T) {
	for _, m := range []Mode{ModeNormal, ModeMedium, ModeUltimate} {
		cfg := QuickConfig(m)
		assert.LessOrEqual(t, cfg.Concurrency, 20, "mode %s", m)
		assert.Equal(t, ConfigForMode(m).Timeout, cfg.Timeout, "mode %s", m)
	}
}

func TestScanConfigValidate(t *testing.T) {
	assert.NoError(t, ScanConfig{Concurrency: 1, Timeout: time.Second}.Validate())
	assert.Error(t, ScanConfig{Concurrency: 0, Timeout: time.Second}.Validate())
	assert.Error(t, ScanConfig{Concurrency: -5, Timeout: time.Second}.Validate())
	assert.Error(t, ScanConfig{Concurrency: 10, Timeout: 0}.Validate())
}

func TestScanResultViews(t *testing.T) {
	start := time.Now().Add(-3 * time.Second)
	result := &ScanResult{
		Domain:         "example.com",
		Mode:           ModeMedium,
		CandidateCount: 5,
		DNSResolved:    mapset.NewSet("api.example.com", "www.example.com", "old.example.com"),
		HTTPSAlive:     mapset.NewSet("api.example.com", "www.example.com"),
		StartTime:      start,
		EndTime:        start.Add(3 * time.Second),
	}

	assert.Equal(t, []string{"api.example.com", "www.example.com"}, result.AliveSorted())
	assert.Equal(t, []string{"api.example.com", "old.example.com", "www.example.com"}, result.ResolvedSorted())
	assert.Equal(t, []string{"old.example.com"}, result.DNSOnlySorted())

	stats := result.Stats()
	assert.Equal(t, 5, stats.Candidates)
	assert.Equal(t, 3, stats.DNSResolved)
	assert.Equal(t, 2, stats.HTTPSAlive)
	assert.Equal(t, 3*time.Second, stats.Duration)
}

func TestScanResultNilSets(t *testing.T) {
	result := &ScanResult{Domain: "example.com"}
	assert.Nil(t, result.ResolvedSorted())
	assert.Nil(t, result.AliveSorted())
	assert.Nil(t, result.DNSOnlySorted())
	assert.Equal(t, 0, result.Stats().DNSResolved)
}
