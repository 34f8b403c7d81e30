package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/avelora/subsift/pkg/models"
)

func sampleResult() *models.ScanResult {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &models.ScanResult{
		Domain:         "example.com",
		Mode:           models.ModeMedium,
		CandidateCount: 150,
		DNSResolved:    mapset.NewSet("api.example.com", "www.example.com", "old.example.com"),
		HTTPSAlive:     mapset.NewSet("api.example.com", "www.example.com"),
		StartTime:      start,
		EndTime:        start.Add(42 * time.Second),
	}
}

func TestNewReportSortsMembership(t *testing.T) {
	report := NewReport(sampleResult())

	assert.Equal(t, "example.com", report.Domain)
	assert.Equal(t, "medium", report.Mode)
	assert.Equal(t, 150, report.Candidates)
	assert.Equal(t, []string{"api.example.com", "www.example.com"}, report.HTTPSAlive)
	assert.Equal(t, []string{"api.example.com", "old.example.com", "www.example.com"}, report.DNSResolved)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestTXTFormatter(t *testing.T) {
	data, err := (&TXTFormatter{}).Format(NewReport(sampleResult()))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Subdomain scan results for example.com")
	assert.Contains(t, out, "Mode: medium")
	assert.Contains(t, out, "HTTPS alive (2):")
	assert.Contains(t, out, "https://api.example.com")
	assert.Contains(t, out, "DNS resolved (3):")
	assert.Contains(t, out, "old.example.com")
}

func TestJSONFormatter(t *testing.T) {
	data, err := (&JSONFormatter{}).Format(NewReport(sampleResult()))
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "example.com", decoded.Domain)
	assert.Len(t, decoded.DNSResolved, 3)
}

func TestYAMLFormatter(t *testing.T) {
	data, err := (&YAMLFormatter{}).Format(NewReport(sampleResult()))
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "medium", decoded.Mode)
	assert.Equal(t, []string{"api.example.com", "www.example.com"}, decoded.HTTPSAlive)
}

func TestWriterSave(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, nil)
	require.NoError(t, err)

	paths, err := w.Save(sampleResult(), []string{"txt", "json"})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	extensions := make([]string, 0, len(paths))
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(filepath.Base(p), "subsift_example.com_"))
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		extensions = append(extensions, strings.TrimPrefix(filepath.Ext(p), "."))
	}
	assert.ElementsMatch(t, []string{"txt", "json"}, extensions)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriterSaveDefaultsToTXT(t *testing.T) {
	w, err := NewWriter(t.TempDir(), nil)
	require.NoError(t, err)

	paths, err := w.Save(sampleResult(), nil)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, ".txt", filepath.Ext(paths[0]))
}

func TestWriterSaveUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, nil)
	require.NoError(t, err)

	_, err = w.Save(sampleResult(), []string{"txt", "pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")

	// the whole call fails before anything is written
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummary(t *testing.T) {
	out := Summary(sampleResult())

	assert.Contains(t, out, "Domain:        example.com")
	assert.Contains(t, out, "Mode:          medium")
	assert.Contains(t, out, "Candidates:    150")
	assert.Contains(t, out, "DNS resolved:  3")
	assert.Contains(t, out, "HTTPS alive:   2")
	assert.Contains(t, out, "https://api.example.com")
	// old.example.com resolved but never answered over HTTPS
	assert.Contains(t, out, "DNS-only subdomains:\n  old.example.com")
}

func TestSummaryOmitsEmptySections(t *testing.T) {
	result := sampleResult()
	result.DNSResolved = mapset.NewSet[string]()
	result.HTTPSAlive = mapset.NewSet[string]()

	out := Summary(result)
	assert.NotContains(t, out, "HTTPS alive subdomains")
	assert.NotContains(t, out, "DNS-only subdomains")
}
