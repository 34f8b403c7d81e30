package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avelora/subsift/pkg/models"
)

// Formatter renders a finished scan into one output format.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	FileExtension() string
}

// Report is the serialization-friendly view of a ScanResult: set membership
// flattened into sorted slices so every format is stable across runs.
type Report struct {
	Domain      string    `json:"domain" yaml:"domain"`
	Mode        string    `json:"mode" yaml:"mode"`
	Candidates  int       `json:"candidates" yaml:"candidates"`
	HTTPSAlive  []string  `json:"https_alive" yaml:"https_alive"`
	DNSResolved []string  `json:"dns_resolved" yaml:"dns_resolved"`
	StartTime   time.Time `json:"start_time" yaml:"start_time"`
	EndTime     time.Time `json:"end_time" yaml:"end_time"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

func NewReport(result *models.ScanResult) *Report {
	return &Report{
		Domain:      result.Domain.String(),
		Mode:        result.Mode.String(),
		Candidates:  result.CandidateCount,
		HTTPSAlive:  result.AliveSorted(),
		DNSResolved: result.ResolvedSorted(),
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		GeneratedAt: time.Now(),
	}
}

type TXTFormatter struct{}

func (f *TXTFormatter) FileExtension() string { return "txt" }

func (f *TXTFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Subdomain scan results for %s\n", report.Domain)
	fmt.Fprintf(&buf, "Mode: %s | Generated: %s\n", report.Mode, report.GeneratedAt.Format(time.RFC3339))
	buf.WriteString(divider + "\n\n")

	fmt.Fprintf(&buf, "HTTPS alive (%d):\n", len(report.HTTPSAlive))
	for _, sub := range report.HTTPSAlive {
		fmt.Fprintf(&buf, "https://%s\n", sub)
	}

	fmt.Fprintf(&buf, "\nDNS resolved (%d):\n", len(report.DNSResolved))
	for _, sub := range report.DNSResolved {
		fmt.Fprintf(&buf, "%s\n", sub)
	}
	return buf.Bytes(), nil
}

type JSONFormatter struct{}

func (f *JSONFormatter) FileExtension() string { return "json" }

func (f *JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

type YAMLFormatter struct{}

func (f *YAMLFormatter) FileExtension() string { return "yaml" }

func (f *YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(report)
}

const divider = "================================================"
