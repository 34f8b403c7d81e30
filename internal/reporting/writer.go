package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avelora/subsift/pkg/models"
)

// Writer persists scan reports into an output directory, one file per
// requested format. Files are written atomically (temp file then rename).
type Writer struct {
	outputDir  string
	formatters map[string]Formatter
	logger     *logrus.Logger
	mu         sync.RWMutex
}

func NewWriter(outputDir string, logger *logrus.Logger) (*Writer, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	w := &Writer{
		outputDir:  outputDir,
		formatters: make(map[string]Formatter),
		logger:     logger,
	}
	w.RegisterFormatter("txt", &TXTFormatter{})
	w.RegisterFormatter("json", &JSONFormatter{})
	w.RegisterFormatter("yaml", &YAMLFormatter{})
	return w, nil
}

func (w *Writer) RegisterFormatter(name string, f Formatter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.formatters[strings.ToLower(name)] = f
}

// Save writes one report file per format and returns the written paths.
// Unknown formats fail the whole call before anything is written.
func (w *Writer) Save(result *models.ScanResult, formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = []string{"txt"}
	}

	w.mu.RLock()
	selected := make(map[string]Formatter, len(formats))
	for _, name := range formats {
		name = strings.ToLower(strings.TrimSpace(name))
		f, ok := w.formatters[name]
		if !ok {
			w.mu.RUnlock()
			return nil, fmt.Errorf("unknown report format: %q", name)
		}
		selected[name] = f
	}
	w.mu.RUnlock()

	report := NewReport(result)
	timestamp := time.Now().Format("20060102_150405")

	paths := make([]string, 0, len(selected))
	for name, f := range selected {
		data, err := f.Format(report)
		if err != nil {
			return paths, fmt.Errorf("format %s report: %w", name, err)
		}
		path := filepath.Join(w.outputDir,
			fmt.Sprintf("subsift_%s_%s.%s", report.Domain, timestamp, f.FileExtension()))
		if err := atomicWrite(path, data); err != nil {
			return paths, fmt.Errorf("write %s report: %w", name, err)
		}
		w.logger.Infof("Report saved to %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Summary renders the human-readable result block printed after a scan.
func Summary(result *models.ScanResult) string {
	stats := result.Stats()
	var b strings.Builder
	b.WriteString("\nScan Summary:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Domain:        %s\n", result.Domain)
	fmt.Fprintf(&b, "Mode:          %s\n", result.Mode)
	fmt.Fprintf(&b, "Candidates:    %d\n", stats.Candidates)
	fmt.Fprintf(&b, "DNS resolved:  %d\n", stats.DNSResolved)
	fmt.Fprintf(&b, "HTTPS alive:   %d\n", stats.HTTPSAlive)
	fmt.Fprintf(&b, "Duration:      %v\n", stats.Duration.Round(time.Millisecond))
	b.WriteString(divider + "\n")

	if alive := result.AliveSorted(); len(alive) > 0 {
		b.WriteString("\nHTTPS alive subdomains:\n")
		for _, sub := range alive {
			fmt.Fprintf(&b, "  https://%s\n", sub)
		}
	}
	if dnsOnly := result.DNSOnlySorted(); len(dnsOnly) > 0 {
		b.WriteString("\nDNS-only subdomains:\n")
		for _, sub := range dnsOnly {
			fmt.Fprintf(&b, "  %s\n", sub)
		}
	}
	return b.String()
}
