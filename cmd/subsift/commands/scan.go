package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avelora/subsift/internal/generator"
	"github.com/avelora/subsift/internal/reporting"
	"github.com/avelora/subsift/internal/verifier"
	"github.com/avelora/subsift/pkg/models"
	"github.com/avelora/subsift/pkg/utils"
)

func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [domain]",
		Short: "Generate and verify subdomain candidates for a domain",
		Long: `Generate subdomain candidates for the target domain using rule-based
heuristics, then verify each candidate with a DNS lookup and an HTTPS probe
under bounded concurrency.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringP("mode", "m", "normal", "Scan mode (normal, medium, ultimate)")
	cmd.Flags().Bool("quick", false, "Cap concurrency at 20 for a lighter scan")
	cmd.Flags().Int("concurrency", 0, "Override the mode's concurrency bound")
	cmd.Flags().Duration("timeout", 0, "Override the mode's per-check timeout")
	cmd.Flags().StringP("output-dir", "o", "", "Report output directory")
	cmd.Flags().StringSliceP("formats", "f", []string{"txt"}, "Report formats (txt, json, yaml)")
	cmd.Flags().Bool("no-report", false, "Skip writing report files")
	cmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address during the scan")

	_ = viper.BindPFlag("scan.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("scan.quick", cmd.Flags().Lookup("quick"))
	_ = viper.BindPFlag("scan.concurrency", cmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("scan.timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("scan.output_dir", cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("scan.formats", cmd.Flags().Lookup("formats"))
	_ = viper.BindPFlag("scan.no_report", cmd.Flags().Lookup("no-report"))
	_ = viper.BindPFlag("scan.metrics_addr", cmd.Flags().Lookup("metrics-addr"))

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	domain, err := models.ParseDomain(args[0])
	if err != nil {
		return err
	}
	mode, err := models.ParseMode(viper.GetString("scan.mode"))
	if err != nil {
		return err
	}

	cfg := scanConfig(mode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logrus.Info("Received interrupt, finishing with partial results...")
		cancel()
	}()

	result, err := executeScan(ctx, domain, mode, cfg)
	if err != nil {
		return err
	}

	fmt.Print(reporting.Summary(result))

	if viper.GetBool("scan.no_report") {
		return nil
	}
	return writeReports(result)
}

// scanConfig derives the effective ScanConfig: mode profile, quick cap,
// then explicit flag overrides.
func scanConfig(mode models.Mode) models.ScanConfig {
	var cfg models.ScanConfig
	if viper.GetBool("scan.quick") {
		cfg = models.QuickConfig(mode)
	} else {
		cfg = models.ConfigForMode(mode)
	}
	if c := viper.GetInt("scan.concurrency"); c > 0 {
		cfg.Concurrency = c
	}
	if t := viper.GetDuration("scan.timeout"); t > 0 {
		cfg.Timeout = t
	}
	return cfg
}

// executeScan runs generate then verify and assembles the result. Shared by
// the scan and interactive commands.
func executeScan(ctx context.Context, domain models.Domain, mode models.Mode, cfg models.ScanConfig) (*models.ScanResult, error) {
	logger := logrus.StandardLogger()
	logger.Infof("Scanning %s (mode %s, concurrency %d, timeout %v)",
		domain, mode, cfg.Concurrency, cfg.Timeout)

	gen := generator.NewGenerator(logger)
	candidates := gen.Generate(domain, mode)
	logger.Infof("Generated %d candidates", candidates.Cardinality())

	v := verifier.NewWithConfig(cfg, viper.GetStringSlice("dns_servers"), logger)

	if addr := viper.GetString("scan.metrics_addr"); addr != "" {
		mc := utils.NewMetricsCollector(true)
		v = v.WithMetrics(mc)
		go func() {
			if err := mc.StartServerWithContext(ctx, addr); err != nil {
				logger.Warnf("Metrics server stopped: %v", err)
			}
		}()
	}

	start := time.Now()
	resolved, alive, err := v.Scan(ctx, candidates, cfg)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return &models.ScanResult{
		Domain:         domain,
		Mode:           mode,
		CandidateCount: candidates.Cardinality(),
		DNSResolved:    resolved,
		HTTPSAlive:     alive,
		StartTime:      start,
		EndTime:        time.Now(),
	}, nil
}

func writeReports(result *models.ScanResult) error {
	outputDir := viper.GetString("scan.output_dir")
	if outputDir == "" {
		outputDir = viper.GetString("output_directory")
	}
	writer, err := reporting.NewWriter(outputDir, logrus.StandardLogger())
	if err != nil {
		return err
	}
	_, err = writer.Save(result, viper.GetStringSlice("scan.formats"))
	return err
}
