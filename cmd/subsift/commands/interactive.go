package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avelora/subsift/internal/generator"
	"github.com/avelora/subsift/internal/reporting"
	"github.com/avelora/subsift/internal/session"
	"github.com/avelora/subsift/pkg/models"
)

// localCaller identifies the single stdin user in the session store.
const localCaller = "local"

func NewInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run a guided scan conversation on stdin",
		Long: `Walk through a scan step by step: enter a domain, pick a mode, confirm,
then watch the results. Type "cancel" at any prompt to abort.`,
		RunE: runInteractive,
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	store := session.NewStore(logrus.StandardLogger())
	store.Start(localCaller)
	defer store.Delete(localCaller)

	reader := bufio.NewScanner(os.Stdin)

	domain, err := promptDomain(reader, store)
	if err != nil {
		return err
	}
	mode, err := promptMode(reader, store)
	if err != nil {
		return err
	}

	cfg := models.ConfigForMode(mode)
	fmt.Printf("\nScan configuration:\n")
	fmt.Printf("  Domain:      %s\n", domain)
	fmt.Printf("  Mode:        %s (~%d candidates)\n", mode, generator.EstimateCount(mode))
	fmt.Printf("  Concurrency: %d, timeout %v\n", cfg.Concurrency, cfg.Timeout)

	if !promptYes(reader, "Start scan? [y/N]: ") {
		fmt.Println("Cancelled.")
		return nil
	}

	scanDomain, scanMode, err := store.Confirm(localCaller)
	if err != nil {
		return err
	}

	result, err := executeScan(ctx, scanDomain, scanMode, cfg)
	if err != nil {
		return err
	}
	fmt.Print(reporting.Summary(result))
	return writeReports(result)
}

func promptDomain(reader *bufio.Scanner, store *session.Store) (models.Domain, error) {
	for {
		fmt.Print("Enter the domain to scan (e.g. example.com): ")
		line, ok := readLine(reader)
		if !ok {
			return "", fmt.Errorf("input closed")
		}
		if line == "cancel" {
			return "", fmt.Errorf("cancelled")
		}
		domain, err := store.SetDomain(localCaller, line)
		if err != nil {
			fmt.Printf("Invalid domain: %v\n", err)
			continue
		}
		return domain, nil
	}
}

func promptMode(reader *bufio.Scanner, store *session.Store) (models.Mode, error) {
	fmt.Println("\nScan modes:")
	for _, m := range []models.Mode{models.ModeNormal, models.ModeMedium, models.ModeUltimate} {
		cfg := models.ConfigForMode(m)
		fmt.Printf("  %-9s ~%d candidates, concurrency %d, timeout %v\n",
			m, generator.EstimateCount(m), cfg.Concurrency, cfg.Timeout)
	}
	for {
		fmt.Print("Select mode [normal]: ")
		line, ok := readLine(reader)
		if !ok {
			return 0, fmt.Errorf("input closed")
		}
		if line == "cancel" {
			return 0, fmt.Errorf("cancelled")
		}
		if line == "" {
			line = "normal"
		}
		mode, err := store.SetMode(localCaller, line)
		if err != nil {
			fmt.Printf("Invalid mode: %v\n", err)
			continue
		}
		return mode, nil
	}
}

func promptYes(reader *bufio.Scanner, prompt string) bool {
	fmt.Print(prompt)
	line, ok := readLine(reader)
	if !ok {
		return false
	}
	return line == "y" || line == "yes"
}

func readLine(reader *bufio.Scanner) (string, bool) {
	if !reader.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(reader.Text())), true
}
