package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avelora/subsift/internal/generator"
	"github.com/avelora/subsift/pkg/models"
)

func NewEstimateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate [domain]",
		Short: "Show candidate counts and scan profiles per mode",
		Long: `Print the approximate candidate count and the concurrency/timeout profile
for each scan mode. With a domain argument, exact generated counts are shown
instead of approximations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEstimate,
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	var gen *generator.Generator
	var domain models.Domain
	exact := len(args) == 1
	if exact {
		d, err := models.ParseDomain(args[0])
		if err != nil {
			return err
		}
		domain = d
		gen = generator.NewGenerator(logrus.StandardLogger())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tCANDIDATES\tCONCURRENCY\tTIMEOUT")
	for _, m := range []models.Mode{models.ModeNormal, models.ModeMedium, models.ModeUltimate} {
		cfg := models.ConfigForMode(m)
		count := fmt.Sprintf("~%d", generator.EstimateCount(m))
		if exact {
			count = fmt.Sprintf("%d", gen.Generate(domain, m).Cardinality())
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", m, count, cfg.Concurrency, cfg.Timeout)
	}
	return w.Flush()
}
