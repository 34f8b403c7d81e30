package generator

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/avelora/subsift/pkg/models"
)

// Generator expands a root domain into a set of subdomain candidates using
// layered rule application. Generation is deterministic, performs no I/O and
// is safe for concurrent use.
type Generator struct {
	logger *logrus.Logger
}

func NewGenerator(logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{logger: logger}
}

// Generate returns the candidate set for domain under mode. Every candidate
// is a strict-suffix extension of domain (<label...>.<domain>); the bare
// domain itself is never emitted.
func (g *Generator) Generate(domain models.Domain, mode models.Mode) mapset.Set[string] {
	base := strings.TrimPrefix(domain.String(), "www.")

	candidates := mapset.NewSet[string]()
	add := func(label string) {
		if label != "" {
			candidates.Add(label + "." + base)
		}
	}

	for _, p := range basePrefixes {
		add(p)
	}
	for _, p := range commonPrefixes {
		add(p)
	}

	switch mode {
	case models.ModeNormal:
		g.expandNormal(add)
	case models.ModeMedium:
		g.expandMedium(add)
	case models.ModeUltimate:
		g.expandUltimate(base, add)
	}

	if mode >= models.ModeMedium {
		g.expandWordCombos(mode, add)
	}

	g.logger.Debugf("Generated %d candidates for %s (mode %s)", candidates.Cardinality(), base, mode)
	return candidates
}

func (g *Generator) expandNormal(add func(string)) {
	for _, env := range environments[:3] {
		add(env)
		add(env + "-web")
	}
	for _, num := range []string{"1", "2", "3", "01", "02"} {
		add("web" + num)
		add("app" + num)
		add("api" + num)
	}
}

func (g *Generator) expandMedium(add func(string)) {
	for _, env := range environments {
		add(env)
		add(env + "-web")
		add("web-" + env)
		add(env + "-app")
	}
	for _, geo := range geoPrefixes {
		add(geo)
		add(geo + "-web")
		add("www-" + geo)
	}
	for i := 1; i <= 10; i++ {
		for _, role := range []string{"web", "app", "api", "server"} {
			add(fmt.Sprintf("%s%02d", role, i))
		}
	}
}

func (g *Generator) expandUltimate(base string, add func(string)) {
	for _, env := range environments {
		for _, prefix := range []string{"", "www-", "web-", "app-", "api-"} {
			add(prefix + env)
			for _, num := range []string{"", "1", "2", "3"} {
				add(prefix + env + num)
			}
		}
	}

	for _, geo := range geoPrefixes {
		for _, env := range environments[:4] {
			add(geo + "-" + env)
			add(env + "-" + geo)
		}
	}

	for _, role := range multiLevelRoles {
		for _, env := range environments[:3] {
			add(role + "-" + env)
			for _, num := range []string{"", "1", "2"} {
				add(role + num + "-" + env)
			}
		}
	}

	for i := 1; i <= 20; i++ {
		for _, role := range numericRoles {
			add(fmt.Sprintf("%s%02d", role, i))
			add(fmt.Sprintf("%s-%02d", role, i))
		}
	}

	for _, tok := range specialTokens {
		add(tok)
	}
	// Composite token derived from the domain itself, dots flattened to hyphens.
	add("prod-" + strings.ReplaceAll(base, ".", "-"))
}

// expandWordCombos applies the permutations-of-combinations layer. Medium
// arranges pairs only; ultimate goes up to three-word arrangements.
func (g *Generator) expandWordCombos(mode models.Mode, add func(string)) {
	maxSize := 2
	if mode == models.ModeUltimate {
		maxSize = 3
	}
	for arrangement := range Arrangements(comboWords, 2, maxSize, "-") {
		if mode == models.ModeMedium && strings.Count(arrangement, "-") > 1 {
			continue
		}
		add(arrangement)
	}
}

// EstimateCount approximates the candidate cardinality per mode, for display
// before a scan is confirmed. It carries no functional guarantee.
func EstimateCount(mode models.Mode) int {
	switch mode {
	case models.ModeMedium:
		return 150
	case models.ModeUltimate:
		return 500
	default:
		return 50
	}
}
