package verifier

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/avelora/subsift/pkg/models"
	"github.com/avelora/subsift/pkg/utils"
)

// Verifier checks candidate subdomains against live DNS and HTTPS
// infrastructure under a bounded concurrency gate. It holds no state across
// scans; each Scan call produces fresh result sets.
type Verifier struct {
	dns     DNSChecker
	https   HTTPSChecker
	logger  *logrus.Logger
	metrics *utils.MetricsCollector
}

func New(dns DNSChecker, https HTTPSChecker, logger *logrus.Logger) *Verifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &Verifier{dns: dns, https: https, logger: logger}
}

// NewWithConfig builds a Verifier with the production resolver and prober,
// both bounded by the configured timeout.
func NewWithConfig(cfg models.ScanConfig, servers []string, logger *logrus.Logger) *Verifier {
	return New(
		NewResolver(servers, cfg.Timeout, logger),
		NewProber(cfg.Timeout, logger),
		logger,
	)
}

// WithMetrics attaches a collector; scan metrics are registered on first use.
func (v *Verifier) WithMetrics(mc *utils.MetricsCollector) *Verifier {
	if mc != nil {
		registerScanMetrics(mc)
	}
	v.metrics = mc
	return v
}

// Scan verifies every candidate and returns the DNS-resolved set and the
// HTTPS-alive set (always a subset of the former). Individual candidate
// failures, including panics in a checker, are absorbed; the call fails only
// on an invalid config. The returned sets are unordered.
func (v *Verifier) Scan(ctx context.Context, candidates mapset.Set[string], cfg models.ScanConfig) (resolved, alive mapset.Set[string], err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	resolved = mapset.NewSet[string]()
	alive = mapset.NewSet[string]()
	if candidates == nil || candidates.Cardinality() == 0 {
		return resolved, alive, nil
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, candidate := range candidates.ToSlice() {
		candidate := candidate
		g.Go(func() error {
			v.checkCandidate(gctx, candidate, cfg.Timeout, resolved, alive)
			return nil
		})
	}
	_ = g.Wait()

	v.logger.Infof("Scan finished: %d candidates, %d resolved, %d alive in %v",
		candidates.Cardinality(), resolved.Cardinality(), alive.Cardinality(),
		time.Since(start).Round(time.Millisecond))
	return resolved, alive, nil
}

// checkCandidate runs the per-candidate protocol: DNS first, HTTPS only when
// DNS succeeded. A panic here must not take down sibling checks.
func (v *Verifier) checkCandidate(ctx context.Context, candidate string, timeout time.Duration, resolved, alive mapset.Set[string]) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Warnf("Check panicked for %s: %v", candidate, r)
		}
	}()

	if v.metrics != nil {
		v.metrics.AddGauge(metricInFlight, 1, nil)
		defer v.metrics.AddGauge(metricInFlight, -1, nil)
		v.metrics.IncCounter(metricChecked, 1, nil)
		start := time.Now()
		defer func() {
			v.metrics.ObserveHistogram(metricCheckSeconds, time.Since(start).Seconds(), nil)
		}()
	}

	dnsCtx, cancel := context.WithTimeout(ctx, timeout)
	ok := v.dns.Resolves(dnsCtx, candidate)
	cancel()
	if !ok {
		return
	}
	resolved.Add(candidate)
	if v.metrics != nil {
		v.metrics.IncCounter(metricResolved, 1, nil)
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if v.https.Alive(probeCtx, candidate) {
		alive.Add(candidate)
		if v.metrics != nil {
			v.metrics.IncCounter(metricAlive, 1, nil)
		}
	}
}

const (
	metricInFlight     = "subsift_checks_in_flight"
	metricChecked      = "subsift_candidates_checked_total"
	metricResolved     = "subsift_dns_resolved_total"
	metricAlive        = "subsift_https_alive_total"
	metricCheckSeconds = "subsift_check_duration_seconds"
)

func registerScanMetrics(mc *utils.MetricsCollector) {
	_ = mc.RegisterGauge(metricInFlight, "Number of candidate checks currently in flight")
	_ = mc.RegisterCounter(metricChecked, "Total candidates checked")
	_ = mc.RegisterCounter(metricResolved, "Total candidates with a DNS answer")
	_ = mc.RegisterCounter(metricAlive, "Total candidates answering over HTTPS")
	_ = mc.RegisterHistogram(metricCheckSeconds, "Wall time of a full candidate check", prometheus.DefBuckets)
}
