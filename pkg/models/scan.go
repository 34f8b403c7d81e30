package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Mode selects how aggressively candidates are generated and verified.
// The ordering Normal < Medium < Ultimate is total.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMedium
	ModeUltimate
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMedium:
		return "medium"
	case ModeUltimate:
		return "ultimate"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m >= ModeNormal && m <= ModeUltimate
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return ModeNormal, nil
	case "medium":
		return ModeMedium, nil
	case "ultimate":
		return ModeUltimate, nil
	default:
		return ModeNormal, fmt.Errorf("unknown mode: %q (expected normal, medium or ultimate)", s)
	}
}

// ScanConfig bounds the verifier: at most Concurrency checks in flight, each
// DNS lookup and HTTPS probe bounded by Timeout. Derived from Mode but any
// positive values are accepted.
type ScanConfig struct {
	Concurrency int           `json:"concurrency" yaml:"concurrency"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

func (c ScanConfig) Validate() error {
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// ConfigForMode returns the policy default profile for a mode.
func ConfigForMode(m Mode) ScanConfig {
	switch m {
	case ModeMedium:
		return ScanConfig{Concurrency: 30, Timeout: 8 * time.Second}
	case ModeUltimate:
		return ScanConfig{Concurrency: 50, Timeout: 10 * time.Second}
	default:
		return ScanConfig{Concurrency: 20, Timeout: 5 * time.Second}
	}
}

// QuickConfig caps the mode profile at 20 concurrent checks for a faster,
// lighter pass over the same candidate set.
func QuickConfig(m Mode) ScanConfig {
	cfg := ConfigForMode(m)
	if cfg.Concurrency > 20 {
		cfg.Concurrency = 20
	}
	return cfg
}

// ScanResult is the write-once outcome of a single scan invocation.
// HTTPSAlive is always a subset of DNSResolved.
type ScanResult struct {
	Domain         Domain             `json:"domain"`
	Mode           Mode               `json:"-"`
	CandidateCount int                `json:"candidate_count"`
	DNSResolved    mapset.Set[string] `json:"-"`
	HTTPSAlive     mapset.Set[string] `json:"-"`
	StartTime      time.Time          `json:"start_time"`
	EndTime        time.Time          `json:"end_time"`
}

type ScanStats struct {
	Candidates  int           `json:"candidates"`
	DNSResolved int           `json:"dns_resolved"`
	HTTPSAlive  int           `json:"https_alive"`
	Duration    time.Duration `json:"duration"`
}

func (r *ScanResult) Stats() ScanStats {
	return ScanStats{
		Candidates:  r.CandidateCount,
		DNSResolved: setLen(r.DNSResolved),
		HTTPSAlive:  setLen(r.HTTPSAlive),
		Duration:    r.EndTime.Sub(r.StartTime),
	}
}

// ResolvedSorted returns the DNS-resolved candidates in lexical order.
func (r *ScanResult) ResolvedSorted() []string { return sortedSlice(r.DNSResolved) }

// AliveSorted returns the HTTPS-alive candidates in lexical order.
func (r *ScanResult) AliveSorted() []string { return sortedSlice(r.HTTPSAlive) }

// DNSOnlySorted returns candidates that resolved in DNS but did not answer
// over HTTPS, in lexical order.
func (r *ScanResult) DNSOnlySorted() []string {
	if r.DNSResolved == nil {
		return nil
	}
	if r.HTTPSAlive == nil {
		return sortedSlice(r.DNSResolved)
	}
	return sortedSlice(r.DNSResolved.Difference(r.HTTPSAlive))
}

func setLen(s mapset.Set[string]) int {
	if s == nil {
		return 0
	}
	return s.Cardinality()
}

func sortedSlice(s mapset.Set[string]) []string {
	if s == nil {
		return nil
	}
	out := s.ToSlice()
	sort.Strings(out)
	return out
}
