package verifier

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	mdns "github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// DNSChecker answers whether a host name resolves to anything at all.
type DNSChecker interface {
	Resolves(ctx context.Context, host string) bool
}

// Resolver checks name existence with an address lookup first and a
// canonical-name lookup as fallback. Queries go over UDP with a TCP retry on
// transport errors or truncation; servers rotate per query.
type Resolver struct {
	servers []string
	timeout time.Duration
	udp     *mdns.Client
	tcp     *mdns.Client
	logger  *logrus.Logger

	mu          sync.Mutex
	rotateIndex int
}

func NewResolver(servers []string, timeout time.Duration, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	if len(servers) == 0 {
		servers = systemResolvers()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	udp := &mdns.Client{
		Net:          "udp",
		Timeout:      timeout,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		UDPSize:      1232,
	}
	tcp := &mdns.Client{
		Net:          "tcp",
		Timeout:      timeout,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	return &Resolver{
		servers: servers,
		timeout: timeout,
		udp:     udp,
		tcp:     tcp,
		logger:  logger,
	}
}

// Resolves reports whether host has at least one A or CNAME record. Every
// resolver error counts as a negative answer, never an error to the caller.
func (r *Resolver) Resolves(ctx context.Context, host string) bool {
	if ok, err := r.lookup(ctx, host, mdns.TypeA); ok {
		return true
	} else if err != nil {
		r.logger.Debugf("A lookup failed for %s: %v", host, err)
	}
	ok, err := r.lookup(ctx, host, mdns.TypeCNAME)
	if err != nil {
		r.logger.Debugf("CNAME lookup failed for %s: %v", host, err)
	}
	return ok
}

func (r *Resolver) lookup(ctx context.Context, host string, qtype uint16) (bool, error) {
	msg := new(mdns.Msg)
	msg.SetQuestion(mdns.Fqdn(host), qtype)
	msg.RecursionDesired = true
	msg.SetEdns0(1232, false)

	server := r.selectServer()
	resp, _, err := r.udp.ExchangeContext(ctx, msg, server)
	if err != nil || resp == nil || resp.Truncated {
		resp, _, err = r.tcp.ExchangeContext(ctx, msg, server)
		if err != nil {
			return false, fmt.Errorf("dns exchange with %s: %w", server, err)
		}
	}
	if resp == nil {
		return false, fmt.Errorf("nil DNS response from %s", server)
	}
	if resp.Rcode != mdns.RcodeSuccess {
		return false, nil
	}
	for _, rr := range resp.Answer {
		if rr != nil && rr.Header().Rrtype == qtype {
			return true, nil
		}
	}
	return false, nil
}

func (r *Resolver) selectServer() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.servers) == 0 {
		r.servers = systemResolvers()
	}
	server := r.servers[r.rotateIndex%len(r.servers)]
	r.rotateIndex = (r.rotateIndex + 1) % len(r.servers)

	if !strings.Contains(server, ":") {
		server = net.JoinHostPort(server, "53")
	}
	return server
}

func systemResolvers() []string {
	cfg, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || cfg == nil || len(cfg.Servers) == 0 {
		return []string{
			"1.1.1.1:53",
			"8.8.8.8:53",
			"9.9.9.9:53",
		}
	}
	servers := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		servers = append(servers, net.JoinHostPort(s, "53"))
	}
	return servers
}
