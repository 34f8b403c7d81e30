package verifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPSChecker answers whether a host responds over HTTPS with a non-error status.
type HTTPSChecker interface {
	Alive(ctx context.Context, host string) bool
}

// The probe tests reachability, not trust or content, so it presents a fixed
// browser user agent and skips certificate validation.
const probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const maxProbeRedirects = 10

// Prober issues HEAD requests to https://<host>/ and treats any status below
// 400 as alive. Redirects are followed; connection, TLS and timeout failures
// all count as not alive.
type Prober struct {
	client *http.Client
	logger *logrus.Logger
}

func NewProber(timeout time.Duration, logger *logrus.Logger) *Prober {
	if logger == nil {
		logger = logrus.New()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
			NextProtos:         []string{"h2", "http/1.1"},
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxProbeRedirects {
				return fmt.Errorf("stopped after %d redirects", maxProbeRedirects)
			}
			return nil
		},
	}

	return &Prober{client: client, logger: logger}
}

// Alive probes https://<host>/ with a HEAD request bounded by ctx.
func (p *Prober) Alive(ctx context.Context, host string) bool {
	url := "https://" + host + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		p.logger.Debugf("Failed to build probe request for %s: %v", host, err)
		return false
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debugf("Probe failed for %s: %v", url, err)
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return resp.StatusCode < 400
}
