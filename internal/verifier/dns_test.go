package verifier

import (
	"context"
	"net"
	"testing"
	"time"

	mdns "github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestDNS runs a local UDP DNS server answering A for alive.example.com
// and CNAME for alias.example.com, NXDOMAIN for everything else.
func startTestDNS(t *testing.T) string {
	t.Helper()

	mux := mdns.NewServeMux()
	mux.HandleFunc(".", func(w mdns.ResponseWriter, req *mdns.Msg) {
		m := new(mdns.Msg)
		m.SetReply(req)
		q := req.Question[0]
		switch {
		case q.Name == "alive.example.com." && q.Qtype == mdns.TypeA:
			rr, err := mdns.NewRR("alive.example.com. 60 IN A 192.0.2.10")
			if err == nil {
				m.Answer = append(m.Answer, rr)
			}
		case q.Name == "alias.example.com." && q.Qtype == mdns.TypeCNAME:
			rr, err := mdns.NewRR("alias.example.com. 60 IN CNAME alive.example.com.")
			if err == nil {
				m.Answer = append(m.Answer, rr)
			}
		default:
			m.Rcode = mdns.RcodeNameError
		}
		_ = w.WriteMsg(m)
	})

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &mdns.Server{PacketConn: pc, Handler: mux}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestResolverAddressRecord(t *testing.T) {
	addr := startTestDNS(t)
	r := NewResolver([]string{addr}, time.Second, nil)

	assert.True(t, r.Resolves(context.Background(), "alive.example.com"))
}

func TestResolverCNAMEFallback(t *testing.T) {
	addr := startTestDNS(t)
	r := NewResolver([]string{addr}, time.Second, nil)

	// no A record exists, only the canonical-name lookup answers
	assert.True(t, r.Resolves(context.Background(), "alias.example.com"))
}

func TestResolverNXDomain(t *testing.T) {
	addr := startTestDNS(t)
	r := NewResolver([]string{addr}, time.Second, nil)

	assert.False(t, r.Resolves(context.Background(), "missing.example.com"))
}

func TestResolverUnreachableServer(t *testing.T) {
	r := NewResolver([]string{"127.0.0.1:1"}, 300*time.Millisecond, nil)

	// transport failure is a negative answer, never a panic or hang
	assert.False(t, r.Resolves(context.Background(), "anything.example.com"))
}

func TestResolverRotatesServers(t *testing.T) {
	r := NewResolver([]string{"10.0.0.1", "10.0.0.2:5353"}, time.Second, nil)

	assert.Equal(t, "10.0.0.1:53", r.selectServer())
	assert.Equal(t, "10.0.0.2:5353", r.selectServer())
	assert.Equal(t, "10.0.0.1:53", r.selectServer())
}

func TestResolverDefaults(t *testing.T) {
	r := NewResolver(nil, 0, nil)
	assert.NotEmpty(t, r.servers)
	assert.Equal(t, 5*time.Second, r.timeout)
}
