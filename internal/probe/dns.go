// internal/probe/dns.go
package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/mwiater/benchmatrix/internal/matrix"
)

// dnsProbe resolves a domain to its IP addresses. Repeated lookups of the
// same domain within a run go through the injected cache: the target does
// not change mid-run, so re-resolving would just repeat network I/O.
type dnsProbe struct{}

func init() { Register(dnsProbe{}) }

func (dnsProbe) Name() string        { return "dns_lookup" }
func (dnsProbe) Description() string { return "Resolve domains to IP addresses" }

func (dnsProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "domains", Values: []any{"google.com", "github.com", "stackoverflow.com"}},
	}
}

func (p dnsProbe) Run(ctx context.Context, tc matrix.TestCase, deps Deps) Outcome {
	domain := StringValue(tc, "domains", "google.com")
	if deps.Cache == nil {
		return p.resolve(ctx, domain)
	}
	return deps.Cache.GetOrCompute("dns:"+domain, func() Outcome {
		return p.resolve(ctx, domain)
	})
}

func (dnsProbe) resolve(ctx context.Context, domain string) Outcome {
	start := time.Now()
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, address)
		},
	}

	ips, err := resolver.LookupIPAddr(ctx, domain)
	elapsed := time.Since(start)
	if err != nil {
		return Failf(elapsed, "DNS resolution failed: %v", err)
	}
	return Ok(elapsed, map[string]float64{"ip_count": float64(len(ips))})
}

func (p dnsProbe) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if out := p.resolve(ctx, "google.com"); !out.Success {
		return errors.New(*out.Error)
	}
	return nil
}
