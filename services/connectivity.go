package services

import (
	"context"
	"net"
	"time"

	"github.com/yeremiapane/restaurant-pos/utils"
)

// ConnectivityProbe answers whether the remote side is worth trying.
// It only gates write propagation; reads always attempt the remote on a miss.
type ConnectivityProbe interface {
	Reachable(ctx context.Context) bool
}

// ProbeFunc adapts a plain function to ConnectivityProbe.
type ProbeFunc func(ctx context.Context) bool

func (f ProbeFunc) Reachable(ctx context.Context) bool {
	return f(ctx)
}

// DNSProbe resolves a well known host within Timeout.
type DNSProbe struct {
	Host     string
	Timeout  time.Duration
	Resolver *net.Resolver
}

func NewDNSProbe(host string, timeout time.Duration) *DNSProbe {
	return &DNSProbe{
		Host:     host,
		Timeout:  timeout,
		Resolver: net.DefaultResolver,
	}
}

// Reachable never returns an error; any lookup failure means offline.
func (p *DNSProbe) Reachable(ctx context.Context) bool {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	addrs, err := p.Resolver.LookupHost(ctx, p.Host)
	if err != nil {
		utils.InfoLogger.WithField("host", p.Host).Debugf("Connectivity probe failed: %v", err)
		return false
	}
	return len(addrs) > 0
}
