package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
)

// probeTimeout bounds a single endpoint health check.
const probeTimeout = 5 * time.Second

// Endpoint is one RPC URL with its measured attributes.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	ChainID     uint64
	Err         error
}

// Healthy reports whether the probe succeeded.
func (e Endpoint) Healthy() bool { return e.Err == nil }

// Probe pings every URL in parallel and returns one Endpoint per URL in
// input order. Each probe also reads the chain id so a misconfigured URL
// pointing at the wrong network can be rejected by the caller.
func Probe(ctx context.Context, urls []string) []Endpoint {
	out := make([]Endpoint, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			out[idx] = probeOne(ctx, url)
		}(i, u)
	}
	wg.Wait()
	return out
}

func probeOne(ctx context.Context, url string) Endpoint {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	c := chain.NewEVMClient(url)
	ep := Endpoint{URL: url}
	ep.Latency, ep.BlockNumber, ep.Err = c.Ping(ctx)
	if ep.Err != nil {
		return ep
	}
	ep.ChainID, ep.Err = c.ChainID(ctx)
	return ep
}
