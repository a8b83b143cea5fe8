package rpc

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Nodes more than this many blocks behind the best are skipped.
	maxBlockLag = 3
)

// ParseAlgorithm validates a configured algorithm name. Empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(s); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown rpc algorithm %q (fastest, round-robin, failover)", s)
	}
}

// Picker chooses among probed endpoints.
type Picker struct {
	algo Algorithm

	mu   sync.Mutex
	next int
}

// NewPicker creates a Picker with the given algorithm.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo}
}

// Pick selects an endpoint among eps. Endpoints whose chain id differs from
// wantChainID are never chosen (pass 0 to skip the check).
func (p *Picker) Pick(eps []Endpoint, wantChainID uint64) (Endpoint, error) {
	live := usable(eps, wantChainID)
	if len(live) == 0 {
		return Endpoint{}, ErrNoHealthyRPC
	}

	switch p.algo {
	case AlgorithmFailover:
		return live[0], nil
	case AlgorithmRoundRobin:
		p.mu.Lock()
		defer p.mu.Unlock()
		ep := live[p.next%len(live)]
		p.next++
		return ep, nil
	default:
		best := live[0]
		for _, ep := range live[1:] {
			if ep.Latency < best.Latency {
				best = ep
			}
		}
		return best, nil
	}
}

// Select probes urls and picks one. A single URL is returned unprobed.
func Select(ctx context.Context, urls []string, algo Algorithm, wantChainID uint64) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	ep, err := NewPicker(algo).Pick(Probe(ctx, urls), wantChainID)
	if err != nil {
		return "", err
	}
	return ep.URL, nil
}

// usable keeps healthy endpoints on the wanted chain that are not lagging,
// preserving input order.
func usable(eps []Endpoint, wantChainID uint64) []Endpoint {
	var best uint64
	for _, ep := range eps {
		if ep.Healthy() && ep.BlockNumber > best {
			best = ep.BlockNumber
		}
	}
	var out []Endpoint
	for _, ep := range eps {
		if !ep.Healthy() {
			continue
		}
		if wantChainID != 0 && ep.ChainID != wantChainID {
			continue
		}
		if best-ep.BlockNumber > maxBlockLag {
			continue
		}
		out = append(out, ep)
	}
	return out
}
