package provider

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// notifier fans account changes out to subscribers. Delivery happens on a
// dedicated goroutine, in publish order, never on the publisher's stack.
type notifier struct {
	mu    sync.Mutex
	next  int
	subs  map[int]func([]common.Address)
	queue chan []common.Address
	start sync.Once
}

func (n *notifier) subscribe(fn func([]common.Address)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func([]common.Address))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *notifier) subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (n *notifier) publish(accounts []common.Address) {
	n.start.Do(func() {
		n.queue = make(chan []common.Address, 16)
		go n.loop()
	})
	n.queue <- append([]common.Address(nil), accounts...)
}

func (n *notifier) loop() {
	for accounts := range n.queue {
		n.mu.Lock()
		fns := make([]func([]common.Address), 0, len(n.subs))
		for _, fn := range n.subs {
			fns = append(fns, fn)
		}
		n.mu.Unlock()
		for _, fn := range fns {
			fn(accounts)
		}
	}
}
