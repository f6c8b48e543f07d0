package proxy

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// maxFailures is the failure count at which an entry stops being selected.
	maxFailures = 3
	// reuseCooldown is the minimum time between two uses of the same entry.
	reuseCooldown = 2 * time.Second
	// rotationInterval is how often the pool order is reshuffled.
	rotationInterval = 10 * time.Minute
)

// Entry is a proxy server with its health bookkeeping. Entries live for the
// process lifetime; failures accumulate but never remove an entry.
type Entry struct {
	Address  string
	Failures int
	LastUsed time.Time
}

// Pool manages a rotating list of proxies shared by concurrent fetches.
// All access goes through the pool's mutex so failure counts and last-used
// stamps are never lost to races.
type Pool struct {
	mu           sync.Mutex
	entries      []*Entry
	index        int
	lastRotation time.Time
	now          func() time.Time // injectable clock for tests
}

// NewPool creates a pool from a list of proxy addresses. New entries are
// stamped in the past so they qualify for immediate selection.
func NewPool(addresses []string) *Pool {
	p := &Pool{
		lastRotation: time.Now(),
		now:          time.Now,
	}
	for _, addr := range addresses {
		p.Add(addr)
	}
	return p
}

// Add appends a proxy address to the pool.
func (p *Pool) Add(address string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, &Entry{
		Address:  address,
		LastUsed: p.now().Add(-5 * time.Minute),
	})
}

// Next returns the next healthy proxy address, round-robin from a persistent
// cursor, walking the pool at most once. An entry qualifies if it has fewer
// than three recorded failures and has rested for the reuse cooldown.
// Returns "" when the pool is empty or nothing qualifies.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.entries) == 0 {
		return ""
	}

	now := p.now()
	if now.Sub(p.lastRotation) > rotationInterval {
		rand.Shuffle(len(p.entries), func(i, j int) {
			p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
		})
		p.lastRotation = now
	}

	for range p.entries {
		entry := p.entries[p.index]
		p.index = (p.index + 1) % len(p.entries)

		if entry.Failures < maxFailures && now.Sub(entry.LastUsed) > reuseCooldown {
			entry.LastUsed = now
			return entry.Address
		}
	}

	return ""
}

// MarkFailure increments the failure count of the entry with the given
// address. The entry stays in the pool; at three failures it is simply
// never selected again.
func (p *Pool) MarkFailure(address string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, entry := range p.entries {
		if entry.Address == address {
			entry.Failures++
			return
		}
	}
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
