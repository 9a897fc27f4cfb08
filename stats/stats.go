// Package stats tracks process-wide usage counters for the admin stats
// command and mirrors them into Prometheus collectors.
package stats

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counters holds the running numbers. Users seen and links processed
// are monotonic; the verified-today set is cleared by the daily flush.
// Nothing is persisted, a restart zeroes everything.
type Counters struct {
	mu             sync.Mutex
	users          map[int64]struct{}
	linksProcessed int64
	verifiedToday  map[int64]struct{}

	usersGauge    prometheus.Gauge
	linksCounter  prometheus.Counter
	verifiedGauge prometheus.Gauge
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Users          int   `json:"users"`
	LinksProcessed int64 `json:"links_processed"`
	VerifiedToday  int   `json:"verified_today"`
}

// New builds a Counters. The collectors are registered with reg; pass
// nil to skip registration (tests).
func New(reg prometheus.Registerer) *Counters {
	c := &Counters{
		users:         make(map[int64]struct{}),
		verifiedToday: make(map[int64]struct{}),
		usersGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bot_users_seen",
			Help: "Distinct users seen since the process started.",
		}),
		linksCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_links_processed_total",
			Help: "Links successfully resolved and delivered.",
		}),
		verifiedGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bot_users_verified_today",
			Help: "Users who completed verification since the last daily flush.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.usersGauge, c.linksCounter, c.verifiedGauge)
	}
	return c
}

func (c *Counters) RecordUserSeen(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[userID]; ok {
		return
	}
	c.users[userID] = struct{}{}
	c.usersGauge.Set(float64(len(c.users)))
}

func (c *Counters) RecordLinkProcessed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.linksProcessed++
	c.linksCounter.Inc()
}

func (c *Counters) RecordUserVerified(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifiedToday[userID] = struct{}{}
	c.verifiedGauge.Set(float64(len(c.verifiedToday)))
}

func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Users:          len(c.users),
		LinksProcessed: c.linksProcessed,
		VerifiedToday:  len(c.verifiedToday),
	}
}

// ResetDaily clears the verified-today set and nothing else.
func (c *Counters) ResetDaily() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifiedToday = make(map[int64]struct{})
	c.verifiedGauge.Set(0)
}
