// Package rate keeps a token-bucket limiter per client identity. Entries that
// have not been seen for the expiry window are dropped by a background sweep.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	expiry   time.Duration
	burst    int
	limitRPS float64

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(burst int, expiry time.Duration, limitRPS float64) *Limiter {
	lm := &Limiter{
		expiry:   expiry,
		burst:    burst,
		limitRPS: limitRPS,
		clients:  make(map[string]*client),
	}
	go lm.sweep()
	return lm
}

// Allow reports whether the client identified by id may proceed, consuming
// one token when it does.
func (l *Limiter) Allow(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[id]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rate.Limit(l.limitRPS), l.burst)}
		l.clients[id] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (l *Limiter) sweep() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for id, cl := range l.clients {
			if time.Since(cl.lastSeen) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}

// Every converts a minimum interval between requests into a limit in
// requests per second.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
