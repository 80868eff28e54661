package transport

import (
	"sync"
	"time"
)

// limiter is a token bucket throttling inbound frames per connection.
// Over-limit frames are dropped, never fatal to the connection.
type limiter struct {
	mu        sync.Mutex
	tokens    float64
	capacity  float64
	rate      float64 // tokens per second
	lastCheck time.Time
}

func newLimiter(burst int, refill time.Duration) *limiter {
	if burst <= 0 {
		burst = 1
	}
	if refill <= 0 {
		refill = time.Second
	}

	return &limiter{
		tokens:    float64(burst),
		capacity:  float64(burst),
		rate:      float64(burst) / refill.Seconds(),
		lastCheck: time.Now(),
	}
}

func (l *limiter) allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastCheck).Seconds()
	l.lastCheck = now

	if elapsed > 0 {
		l.tokens += elapsed * l.rate
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
	}

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}
