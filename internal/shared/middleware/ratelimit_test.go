package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterAllowsBurst(t *testing.T) {
	rl := NewIPRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d within burst should pass", i+1)
	}
	assert.False(t, rl.Allow("1.2.3.4"), "request beyond burst should be limited")
}

func TestIPRateLimiterIsolatesClients(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// A different IP gets its own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestIPRateLimiterStop(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)
	assert.True(t, rl.Allow("10.0.0.1"))

	rl.Stop()
	rl.Stop() // idempotent

	select {
	case <-rl.stop:
	default:
		t.Fatal("stop channel should be closed after Stop")
	}
}
