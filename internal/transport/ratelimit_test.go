package transport

import (
	"testing"
	"time"
)

func TestLimiter_BurstThenDeny(t *testing.T) {
	lim := newLimiter(3, time.Hour) // effectively no refill during the test

	for i := 0; i < 3; i++ {
		if !lim.allow() {
			t.Fatalf("allow() = false on burst token %d", i+1)
		}
	}
	if lim.allow() {
		t.Error("allow() = true after burst exhausted")
	}
}

func TestLimiter_Refills(t *testing.T) {
	lim := newLimiter(2, 20*time.Millisecond)

	lim.allow()
	lim.allow()
	if lim.allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(30 * time.Millisecond)
	if !lim.allow() {
		t.Error("allow() = false after refill interval")
	}
}

func TestNewLimiter_SanitizesInputs(t *testing.T) {
	lim := newLimiter(0, 0)
	if !lim.allow() {
		t.Error("sanitized limiter must grant at least one token")
	}
}
