package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}

	l3 := NewLimiter(0, 1)
	if l3.defaultRate != rate.Inf {
		t.Errorf("expected unlimited rate for 0, got %v", l3.defaultRate)
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	path := filepath.Join("sheets", "aceton.pdf")

	for i := 0; i < 100; i++ {
		if !limiter.Allow(path) {
			t.Fatalf("expected unlimited limiter to allow read %d", i)
		}
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, filepath.Join("a", "one.pdf")); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, filepath.Join("b", "two.pdf")); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerDirectory(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)

	if !limiter.Allow(filepath.Join("share", "aceton.pdf")) {
		t.Error("expected first read to be allowed")
	}

	// Same directory shares the exhausted bucket
	if limiter.Allow(filepath.Join("share", "ethanol.pdf")) {
		t.Error("expected second read from the same directory to be throttled")
	}

	if !limiter.Allow(filepath.Join("local", "aceton.pdf")) {
		t.Error("expected read from another directory to be allowed")
	}
}

func TestLimiter_SetSourceRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	slow := filepath.Join("mnt", "slow")

	limiter.SetSourceRate(slow, 0.1, 1)

	if !limiter.Allow(filepath.Join(slow, "a.pdf")) {
		t.Error("first read should pass")
	}
	if limiter.Allow(filepath.Join(slow, "b.pdf")) {
		t.Error("second read should fail")
	}
	if !limiter.Allow(filepath.Join("mnt", "fast", "a.pdf")) {
		t.Error("other directory should pass")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	path := filepath.Join("share", "a.pdf")
	_ = limiter.Allow(path)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, path); err == nil {
		t.Error("expected wait to fail when the context ends first")
	}
}
