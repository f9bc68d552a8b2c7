package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arbiterhq/arbiter/pkg/lifecycle"
)

func TestWaitForStartup(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Int32
	lc.OnStartup(func() error { ran.Add(1); return nil })
	lc.OnStartup(func() error { ran.Add(1); return nil })

	if lc.Ready() {
		t.Error("coordinator ready before startup completed")
	}

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("startup failed: %v", err)
	}

	if ran.Load() != 2 {
		t.Errorf("ran %d startup hooks, want 2", ran.Load())
	}
	if !lc.Ready() {
		t.Error("coordinator not ready after startup")
	}
}

func TestWaitForStartupFailure(t *testing.T) {
	lc := lifecycle.New()

	hookErr := errors.New("ping failed")
	lc.OnStartup(func() error { return nil })
	lc.OnStartup(func() error { return hookErr })

	err := lc.WaitForStartup()
	if !errors.Is(err, hookErr) {
		t.Fatalf("err = %v, want %v", err, hookErr)
	}
	if lc.Ready() {
		t.Error("coordinator must stay not ready after a failed startup hook")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var closed atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		closed.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !closed.Load() {
		t.Error("shutdown hook did not run")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnShutdown(func() {
		<-release
	})

	err := lc.Shutdown(10 * time.Millisecond)
	close(release)

	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestContextCancelledOnShutdown(t *testing.T) {
	lc := lifecycle.New()

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context not cancelled after shutdown")
	}
}
