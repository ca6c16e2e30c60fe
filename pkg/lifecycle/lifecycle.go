// Package lifecycle coordinates application startup and graceful shutdown.
// Systems register startup and shutdown hooks with a shared Coordinator;
// shutdown hooks block on the coordinator context before running.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether startup has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks for application systems.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	startup  []func()
	shutdown sync.WaitGroup
	ready    atomic.Bool
	mu       sync.Mutex
}

// New creates a Coordinator with an active context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator context. The context is cancelled when
// Shutdown is called.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether WaitForStartup has completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a function to run during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// OnShutdown registers a function to run when the coordinator shuts down.
// Registered functions should block on Context().Done() before performing
// cleanup so that Shutdown can wait for all of them.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Add(1)
	go func() {
		defer c.shutdown.Done()
		fn()
	}()
}

// WaitForStartup runs all registered startup functions and marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	fns := c.startup
	c.startup = nil
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	c.ready.Store(true)
}

// Shutdown cancels the coordinator context and waits for all shutdown
// functions to complete, up to the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
