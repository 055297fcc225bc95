// Package lifecycle coordinates the startup and shutdown of the service's
// long-lived subsystems (database pool, blob container, HTTP listener).
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Hook is a named startup or shutdown step.
type Hook func(ctx context.Context) error

// Coordinator runs startup hooks concurrently and remembers whether they all
// succeeded. Shutdown hooks run together once Shutdown is called.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	startup sync.WaitGroup

	mu       sync.Mutex
	started  bool
	failures []error
	shutdown []namedHook
}

type namedHook struct {
	name string
	fn   Hook
}

// New returns a Coordinator whose context lives until Shutdown.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context is canceled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn in its own goroutine immediately. A returned error keeps
// the coordinator from reporting ready.
func (c *Coordinator) OnStartup(name string, fn Hook) {
	c.startup.Go(func() {
		if err := fn(c.ctx); err != nil {
			c.mu.Lock()
			c.failures = append(c.failures, fmt.Errorf("%s: %w", name, err))
			c.mu.Unlock()
		}
	})
}

// OnShutdown registers fn to run when Shutdown is called.
func (c *Coordinator) OnShutdown(name string, fn Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown = append(c.shutdown, namedHook{name: name, fn: fn})
}

// WaitForStartup blocks until every startup hook has returned and reports
// their combined failure, if any.
func (c *Coordinator) WaitForStartup() error {
	c.startup.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	return errors.Join(c.failures...)
}

// Ready reports whether startup finished with no failed hooks.
func (c *Coordinator) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started && len(c.failures) == 0
}

// Shutdown cancels Context, then runs every shutdown hook concurrently with
// a context bounded by timeout. Hook errors and the deadline are joined.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	c.mu.Lock()
	hooks := c.shutdown
	c.shutdown = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, h := range hooks {
		wg.Go(func() {
			if err := h.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
				mu.Unlock()
			}
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		errs = append(errs, fmt.Errorf("shutdown timeout after %v", timeout))
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
