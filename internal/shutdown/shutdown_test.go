package shutdown

import (
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30*time.Second, cfg.OverallTimeout)
	assert.Equal(t, 10*time.Second, cfg.PerHookTimeout)
	assert.Equal(t, 10*time.Second, cfg.DrainTimeout)
	assert.Equal(t, 5*time.Second, cfg.SlowHookThreshold)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    Config
		expected Config
	}{
		{
			name:     "zero values get defaults",
			input:    Config{},
			expected: DefaultConfig(),
		},
		{
			name: "negative values get defaults",
			input: Config{
				OverallTimeout:    -1,
				PerHookTimeout:    -1,
				DrainTimeout:      -1,
				SlowHookThreshold: -1,
			},
			expected: DefaultConfig(),
		},
		{
			name: "valid values preserved",
			input: Config{
				OverallTimeout:    60 * time.Second,
				PerHookTimeout:    20 * time.Second,
				DrainTimeout:      15 * time.Second,
				SlowHookThreshold: 10 * time.Second,
			},
			expected: Config{
				OverallTimeout:    60 * time.Second,
				PerHookTimeout:    20 * time.Second,
				DrainTimeout:      15 * time.Second,
				SlowHookThreshold: 10 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Validate()
			assert.Equal(t, tt.expected, tt.input)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Run("register and count", func(t *testing.T) {
		r := NewRegistry()
		assert.Equal(t, 0, r.Count())

		r.Register("hook1", func(ctx context.Context) error { return nil })
		assert.Equal(t, 1, r.Count())

		r.Register("hook2", func(ctx context.Context) error { return nil })
		assert.Equal(t, 2, r.Count())
	})

	t.Run("hooks returns copy in registration order", func(t *testing.T) {
		r := NewRegistry()
		r.Register("hook1", func(ctx context.Context) error { return nil })
		r.Register("hook2", func(ctx context.Context) error { return nil })

		hooks := r.Hooks()
		require.Len(t, hooks, 2)
		assert.Equal(t, "hook1", hooks[0].Name)
		assert.Equal(t, "hook2", hooks[1].Name)

		// Modifying returned slice shouldn't affect registry
		hooks = append(hooks, Hook{Name: "hook3"})
		assert.Len(t, r.Hooks(), 2)
	})

	t.Run("clear", func(t *testing.T) {
		r := NewRegistry()
		r.Register("hook1", func(ctx context.Context) error { return nil })
		r.Register("hook2", func(ctx context.Context) error { return nil })

		r.Clear()
		assert.Equal(t, 0, r.Count())
	})
}

func TestManager(t *testing.T) {
	t.Run("hooks execute in registration order", func(t *testing.T) {
		m := NewManagerWithDefaults()

		var order []string
		ch := make(chan string, 3)

		m.Register("first", func(ctx context.Context) error {
			ch <- "first"
			return nil
		})
		m.Register("second", func(ctx context.Context) error {
			ch <- "second"
			return nil
		})
		m.Register("third", func(ctx context.Context) error {
			ch <- "third"
			return nil
		})

		m.Shutdown()

		close(ch)
		for s := range ch {
			order = append(order, s)
		}

		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("shutdown only once", func(t *testing.T) {
		m := NewManagerWithDefaults()

		var count atomic.Int32
		m.Register("counter", func(ctx context.Context) error {
			count.Add(1)
			return nil
		})

		// Call shutdown multiple times
		m.Shutdown()
		m.Shutdown()
		m.Shutdown()

		assert.Equal(t, int32(1), count.Load())
	})

	t.Run("state transitions", func(t *testing.T) {
		m := NewManagerWithDefaults()
		assert.Equal(t, StateRunning, m.State())
		assert.False(t, m.IsShuttingDown())
		assert.False(t, m.IsShutdown())

		done := make(chan struct{})
		m.Register("blocker", func(ctx context.Context) error {
			<-done
			return nil
		})

		go m.Shutdown()

		// Wait for shutdown to start
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, StateShuttingDown, m.State())
		assert.True(t, m.IsShuttingDown())
		assert.False(t, m.IsShutdown())

		close(done)
		m.Wait()

		assert.Equal(t, StateShutdown, m.State())
		assert.False(t, m.IsShuttingDown())
		assert.True(t, m.IsShutdown())
	})

	t.Run("error collection", func(t *testing.T) {
		m := NewManagerWithDefaults()

		expectedErr := errors.New("test error")
		m.Register("failing", func(ctx context.Context) error {
			return expectedErr
		})
		m.Register("success", func(ctx context.Context) error {
			return nil
		})

		m.Shutdown()

		errs := m.Errors()
		assert.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "test error")
	})

	t.Run("hook count", func(t *testing.T) {
		m := NewManagerWithDefaults()
		assert.Equal(t, 0, m.HookCount())

		m.Register("hook1", func(ctx context.Context) error { return nil })
		assert.Equal(t, 1, m.HookCount())

		m.Register("hook2", func(ctx context.Context) error { return nil })
		assert.Equal(t, 2, m.HookCount())
	})
}

func TestTimeout(t *testing.T) {
	t.Run("WithTimeout success", func(t *testing.T) {
		ctx := context.Background()
		err := WithTimeout(ctx, time.Second, "test", func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("WithTimeout timeout", func(t *testing.T) {
		ctx := context.Background()
		err := WithTimeout(ctx, 10*time.Millisecond, "test", func(ctx context.Context) error {
			time.Sleep(100 * time.Millisecond)
			return nil
		})

		assert.Error(t, err)
		assert.True(t, IsTimeout(err))

		var timeoutErr *TimeoutError
		assert.True(t, errors.As(err, &timeoutErr))
		assert.Equal(t, "test", timeoutErr.Operation)
	})

	t.Run("WithTimeoutAndPanicRecovery panic", func(t *testing.T) {
		ctx := context.Background()
		err := WithTimeoutAndPanicRecovery(ctx, time.Second, "test", func(ctx context.Context) error {
			panic("test panic")
		})

		assert.Error(t, err)
		assert.True(t, IsPanic(err))

		var panicErr *PanicError
		assert.True(t, errors.As(err, &panicErr))
		assert.Equal(t, "test", panicErr.Operation)
		assert.Equal(t, "test panic", panicErr.Value)
	})

	t.Run("WithTimeoutAndPanicRecovery success", func(t *testing.T) {
		ctx := context.Background()
		err := WithTimeoutAndPanicRecovery(ctx, time.Second, "test", func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestManagerPerHookTimeout(t *testing.T) {
	cfg := Config{
		OverallTimeout: 5 * time.Second,
		PerHookTimeout: 50 * time.Millisecond,
		DrainTimeout:   1 * time.Second,
	}
	cfg.Validate()

	m := NewManager(cfg, nil)

	m.Register("slow-hook", func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	start := time.Now()
	m.Shutdown()
	elapsed := time.Since(start)

	// Should timeout quickly, not wait for the full 200ms
	assert.Less(t, elapsed, 150*time.Millisecond)

	errs := m.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "timed out")
}

func TestManagerOverallTimeout(t *testing.T) {
	cfg := Config{
		OverallTimeout: 100 * time.Millisecond,
		PerHookTimeout: 1 * time.Second,
		DrainTimeout:   1 * time.Second,
	}
	cfg.Validate()

	m := NewManager(cfg, nil)

	m.Register("hook1", func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	})
	m.Register("hook2", func(ctx context.Context) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})
	m.Register("hook3", func(ctx context.Context) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	start := time.Now()
	m.Shutdown()
	elapsed := time.Since(start)

	// Should respect overall timeout
	assert.Less(t, elapsed, 300*time.Millisecond)
}

func TestManagerPanicRecovery(t *testing.T) {
	m := NewManagerWithDefaults()

	m.Register("panicking", func(ctx context.Context) error {
		panic("test panic")
	})
	m.Register("normal", func(ctx context.Context) error {
		return nil
	})

	// Should not panic
	m.Shutdown()

	errs := m.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "panicked")
}

func TestSignalHandler(t *testing.T) {
	t.Run("default signals", func(t *testing.T) {
		h := NewSignalHandler()
		signals := h.Signals()
		assert.Len(t, signals, 3)
	})

	t.Run("custom signals", func(t *testing.T) {
		// Passing specific signals
		h := NewSignalHandler(syscall.SIGTERM, syscall.SIGINT)
		signals := h.Signals()
		assert.Len(t, signals, 2)
	})

	t.Run("stop", func(t *testing.T) {
		h := NewSignalHandler()
		ch := h.Listen()
		h.Stop()

		// Channel should be closed
		_, ok := <-ch
		assert.False(t, ok)
	})
}

func TestState(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateRunning, "running"},
		{StateShuttingDown, "shutting_down"},
		{StateShutdown, "shutdown"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
