package async

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/m-mizutani/ctxlog"
)

type config struct {
	name    string
	timeout time.Duration
}

// Option configures a dispatched handler
type Option func(*config)

// WithName labels log records of the handler
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithTimeout bounds the handler's context. Zero means no deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// Dispatch executes handler in a new goroutine.
//
// The handler receives a background context that keeps the ctxlog logger of
// ctx but not its cancellation, so it outlives the HTTP request that started
// it. Panics and returned errors are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error, opts ...Option) {
	cfg := &config{name: "async"}
	for _, opt := range opts {
		opt(cfg)
	}

	newCtx, cancel := newBackgroundContext(ctx, cfg)

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(newCtx)
				logger.Error("panic in async handler",
					"handler", cfg.name,
					"recover", r,
					"stack", string(stack))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger := ctxlog.From(newCtx)
			logger.Error("error in async handler", "handler", cfg.name, "error", err)
		}
	}()
}

// newBackgroundContext creates a context.Background() carrying the logger of ctx
func newBackgroundContext(ctx context.Context, cfg *config) (context.Context, context.CancelFunc) {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))

	if cfg.timeout > 0 {
		return context.WithTimeout(newCtx, cfg.timeout)
	}
	return context.WithCancel(newCtx)
}
