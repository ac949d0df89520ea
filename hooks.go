package relay

import (
	"time"

	"github.com/rs/zerolog"
)

// OnResolveFunc is called after controller resolution, with the resolved
// handler name ("error" when resolution failed).
type OnResolveFunc func(c *Context, name string)

// OnDispatchFunc is called just before the chain executes.
type OnDispatchFunc func(c *Context, name string)

// OnSuccessFunc is called after the chain completes cleanly.
type OnSuccessFunc func(c *Context, name string, duration time.Duration)

// OnFailureFunc is called after the chain fails, before normalization.
type OnFailureFunc func(c *Context, name string, err error, duration time.Duration)

// hooks holds the registered lifecycle observers. Slots are nilled out on
// unsubscribe so registration order stays stable.
type hooks struct {
	onResolve  []OnResolveFunc
	onDispatch []OnDispatchFunc
	onSuccess  []OnSuccessFunc
	onFailure  []OnFailureFunc
}

// WithOnResolve adds an observer called after controller resolution.
// Multiple observers are called in registration order.
func WithOnResolve(fn OnResolveFunc) Option {
	return func(r *Router) {
		r.hooks.onResolve = append(r.hooks.onResolve, fn)
	}
}

// WithOnDispatch adds an observer called just before the chain executes.
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(r *Router) {
		r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds an observer called after a clean completion.
//
// Example:
//
//	relay.WithOnSuccess(func(c *relay.Context, name string, d time.Duration) {
//	    metrics.Timing("relay.success", d)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(r *Router) {
		r.hooks.onSuccess = append(r.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds an observer called after a failed invocation.
func WithOnFailure(fn OnFailureFunc) Option {
	return func(r *Router) {
		r.hooks.onFailure = append(r.hooks.onFailure, fn)
	}
}

// OnResolve subscribes an observer and returns its unsubscribe function.
// Subscribe and unsubscribe before the first Serve; the observer lists
// are read-only during dispatch.
func (r *Router) OnResolve(fn OnResolveFunc) (cancel func()) {
	i := len(r.hooks.onResolve)
	r.hooks.onResolve = append(r.hooks.onResolve, fn)
	return func() { r.hooks.onResolve[i] = nil }
}

// OnDispatch subscribes an observer and returns its unsubscribe function.
func (r *Router) OnDispatch(fn OnDispatchFunc) (cancel func()) {
	i := len(r.hooks.onDispatch)
	r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	return func() { r.hooks.onDispatch[i] = nil }
}

// OnSuccess subscribes an observer and returns its unsubscribe function.
func (r *Router) OnSuccess(fn OnSuccessFunc) (cancel func()) {
	i := len(r.hooks.onSuccess)
	r.hooks.onSuccess = append(r.hooks.onSuccess, fn)
	return func() { r.hooks.onSuccess[i] = nil }
}

// OnFailure subscribes an observer and returns its unsubscribe function.
func (r *Router) OnFailure(fn OnFailureFunc) (cancel func()) {
	i := len(r.hooks.onFailure)
	r.hooks.onFailure = append(r.hooks.onFailure, fn)
	return func() { r.hooks.onFailure[i] = nil }
}

func (r *Router) callOnResolve(c *Context, name string) {
	for _, fn := range r.hooks.onResolve {
		if fn != nil {
			fn(c, name)
		}
	}
}

func (r *Router) callOnDispatch(c *Context, name string) {
	for _, fn := range r.hooks.onDispatch {
		if fn != nil {
			fn(c, name)
		}
	}
}

func (r *Router) callOnSuccess(c *Context, name string, d time.Duration) {
	for _, fn := range r.hooks.onSuccess {
		if fn != nil {
			fn(c, name, d)
		}
	}
}

func (r *Router) callOnFailure(c *Context, name string, err error, d time.Duration) {
	for _, fn := range r.hooks.onFailure {
		if fn != nil {
			fn(c, name, err, d)
		}
	}
}

// WithLogger installs lifecycle observers that log resolution at debug
// level and completion at info/error level.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	r := relay.New(ns, relay.WithLogger(logger))
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Router) {
		WithOnResolve(func(c *Context, name string) {
			logger.Debug().Str("handler", name).Msg("resolved")
		})(r)
		WithOnSuccess(func(c *Context, name string, d time.Duration) {
			logger.Info().Str("action", c.Action).Str("handler", name).Dur("duration", d).Msg("handled")
		})(r)
		WithOnFailure(func(c *Context, name string, err error, d time.Duration) {
			logger.Error().Err(err).Str("action", c.Action).Str("handler", name).Dur("duration", d).Msg("failed")
		})(r)
	}
}
