package relay

import (
	"context"
	"fmt"
	"time"
)

// Router dispatches invocations to handlers resolved from a namespace
// tree, running a chain of match-gated middleware around them.
//
// Usage:
//  1. Create a router with New, passing the handler namespace
//  2. Register middleware with Register
//  3. Dispatch invocations with Serve
//
// Router is safe for concurrent use after configuration. Do not call
// Register or the On* subscription methods after the first Serve.
type Router struct {
	cfg        Config
	ns         Namespace
	entries    []entry
	matcherFor MatcherFactory
	environ    Environ
	hooks      hooks
}

// Option configures a Router.
type Option func(*Router)

// New creates a Router over the given handler namespace.
//
// The built-in transport entry is installed first, before any
// configuration-supplied middleware, and always runs.
//
// Example:
//
//	r := relay.New(ns,
//	    relay.WithDebug(true),
//	    relay.WithOnFailure(func(c *relay.Context, name string, err error, d time.Duration) {
//	        metrics.Incr("relay.failure")
//	    }),
//	)
func New(ns Namespace, opts ...Option) *Router {
	r := &Router{
		ns:         ns,
		matcherFor: defaultMatcher,
	}
	r.entries = append(r.entries, entry{fn: transport, name: transportName})
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithMatcherFactory replaces the predicate factory used to translate
// MatchOptions at registration time.
func WithMatcherFactory(f MatcherFactory) Option {
	return func(r *Router) {
		r.matcherFor = f
	}
}

// Register appends middleware to the chain and returns the Router for
// chaining. Entries execute in registration order on the way in and in
// reverse order on the way out.
//
// Passing optional MatchOptions gates the middleware: when the predicate
// does not match an invocation, the middleware body is skipped entirely
// and the chain proceeds to the next entry.
//
// Register panics on a nil middleware; that is a configuration bug and
// should be fatal at setup.
func (r *Router) Register(m Middleware, opts ...MatchOptions) *Router {
	if m == nil {
		panic("relay: Register requires a non-nil middleware")
	}
	var o MatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	r.entries = append(r.entries, newEntry(m, o, r.matcherFor))
	return r
}

// Serve dispatches one invocation and returns the normalized outcome: the
// final body value on success, a *Failure on any error. It never panics
// and has no error return; the host runtime always receives a well-formed
// response value.
//
// Nil event or platform inputs fall back to the Environ configured with
// WithEnviron, when one is set.
//
// The flow per invocation:
//  1. Build a fresh Context from the event and platform inputs
//  2. Resolve the action against the namespace tree
//  3. On resolution failure, run only the transport entry and the
//     synthetic error handler, bypassing user middleware
//  4. Otherwise run the full chain with the handler innermost
//  5. Normalize the body or the caught failure
func (r *Router) Serve(ctx context.Context, event []byte, platform any) any {
	if event == nil && r.environ != nil {
		event = r.environ.Event()
	}
	if platform == nil && r.environ != nil {
		platform = r.environ.Platform()
	}
	c := newContext(ctx, r.ns, event, platform)

	handler := resolve(r.ns, decodeAction(event))
	r.callOnResolve(c, handler.name)

	// Malformed or unroutable requests never reach user middleware.
	chain := r.entries
	if handler.name == errorHandlerName {
		chain = r.entries[:1]
	}

	r.callOnDispatch(c, handler.name)
	start := time.Now()
	err := r.run(c, chain, handler)
	duration := time.Since(start)

	if err != nil {
		r.callOnFailure(c, handler.name, err, duration)
		return normalize(err, r.cfg.Debug)
	}
	r.callOnSuccess(c, handler.name, duration)
	return c.Body
}

// run executes the composed chain behind the single catch boundary.
// Errors returned by any step and panics raised by any step both land
// here; nothing escapes past Serve.
func (r *Router) run(c *Context, entries []entry, handler entry) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok {
				err = e
				return
			}
			err = NewError(nil, fmt.Sprint(v))
		}
	}()
	return compose(c, entries, handler)()
}

// Config returns the router configuration.
func (r *Router) Config() Config { return r.cfg }
