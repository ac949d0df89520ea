package relay

// Environ supplies ambient invocation inputs. When Serve is called
// without an event or platform value, the router falls back to the
// injected Environ instead of reaching for a host-runtime global, which
// keeps dispatch testable outside the real platform.
type Environ interface {
	// Event returns the ambient raw event payload.
	Event() []byte

	// Platform returns the ambient host-runtime context value.
	Platform() any
}

// WithEnviron sets the ambient-input source consulted when Serve receives
// nil inputs.
func WithEnviron(e Environ) Option {
	return func(r *Router) {
		r.environ = e
	}
}
