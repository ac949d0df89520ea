package relay

import (
	"context"

	"github.com/tidwall/gjson"
)

// Context is the per-invocation state threaded through the middleware
// chain. The Router creates a fresh Context for every invocation; it is
// owned exclusively by that invocation and discarded afterwards. Nothing
// here is shared across concurrent invocations.
type Context struct {
	// Event is the raw invocation payload.
	Event []byte

	// Platform is the raw host-runtime context value, opaque to the
	// router.
	Platform any

	// Action, Method, and Path are populated by the built-in transport
	// entry before any user middleware runs.
	Action string
	Method string
	Path   string

	// Body is the mutable result slot. Whatever value it holds when the
	// chain completes cleanly is the return value of Serve.
	Body any

	ctx    context.Context
	ns     Namespace
	values map[string]any
}

func newContext(ctx context.Context, ns Namespace, event []byte, platform any) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Event:    event,
		Platform: platform,
		ctx:      ctx,
		ns:       ns,
	}
}

// Context returns the stdlib context for this invocation. Middleware and
// handlers should pass it to any blocking work they perform.
func (c *Context) Context() context.Context { return c.ctx }

// Namespace returns the root handler namespace the invocation resolves
// against.
func (c *Context) Namespace() Namespace { return c.ns }

// Set stores a request-scoped value for later middleware and the handler.
func (c *Context) Set(key string, v any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = v
}

// Get returns a request-scoped value stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Field reads a field from the raw event by gjson path, e.g.
// c.Field("queryStringParameters.id").
func (c *Context) Field(path string) gjson.Result {
	return gjson.GetBytes(c.Event, path)
}
