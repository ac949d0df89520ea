package relay

import "strings"

// Handler is a resolvable leaf in the namespace tree. The returned value,
// when non-nil, becomes the invocation body.
//
// Methods on a user struct satisfy Handler through method values, which
// keeps namespace-level shared state (clients, helpers) on the receiver:
//
//	type users struct{ store Store }
//
//	func (u *users) Create(c *relay.Context) (any, error) { ... }
//
//	ns := relay.Namespace{"user": relay.Namespace{"create": relay.HandlerFunc(u.Create)}}
type Handler interface {
	Handle(c *Context) (any, error)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(c *Context) (any, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(c *Context) (any, error) { return f(c) }

// Namespace is the tree of handlers addressed by action path segments.
// Values are nested Namespaces, Handlers, HandlerFuncs, or plain
// func(*Context) (any, error) values.
type Namespace map[string]any

// errorHandlerName tags the synthetic handler produced when resolution
// fails. The dispatcher keys the error-only chain off this name.
const errorHandlerName = "error"

// errorEntry wraps a usage error as the innermost chain entry. The error
// surfaces when the entry executes, so it flows through the same catch
// boundary and normalization as any runtime failure.
func errorEntry(err error) entry {
	return entry{
		name: errorHandlerName,
		fn: func(c *Context, next Next) error {
			return err
		},
	}
}

// resolve maps an action string to the innermost chain entry: either a
// wrapper around the resolved handler, or a synthetic error handler
// carrying one of the three usage errors.
//
// The three failures are deliberate, independently worded policy; callers
// pattern-match on the exact messages.
func resolve(ns Namespace, action string) entry {
	segs := splitAction(action)
	switch len(segs) {
	case 0:
		return errorEntry(NewError(nil, "action is required"))
	case 1:
		return errorEntry(NewError(nil, `action must contain "/"`))
	}

	method := segs[len(segs)-1]
	nsPath := segs[:len(segs)-1]

	node := ns
	for _, seg := range nsPath {
		child, ok := node[seg]
		if ok {
			node, ok = child.(Namespace)
		}
		if !ok {
			return errorEntry(NewError(nil, "controller/"+strings.Join(nsPath, "/")+" not found"))
		}
	}

	h := toHandler(node[method])
	if h == nil {
		return errorEntry(NewError(nil, "controller/"+strings.Join(nsPath, ".")+"."+method+" is not a function"))
	}

	return entry{
		name: method,
		fn: func(c *Context, next Next) error {
			v, err := h.Handle(c)
			if err != nil {
				return err
			}
			if v != nil {
				c.Body = v
			}
			return nil
		},
	}
}

func toHandler(v any) Handler {
	switch h := v.(type) {
	case Handler:
		return h
	case HandlerFunc:
		return h
	case func(*Context) (any, error):
		return HandlerFunc(h)
	default:
		return nil
	}
}

// splitAction splits on "/" and discards empty segments, so "/user/get"
// and "user/get" resolve identically.
func splitAction(action string) []string {
	var segs []string
	for _, seg := range strings.Split(action, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
