package relay

import (
	"reflect"
	"runtime"
	"strings"
)

// Next proceeds to the next entry in the chain. A middleware that never
// calls it short-circuits everything registered after it, including the
// handler.
type Next func() error

// Middleware is a composable unit of cross-cutting behavior. Work done
// before calling next runs on the way in (registration order); work done
// after runs on the way out (reverse registration order).
//
// Example:
//
//	r.Register(func(c *relay.Context, next relay.Next) error {
//	    start := time.Now()
//	    err := next()
//	    log.Printf("%s took %v", c.Action, time.Since(start))
//	    return err
//	})
type Middleware func(c *Context, next Next) error

// entry is one slot in the ordered chain: the middleware itself, its
// reported name, and its match predicate (nil means always run).
type entry struct {
	fn    Middleware
	name  string
	match Matcher
}

// newEntry builds an entry, deriving the reported name: explicit options
// name first, then the function's declared name, then the runtime's
// anonymous identifier.
func newEntry(fn Middleware, o MatchOptions, matcherFor MatcherFactory) entry {
	e := entry{fn: fn, name: o.Name}
	if e.name == "" {
		e.name = funcName(fn)
	}
	if !o.empty() && matcherFor != nil {
		e.match = matcherFor(o)
	}
	return e
}

// funcName reports the short declared name of fn, e.g. "traceRequests" for
// a named function, "func1" for a closure, "Handle" for a method value.
func funcName(fn Middleware) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "anonymous"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// compose nests the given entries around the handler entry in onion order:
// earlier entries wrap later ones, and the handler sits innermost. Each
// wrapper evaluates its match predicate once per invocation; a non-match
// skips the middleware body entirely and defers to the next entry.
func compose(c *Context, entries []entry, handler entry) Next {
	next := Next(func() error {
		return handler.fn(c, func() error { return nil })
	})
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		inner := next
		next = func() error {
			if e.match != nil && !e.match(c) {
				return inner()
			}
			return e.fn(c, inner)
		}
	}
	return next
}
