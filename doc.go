// Package relay is a request-dispatch layer for function-as-a-service
// runtimes.
//
// Given an incoming invocation (a raw event plus the host platform's
// context value), relay locates a handler identified by a slash-delimited
// action path, runs a chain of match-gated middleware around it, and
// normalizes the result or failure into a single response value.
//
// # Quick Start
//
// Build a handler namespace, create a router, register middleware, and
// dispatch:
//
//	ns := relay.Namespace{
//	    "user": relay.Namespace{
//	        "get": relay.HandlerFunc(func(c *relay.Context) (any, error) {
//	            return map[string]string{"id": c.Field("queryStringParameters.id").String()}, nil
//	        }),
//	    },
//	}
//
//	r := relay.New(ns)
//	r.Register(authenticate, relay.MatchOptions{Path: "/admin/*"})
//
//	resp := r.Serve(ctx, event, platformCtx)
//
// # Actions
//
// An action is a string of the form "segment/segment/.../method": the
// last segment names the method, the preceding segments walk the
// namespace tree. The built-in transport entry extracts the action from
// the event's "action" field, or derives it from the request path.
//
// Resolution failures are policy, with exact messages callers can match
// on:
//
//	action is required
//	action must contain "/"
//	controller/ns/sub not found
//	controller/ns.sub.doThing is not a function
//
// # Middleware
//
// Middleware compose in onion order: entries registered earlier wrap
// entries registered later. Work before next() runs outer-to-inner, work
// after next() runs inner-to-outer, so a response post-processor
// registered first sees the final body last:
//
//	r.Register(func(c *relay.Context, next relay.Next) error {
//	    if err := next(); err != nil {
//	        return err
//	    }
//	    c.Body = wrap(c.Body)
//	    return nil
//	})
//
// MatchOptions gate a middleware declaratively by method and glob path.
// A non-matching middleware is skipped entirely; its body never runs for
// that invocation.
//
// # Responses
//
// Serve always returns a value and never panics. A clean completion
// yields the context body verbatim. Any failure, returned or panicked,
// anywhere in the chain, is caught once at the dispatch boundary and
// normalized to a *Failure:
//
//	{ "code": 42, "message": "boom" }
//
// The code comes from a *relay.Error's Code field, else
// DefaultFailureCode. Stack traces appear only when debug mode is on.
//
// Malformed or unroutable requests run an error-only chain: the transport
// entry plus a synthetic error handler. User middleware is deliberately
// bypassed so unroutable requests never trigger middleware side effects.
//
// # Concurrency
//
// A Router is immutable after configuration and safe for concurrent
// Serve calls. Each invocation owns a fresh Context; the only shared
// state is the read-only configuration and entry list.
package relay
