package relay

import (
	"strings"

	"github.com/tidwall/match"
)

// Matcher decides whether a middleware applies to the current invocation.
// Matchers are cheap predicates evaluated once per middleware per
// invocation, after the transport entry has populated the context.
type Matcher func(c *Context) bool

// MatchOptions are the declarative criteria attached to a middleware at
// registration. Immutable after Register.
type MatchOptions struct {
	// Name overrides the middleware's reported name.
	Name string

	// Method restricts the middleware to invocations with this HTTP-style
	// method. Comparison is case-insensitive. Empty matches any method.
	Method string

	// Path restricts the middleware to invocations whose request path
	// matches this glob pattern ("/user/*", "/admin/**"). Empty matches
	// any path.
	Path string
}

func (o MatchOptions) empty() bool {
	return o.Method == "" && o.Path == ""
}

// MatcherFactory turns MatchOptions into a Matcher. The default factory
// combines MethodIs and PathMatches; override it with WithMatcherFactory
// to plug in custom matching.
type MatcherFactory func(o MatchOptions) Matcher

// defaultMatcher is the built-in factory. Empty options yield nil, which
// the chain treats as "always run".
func defaultMatcher(o MatchOptions) Matcher {
	var ms []Matcher
	if o.Method != "" {
		ms = append(ms, MethodIs(o.Method))
	}
	if o.Path != "" {
		ms = append(ms, PathMatches(o.Path))
	}
	switch len(ms) {
	case 0:
		return nil
	case 1:
		return ms[0]
	default:
		return MatchAll(ms...)
	}
}

// MethodIs returns a Matcher that matches when the invocation method
// equals the given method, ignoring case.
func MethodIs(method string) Matcher {
	return func(c *Context) bool {
		return strings.EqualFold(c.Method, method)
	}
}

// PathMatches returns a Matcher that matches the invocation path against
// a glob pattern.
func PathMatches(pattern string) Matcher {
	return func(c *Context) bool {
		return match.Match(c.Path, pattern)
	}
}

// MatchAll returns a Matcher that matches when all matchers match.
func MatchAll(ms ...Matcher) Matcher {
	return func(c *Context) bool {
		for _, m := range ms {
			if !m(c) {
				return false
			}
		}
		return true
	}
}

// MatchAny returns a Matcher that matches when any matcher matches.
func MatchAny(ms ...Matcher) Matcher {
	return func(c *Context) bool {
		for _, m := range ms {
			if m(c) {
				return true
			}
		}
		return false
	}
}
