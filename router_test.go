package relay

import (
	"context"
	"errors"
	"testing"
)

func testNamespace() Namespace {
	return Namespace{
		"user": Namespace{
			"get": HandlerFunc(func(c *Context) (any, error) {
				return "user-body", nil
			}),
			"fail": HandlerFunc(func(c *Context) (any, error) {
				return nil, Errorf(42, "boom")
			}),
		},
		"ns": Namespace{
			"sub": Namespace{
				"doThing": "not callable",
			},
		},
	}
}

func event(action string) []byte {
	return []byte(`{"action": "` + action + `"}`)
}

func TestRouter_Serve(t *testing.T) {
	t.Run("returns handler value", func(t *testing.T) {
		r := New(testNamespace())
		resp := r.Serve(context.Background(), event("user/get"), nil)
		if resp != "user-body" {
			t.Errorf("resp = %v, want %q", resp, "user-body")
		}
	})

	t.Run("nil handler result leaves body untouched", func(t *testing.T) {
		ns := Namespace{
			"user": Namespace{
				"touch": HandlerFunc(func(c *Context) (any, error) {
					return nil, nil
				}),
			},
		}
		r := New(ns)
		r.Register(func(c *Context, next Next) error {
			c.Body = "from-middleware"
			return next()
		})
		resp := r.Serve(context.Background(), event("user/touch"), nil)
		if resp != "from-middleware" {
			t.Errorf("resp = %v, want %q", resp, "from-middleware")
		}
	})

	t.Run("missing action", func(t *testing.T) {
		r := New(testNamespace())
		var calls int
		r.Register(func(c *Context, next Next) error {
			calls++
			return next()
		})

		resp := r.Serve(context.Background(), []byte(`{}`), nil)

		f, ok := resp.(*Failure)
		if !ok {
			t.Fatalf("resp = %T, want *Failure", resp)
		}
		if f.Code != DefaultFailureCode {
			t.Errorf("code = %v, want %v", f.Code, DefaultFailureCode)
		}
		if f.Message != "action is required" {
			t.Errorf("message = %q, want %q", f.Message, "action is required")
		}
		if calls != 0 {
			t.Errorf("user middleware ran %d times on the error chain", calls)
		}
	})

	t.Run("single segment action", func(t *testing.T) {
		r := New(testNamespace())
		var calls int
		r.Register(func(c *Context, next Next) error {
			calls++
			return next()
		})

		resp := r.Serve(context.Background(), event("ping"), nil)

		f, ok := resp.(*Failure)
		if !ok {
			t.Fatalf("resp = %T, want *Failure", resp)
		}
		if f.Message != `action must contain "/"` {
			t.Errorf("message = %q, want %q", f.Message, `action must contain "/"`)
		}
		if calls != 0 {
			t.Errorf("user middleware ran %d times on the error chain", calls)
		}
	})

	t.Run("nil event without environ", func(t *testing.T) {
		r := New(testNamespace())
		resp := r.Serve(context.Background(), nil, nil)
		f, ok := resp.(*Failure)
		if !ok {
			t.Fatalf("resp = %T, want *Failure", resp)
		}
		if f.Message != "action is required" {
			t.Errorf("message = %q, want %q", f.Message, "action is required")
		}
	})

	t.Run("namespace not found", func(t *testing.T) {
		r := New(testNamespace())
		resp := r.Serve(context.Background(), event("ns/missing/doThing"), nil)
		f := resp.(*Failure)
		if f.Message != "controller/ns/missing not found" {
			t.Errorf("message = %q, want %q", f.Message, "controller/ns/missing not found")
		}
	})

	t.Run("method not callable", func(t *testing.T) {
		r := New(testNamespace())
		resp := r.Serve(context.Background(), event("ns/sub/doThing"), nil)
		f := resp.(*Failure)
		if f.Message != "controller/ns.sub.doThing is not a function" {
			t.Errorf("message = %q, want %q", f.Message, "controller/ns.sub.doThing is not a function")
		}
	})

	t.Run("coded failure without debug", func(t *testing.T) {
		r := New(testNamespace())
		resp := r.Serve(context.Background(), event("user/fail"), nil)
		f := resp.(*Failure)
		if f.Code != 42 {
			t.Errorf("code = %v, want 42", f.Code)
		}
		if f.Message != "boom" {
			t.Errorf("message = %q, want %q", f.Message, "boom")
		}
		if f.Stack != nil {
			t.Error("stack should be absent when debug is off")
		}
	})

	t.Run("coded failure with debug", func(t *testing.T) {
		r := New(testNamespace(), WithDebug(true))
		resp := r.Serve(context.Background(), event("user/fail"), nil)
		f := resp.(*Failure)
		if f.Stack == nil {
			t.Fatal("stack should be present when debug is on")
		}
		if *f.Stack == "" {
			t.Error("stack should carry the captured trace")
		}
	})

	t.Run("plain error gets default code", func(t *testing.T) {
		ns := Namespace{
			"job": Namespace{
				"run": HandlerFunc(func(c *Context) (any, error) {
					return nil, errors.New("plain failure")
				}),
			},
		}
		r := New(ns)
		resp := r.Serve(context.Background(), event("job/run"), nil)
		f := resp.(*Failure)
		if f.Code != DefaultFailureCode {
			t.Errorf("code = %v, want %v", f.Code, DefaultFailureCode)
		}
		if f.Message != "plain failure" {
			t.Errorf("message = %q, want %q", f.Message, "plain failure")
		}
	})

	t.Run("recovers handler panic", func(t *testing.T) {
		ns := Namespace{
			"job": Namespace{
				"panic": HandlerFunc(func(c *Context) (any, error) {
					panic("unexpected state")
				}),
			},
		}
		r := New(ns)
		resp := r.Serve(context.Background(), event("job/panic"), nil)
		f, ok := resp.(*Failure)
		if !ok {
			t.Fatalf("resp = %T, want *Failure", resp)
		}
		if f.Message != "unexpected state" {
			t.Errorf("message = %q, want %q", f.Message, "unexpected state")
		}
	})

	t.Run("middleware error aborts chain", func(t *testing.T) {
		var handled bool
		ns := Namespace{
			"user": Namespace{
				"get": HandlerFunc(func(c *Context) (any, error) {
					handled = true
					return "ok", nil
				}),
			},
		}
		r := New(ns)
		r.Register(func(c *Context, next Next) error {
			return errors.New("denied")
		})

		resp := r.Serve(context.Background(), event("user/get"), nil)

		if handled {
			t.Error("handler ran after middleware error")
		}
		f := resp.(*Failure)
		if f.Message != "denied" {
			t.Errorf("message = %q, want %q", f.Message, "denied")
		}
	})

	t.Run("repeated serve is idempotent", func(t *testing.T) {
		r := New(testNamespace())
		first := r.Serve(context.Background(), event("user/get"), nil)
		second := r.Serve(context.Background(), event("user/get"), nil)
		if first != second {
			t.Errorf("first = %v, second = %v", first, second)
		}
	})
}

type staticEnviron struct {
	event    []byte
	platform any
}

func (e *staticEnviron) Event() []byte { return e.event }
func (e *staticEnviron) Platform() any { return e.platform }

func TestRouter_Environ(t *testing.T) {
	t.Run("falls back to ambient inputs", func(t *testing.T) {
		env := &staticEnviron{event: event("user/get"), platform: "ambient"}
		r := New(testNamespace(), WithEnviron(env))

		resp := r.Serve(context.Background(), nil, nil)

		if resp != "user-body" {
			t.Errorf("resp = %v, want %q", resp, "user-body")
		}
	})

	t.Run("supplied inputs win over ambient", func(t *testing.T) {
		env := &staticEnviron{event: event("user/fail")}
		r := New(testNamespace(), WithEnviron(env))

		resp := r.Serve(context.Background(), event("user/get"), nil)

		if resp != "user-body" {
			t.Errorf("resp = %v, want %q", resp, "user-body")
		}
	})

	t.Run("platform value reaches the context", func(t *testing.T) {
		var seen any
		ns := Namespace{
			"sys": Namespace{
				"inspect": HandlerFunc(func(c *Context) (any, error) {
					seen = c.Platform
					return nil, nil
				}),
			},
		}
		env := &staticEnviron{platform: "ambient"}
		r := New(ns, WithEnviron(env))

		r.Serve(context.Background(), event("sys/inspect"), nil)

		if seen != "ambient" {
			t.Errorf("platform = %v, want %q", seen, "ambient")
		}
	})
}

func TestRouter_Register(t *testing.T) {
	t.Run("panics on nil middleware", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		New(testNamespace()).Register(nil)
	})

	t.Run("is chainable and appends in order", func(t *testing.T) {
		r := New(testNamespace()).
			Register(func(c *Context, next Next) error { return next() }, MatchOptions{Name: "first"}).
			Register(func(c *Context, next Next) error { return next() }, MatchOptions{Name: "second"})

		if len(r.entries) != 3 {
			t.Fatalf("entries = %d, want 3", len(r.entries))
		}
		if r.entries[0].name != transportName {
			t.Errorf("entries[0] = %q, want %q", r.entries[0].name, transportName)
		}
		if r.entries[1].name != "first" || r.entries[2].name != "second" {
			t.Errorf("entry order = %q, %q", r.entries[1].name, r.entries[2].name)
		}
	})
}
