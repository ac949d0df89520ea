package relay_test

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bjaus/relay"
)

func Example() {
	ns := relay.Namespace{
		"greet": relay.Namespace{
			"hello": relay.HandlerFunc(func(c *relay.Context) (any, error) {
				return "hello, " + c.Field("name").String(), nil
			}),
		},
	}

	r := relay.New(ns)

	resp := r.Serve(context.Background(), []byte(`{"action": "greet/hello", "name": "world"}`), nil)
	fmt.Println(resp)

	// Output:
	// hello, world
}

func Example_middleware() {
	ns := relay.Namespace{
		"user": relay.Namespace{
			"get": relay.HandlerFunc(func(c *relay.Context) (any, error) {
				return "body", nil
			}),
		},
	}

	r := relay.New(ns)

	// Registered first, so it wraps everything and sees the final body
	// on the way out.
	r.Register(func(c *relay.Context, next relay.Next) error {
		if err := next(); err != nil {
			return err
		}
		c.Body = fmt.Sprintf("wrapped(%v)", c.Body)
		return nil
	})

	// Gated middleware: only runs for POST requests.
	r.Register(func(c *relay.Context, next relay.Next) error {
		fmt.Println("audit")
		return next()
	}, relay.MatchOptions{Method: "POST"})

	resp := r.Serve(context.Background(), []byte(`{"action": "user/get", "httpMethod": "GET"}`), nil)
	fmt.Println(resp)

	// Output:
	// wrapped(body)
}

func Example_failure() {
	ns := relay.Namespace{
		"user": relay.Namespace{
			"get": relay.HandlerFunc(func(c *relay.Context) (any, error) {
				return nil, relay.Errorf(404, "user not found")
			}),
		},
	}

	r := relay.New(ns)

	resp := r.Serve(context.Background(), []byte(`{"action": "user/get"}`), nil)
	raw, _ := json.Marshal(resp)
	fmt.Println(string(raw))

	// Output:
	// {"code":404,"message":"user not found"}
}
