package relay

import (
	"strings"

	"github.com/tidwall/gjson"
)

// transportName is the reported name of the built-in first chain entry.
const transportName = "transport"

// transport is the built-in transport-decoding middleware. It is always
// the first chain entry, runs unconditionally, and populates the
// request-level fields consumed by matchers and handlers.
func transport(c *Context, next Next) error {
	c.Action, c.Method, c.Path = decodeEvent(c.Event)
	return next()
}

// decodeEvent extracts the action, method, and path from a raw JSON
// event. An explicit "action" field wins; otherwise the action is derived
// from the request path. Both API Gateway payload shapes are understood
// (v1 "path"/"httpMethod", v2 "rawPath"/"requestContext.http.method").
//
// Non-JSON input yields empty fields; resolution then fails with the
// usual usage errors rather than a decode error.
func decodeEvent(event []byte) (action, method, path string) {
	if !gjson.ValidBytes(event) {
		return "", "", ""
	}
	path = gjson.GetBytes(event, "path").String()
	if path == "" {
		path = gjson.GetBytes(event, "rawPath").String()
	}
	method = gjson.GetBytes(event, "httpMethod").String()
	if method == "" {
		method = gjson.GetBytes(event, "requestContext.http.method").String()
	}
	action = gjson.GetBytes(event, "action").String()
	if action == "" {
		action = strings.Trim(path, "/")
	}
	return action, method, path
}

// decodeAction is the resolver's view of the event: the same extraction
// the transport entry performs, without touching the context. The
// dispatcher uses it to select a chain before execution starts.
func decodeAction(event []byte) string {
	action, _, _ := decodeEvent(event)
	return action
}
