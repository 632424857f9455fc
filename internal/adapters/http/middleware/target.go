package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyTargetPath is the gin context key for the parsed request path.
	ContextKeyTargetPath = "target_path"

	// InvalidTargetPath stands in for the path of a request whose target
	// could not be parsed.
	InvalidTargetPath = "INVALID_URL"
)

// ErrRequestParse is the sentinel for request targets that cannot be parsed.
var ErrRequestParse = errors.New("request target parse error")

// baseURL is the fixed authority request targets are resolved against.
// The client's Host header never takes part.
var baseURL = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

// TargetError reports a request target that could not be parsed.
type TargetError struct {
	Target string
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("parsing request target %q: %v", e.Target, e.Err)
}

// Unwrap lets errors.Is match both ErrRequestParse and the parser's error.
func (e *TargetError) Unwrap() []error {
	return []error{ErrRequestParse, e.Err}
}

// ParseTarget resolves a raw request target against the fixed base URL.
// A target with an authority but no path ("//teapot") resolves to "/".
func ParseTarget(target string) (*url.URL, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, &TargetError{Target: target, Err: err}
	}

	u := baseURL.ResolveReference(ref)
	if u.Path == "" {
		u.Path = "/"
	}

	return u, nil
}

// RequestTarget returns middleware that parses the raw request target.
// On success the resolved path, still percent-encoded as the client sent
// it, is stored under ContextKeyTargetPath. On failure the request is
// answered with 400 Bad Request and the chain stops.
//
// On a real listener net/http rejects most unparsable targets with its own
// 400 before the engine runs, so those responses carry neither the
// ResponseHeaders set nor a request log line. The failure branch here
// covers targets that reach the engine, such as ones built in-process.
func RequestTarget() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Request.RequestURI
		if raw == "" {
			raw = c.Request.URL.RequestURI()
		}

		target, err := ParseTarget(raw)
		if err != nil {
			c.Set(ContextKeyTargetPath, InvalidTargetPath)
			_ = c.Error(err)
			c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
			c.Abort()
			return
		}

		c.Set(ContextKeyTargetPath, target.EscapedPath())
		c.Next()
	}
}

// TargetPath returns the parsed request path, falling back to the URL
// path when RequestTarget has not run.
func TargetPath(c *gin.Context) string {
	if p := c.GetString(ContextKeyTargetPath); p != "" {
		return p
	}
	return c.Request.URL.Path
}
