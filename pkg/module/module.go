// Package module mounts a self-contained handler tree, with its own
// middleware, under a single-segment path prefix of the service mux.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/assessor/pkg/middleware"
)

// Module serves every path under its prefix. The inner handler sees paths
// with the prefix and any trailing slash removed.
type Module struct {
	prefix  string
	handler http.Handler
}

// New wraps h with mws. The prefix must look like "/api".
func New(prefix string, h http.Handler, mws ...middleware.Middleware) (*Module, error) {
	if !strings.HasPrefix(prefix, "/") || len(prefix) < 2 || strings.Count(prefix, "/") != 1 {
		return nil, fmt.Errorf("module prefix must be a single path segment like /api: %q", prefix)
	}
	return &Module{prefix: prefix, handler: middleware.Chain(h, mws...)}, nil
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Mount registers the module on mux for its prefix and everything below it.
func (m *Module) Mount(mux *http.ServeMux) {
	mux.Handle(m.prefix, m)
	mux.Handle(m.prefix+"/", m)
}

func (m *Module) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		path = "/"
	}

	inner := new(http.Request)
	*inner = *r
	inner.URL = new(url.URL)
	*inner.URL = *r.URL
	inner.URL.Path = path
	inner.URL.RawPath = ""

	m.handler.ServeHTTP(w, inner)
}
