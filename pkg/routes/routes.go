// Package routes describes endpoint tables that handlers hand to a ServeMux.
package routes

import "net/http"

// Route binds a method and a path suffix to a handler. Pattern is appended
// to the enclosing group prefixes and may use ServeMux wildcards.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group nests routes under Prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	walk(groups, "", func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, h)
	})
}

// Patterns returns the ServeMux pattern of every route in groups, in
// registration order.
func Patterns(groups ...Group) []string {
	var out []string
	walk(groups, "", func(pattern string, _ http.HandlerFunc) {
		out = append(out, pattern)
	})
	return out
}

func walk(groups []Group, prefix string, visit func(string, http.HandlerFunc)) {
	for _, g := range groups {
		base := prefix + g.Prefix
		for _, r := range g.Routes {
			visit(r.Method+" "+base+r.Pattern, r.Handler)
		}
		walk(g.Children, base, visit)
	}
}
