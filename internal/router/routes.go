// Package router evaluates navigation against the declarative route table
// and the session state, the client-side counterpart of the backend's
// per-request authorization.
package router

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutesYAML []byte

// Meta is the metadata attached to a route definition.
type Meta struct {
	Title        string   `yaml:"title"`
	RequiresAuth bool     `yaml:"requiresAuth"`
	Roles        []string `yaml:"roles"`
	Layout       string   `yaml:"layout"`
	Breadcrumb   string   `yaml:"breadcrumb"`
}

// Route is one entry of the route table. Paths may contain ":param"
// placeholder segments.
type Route struct {
	Name     string  `yaml:"name"`
	Path     string  `yaml:"path"`
	Meta     `yaml:",inline"`
	Children []Route `yaml:"children"`

	parent *Route
}

// RequiresAuth reports whether the route or any ancestor declares the
// requiresAuth flag.
func (r *Route) RequiresAuth() bool {
	for route := r; route != nil; route = route.parent {
		if route.Meta.RequiresAuth {
			return true
		}
	}
	return false
}

// AllowedRoles returns the nearest roles allow-list on the route or its
// ancestors, or nil when unrestricted.
func (r *Route) AllowedRoles() []string {
	for route := r; route != nil; route = route.parent {
		if len(route.Meta.Roles) > 0 {
			return route.Meta.Roles
		}
	}
	return nil
}

// Table is the parsed route table.
type Table struct {
	routes []Route
	flat   []*Route
	byName map[string]*Route
}

// ParseTable parses a YAML route table.
func ParseTable(data []byte) (*Table, error) {
	var routes []Route
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}

	t := &Table{routes: routes, byName: make(map[string]*Route)}
	for i := range t.routes {
		t.index(&t.routes[i], nil)
	}
	return t, nil
}

// DefaultTable parses the embedded route table. The embedded table is part
// of the build, so a parse failure is a programming error.
func DefaultTable() *Table {
	t, err := ParseTable(defaultRoutesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) index(route *Route, parent *Route) {
	route.parent = parent
	t.flat = append(t.flat, route)
	if route.Name != "" {
		t.byName[route.Name] = route
	}
	for i := range route.Children {
		t.index(&route.Children[i], route)
	}
}

// ByName looks a route up by name.
func (t *Table) ByName(name string) *Route {
	return t.byName[name]
}

// Routes returns every route in definition order.
func (t *Table) Routes() []*Route {
	return t.flat
}

// Match finds the route whose path matches the given concrete path.
// Placeholder segments match any single segment; more specific (literal)
// matches win over placeholder ones.
func (t *Table) Match(path string) *Route {
	var best *Route
	bestScore := -1
	for _, route := range t.flat {
		score, ok := matchScore(route.Path, path)
		if ok && score > bestScore {
			best = route
			bestScore = score
		}
	}
	return best
}

// matchScore matches a pattern against a path and scores it by the number of
// literal segments, so "/app/organizations" beats "/app/:section".
func matchScore(pattern, path string) (int, bool) {
	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patSegs) != len(pathSegs) {
		return 0, false
	}

	score := 0
	for i, seg := range patSegs {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != pathSegs[i] {
			return 0, false
		}
		score++
	}
	return score, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
