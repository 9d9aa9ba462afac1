package router

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// AuthState is the slice of the session store the guard consults.
type AuthState interface {
	IsAuthenticated() bool
	HasAnyRole(roles ...string) bool
}

// Decision is the outcome of evaluating one navigation.
type Decision struct {
	Allowed       bool
	Route         *Route
	RedirectPath  string
	RedirectQuery url.Values
}

// Router evaluates navigations against the route table and session state.
// On every navigation, independent of the guard verdict, it emits a
// diagnostic log entry and pushes the route title to the title sink.
type Router struct {
	table     *Table
	auth      AuthState
	logger    zerolog.Logger
	titleSink func(string)
	appName   string

	current *Route
}

// New creates a Router. titleSink receives the derived window/terminal title
// on each navigation and may be nil.
func New(table *Table, auth AuthState, appName string, titleSink func(string), logger zerolog.Logger) *Router {
	return &Router{
		table:     table,
		auth:      auth,
		logger:    logger,
		titleSink: titleSink,
		appName:   appName,
	}
}

// Table exposes the route table, for listing and lookups.
func (r *Router) Table() *Table {
	return r.table
}

// Current returns the route of the last completed navigation, or nil.
func (r *Router) Current() *Route {
	return r.current
}

// Navigate evaluates a navigation to path.
//
// Guard order: requiresAuth (own or inherited) without an authenticated
// session redirects to sign-in carrying the intended path in the redirect
// query; the sign-in route while authenticated redirects to the dashboard;
// a roles allow-list the current identity is not in redirects to the
// dashboard. Anything else is allowed.
func (r *Router) Navigate(path string) Decision {
	route := r.table.Match(strings.TrimSuffix(path, "/"))
	if route == nil {
		route = r.table.Match(path)
	}

	decision := r.evaluate(path, route)

	r.logger.Debug().
		Str("path", path).
		Bool("allowed", decision.Allowed).
		Str("redirect", decision.RedirectPath).
		Msg("Navigation")
	r.pushTitle(route)

	if decision.Allowed {
		r.current = route
	}
	return decision
}

func (r *Router) evaluate(path string, route *Route) Decision {
	if route == nil {
		// Unknown paths carry no metadata to guard on.
		return Decision{Allowed: true}
	}

	authenticated := r.auth.IsAuthenticated()

	if route.RequiresAuth() && !authenticated {
		return Decision{
			Route:         route,
			RedirectPath:  r.namedPath("login", SignInFallbackPath),
			RedirectQuery: url.Values{"redirect": {path}},
		}
	}

	if route.Name == "login" && authenticated {
		return Decision{Route: route, RedirectPath: r.namedPath("dashboard", DashboardFallbackPath)}
	}

	if roles := route.AllowedRoles(); len(roles) > 0 && !r.auth.HasAnyRole(roles...) {
		// Insufficient privilege is a redirect, not an error state.
		return Decision{Route: route, RedirectPath: r.namedPath("dashboard", DashboardFallbackPath)}
	}

	return Decision{Allowed: true, Route: route}
}

// Fallback paths used when the table does not define the named routes.
const (
	SignInFallbackPath    = "/auth/signin"
	DashboardFallbackPath = "/app"
)

func (r *Router) namedPath(name, fallback string) string {
	if route := r.table.ByName(name); route != nil {
		return route.Path
	}
	return fallback
}

// ForceNavigate jumps to path without guard evaluation. The gateway uses it
// when a session becomes irrecoverable mid-request.
func (r *Router) ForceNavigate(path string) {
	route := r.table.Match(path)
	r.logger.Debug().Str("path", path).Msg("Forced navigation")
	r.pushTitle(route)
	r.current = route
}

func (r *Router) pushTitle(route *Route) {
	if r.titleSink == nil {
		return
	}
	title := r.appName
	if route != nil && route.Title != "" {
		title = route.Title + " | " + r.appName
	}
	r.titleSink(title)
}
