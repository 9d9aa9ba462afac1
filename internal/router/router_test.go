package router

import (
	"testing"

	"github.com/rs/zerolog"
)

type fakeAuth struct {
	authenticated bool
	roles         []string
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }

func (f *fakeAuth) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range f.roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

func newTestRouter(t *testing.T, auth *fakeAuth, titleSink func(string)) *Router {
	t.Helper()
	return New(DefaultTable(), auth, "KuraKampus", titleSink, zerolog.Nop())
}

func TestNavigateGuestToProtectedRouteRedirectsToSignIn(t *testing.T) {
	r := newTestRouter(t, &fakeAuth{}, nil)

	decision := r.Navigate("/app/organizations")
	if decision.Allowed {
		t.Fatal("unauthenticated navigation to a protected route must not be allowed")
	}
	if decision.RedirectPath != "/auth/signin" {
		t.Fatalf("RedirectPath = %q", decision.RedirectPath)
	}
	if got := decision.RedirectQuery.Get("redirect"); got != "/app/organizations" {
		t.Fatalf("redirect query = %q, want the intended path", got)
	}
	if r.Current() != nil {
		t.Fatal("a denied navigation must not update the current route")
	}
}

func TestNavigateAuthenticatedAwayFromSignIn(t *testing.T) {
	r := newTestRouter(t, &fakeAuth{authenticated: true, roles: []string{"user"}}, nil)

	decision := r.Navigate("/auth/signin")
	if decision.Allowed {
		t.Fatal("sign-in page should bounce an authenticated session")
	}
	if decision.RedirectPath != "/app" {
		t.Fatalf("RedirectPath = %q, want dashboard", decision.RedirectPath)
	}
}

func TestNavigateRoleRestrictedRoute(t *testing.T) {
	member := newTestRouter(t, &fakeAuth{authenticated: true, roles: []string{"user"}}, nil)
	decision := member.Navigate("/app/users")
	if decision.Allowed {
		t.Fatal("non-admin must not reach user management")
	}
	if decision.RedirectPath != "/app" {
		t.Fatalf("RedirectPath = %q, want dashboard (not an error)", decision.RedirectPath)
	}

	admin := newTestRouter(t, &fakeAuth{authenticated: true, roles: []string{"admin"}}, nil)
	if d := admin.Navigate("/app/users"); !d.Allowed {
		t.Fatal("admin should reach user management")
	}
}

func TestNavigateParamRoute(t *testing.T) {
	r := newTestRouter(t, &fakeAuth{authenticated: true, roles: []string{"user"}}, nil)

	decision := r.Navigate("/app/organizations/01HZX4K7Q9")
	if !decision.Allowed {
		t.Fatal("authenticated navigation to a detail route should be allowed")
	}
	if decision.Route == nil || decision.Route.Name != "organization-detail" {
		t.Fatalf("matched route = %+v", decision.Route)
	}
}

func TestNavigateUnknownPathIsAllowed(t *testing.T) {
	r := newTestRouter(t, &fakeAuth{}, nil)

	decision := r.Navigate("/nowhere/special")
	if !decision.Allowed {
		t.Fatal("unknown paths carry no guards and must pass through")
	}
	if decision.Route != nil {
		t.Fatalf("unknown path matched %q", decision.Route.Name)
	}
}

func TestNavigatePushesTitleEvenWhenDenied(t *testing.T) {
	var titles []string
	r := newTestRouter(t, &fakeAuth{}, func(title string) {
		titles = append(titles, title)
	})

	r.Navigate("/app/organizations")

	if len(titles) != 1 {
		t.Fatalf("title sink called %d times, want 1", len(titles))
	}
	if titles[0] != "Database Organisasi | KuraKampus" {
		t.Fatalf("title = %q", titles[0])
	}
}

func TestLiteralRouteBeatsParamRoute(t *testing.T) {
	table := DefaultTable()

	route := table.Match("/app/organizations")
	if route == nil || route.Name != "organizations" {
		t.Fatalf("matched %+v, want the literal organizations route", route)
	}
}

func TestRequiresAuthInheritsFromParent(t *testing.T) {
	table := DefaultTable()

	detail := table.ByName("organization-detail")
	if detail == nil {
		t.Fatal("organization-detail route missing from table")
	}
	if !detail.RequiresAuth() {
		t.Fatal("child of an auth-guarded group must require auth")
	}

	home := table.ByName("home")
	if home == nil {
		t.Fatal("home route missing from table")
	}
	if home.RequiresAuth() {
		t.Fatal("home must be public")
	}
}

func TestForceNavigateSkipsGuards(t *testing.T) {
	r := newTestRouter(t, &fakeAuth{}, nil)

	r.ForceNavigate("/auth/signin")
	if r.Current() == nil || r.Current().Name != "login" {
		t.Fatalf("Current() = %+v", r.Current())
	}
}
