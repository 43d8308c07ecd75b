package access

// Route is a top-level frontend destination. The backend returns these paths
// to the client after login so every surface redirects from the same table.
type Route string

const (
	RouteLogin          Route = "/login"
	RouteSuperAdmin     Route = "/super-admin"
	RouteAdmin          Route = "/admin-dashboard"
	RouteResident       Route = "/resident"
	RouteGuard          Route = "/guard"
	RouteStudent        Route = "/student"
	RouteRRHH           Route = "/rrhh"
	RoutePanelSelection Route = "/select-panel"
)

// landingByRole is the one-to-one mapping applied when a user holds exactly
// one role. Supervisor and HR share the RRHH panel.
var landingByRole = map[Role]Route{
	RoleResidente:     RouteResident,
	RoleGuarda:        RouteGuard,
	RoleEstudiante:    RouteStudent,
	RoleAdministrador: RouteAdmin,
	RoleSupervisor:    RouteRRHH,
	RoleHR:            RouteRRHH,
}

// ResolveLandingRoute decides the top-level screen for a role set.
// Precedence: SuperAdmin always wins; a recognized singleton maps directly;
// multiple roles (or an unrecognized singleton) go to panel selection; an
// empty set is an error state routed back to login.
// Pure and idempotent — invoked at initial load and immediately after login.
func ResolveLandingRoute(roles []Role) Route {
	if len(roles) == 0 {
		return RouteLogin
	}
	if Contains(roles, RoleSuperAdmin) {
		return RouteSuperAdmin
	}
	if len(roles) == 1 {
		if route, ok := landingByRole[roles[0]]; ok {
			return route
		}
		return RoutePanelSelection
	}
	return RoutePanelSelection
}

// CanEnter decides whether a user holding userRoles may enter a route that
// requires any of required. An empty required set admits every authenticated
// user; otherwise entry is granted iff the intersection is non-empty
// (logical OR, not AND). Callers handle the unauthenticated case — an
// absent session is always a denial with a login redirect.
func CanEnter(required, userRoles []Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if Contains(userRoles, r) {
			return true
		}
	}
	return false
}
