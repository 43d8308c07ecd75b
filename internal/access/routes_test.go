package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLandingRoute_SuperAdminAlwaysWins(t *testing.T) {
	cases := [][]Role{
		{RoleSuperAdmin},
		{RoleSuperAdmin, RoleAdministrador},
		{RoleResidente, RoleSuperAdmin},
		{RoleGuarda, RoleHR, RoleSuperAdmin, RoleEstudiante},
	}
	for _, roles := range cases {
		assert.Equal(t, RouteSuperAdmin, ResolveLandingRoute(roles), "roles=%v", roles)
	}
}

func TestResolveLandingRoute_SingletonMapping(t *testing.T) {
	cases := map[Role]Route{
		RoleResidente:     RouteResident,
		RoleGuarda:        RouteGuard,
		RoleEstudiante:    RouteStudent,
		RoleAdministrador: RouteAdmin,
		RoleSupervisor:    RouteRRHH,
		RoleHR:            RouteRRHH,
	}
	for role, want := range cases {
		assert.Equal(t, want, ResolveLandingRoute([]Role{role}), "role=%s", role)
	}
}

func TestResolveLandingRoute_UnknownSingleton(t *testing.T) {
	assert.Equal(t, RoutePanelSelection, ResolveLandingRoute([]Role{Role("Conserje")}))
}

func TestResolveLandingRoute_MultiRole(t *testing.T) {
	cases := [][]Role{
		{RoleResidente, RoleGuarda},
		{RoleAdministrador, RoleSupervisor},
		{RoleGuarda, RoleHR, RoleEstudiante},
	}
	for _, roles := range cases {
		assert.Equal(t, RoutePanelSelection, ResolveLandingRoute(roles), "roles=%v", roles)
	}
}

func TestResolveLandingRoute_EmptySet(t *testing.T) {
	assert.Equal(t, RouteLogin, ResolveLandingRoute(nil))
	assert.Equal(t, RouteLogin, ResolveLandingRoute([]Role{}))
}

func TestResolveLandingRoute_Idempotent(t *testing.T) {
	roles := []Role{RoleResidente, RoleGuarda}
	first := ResolveLandingRoute(roles)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ResolveLandingRoute(roles))
	}
}

func TestCanEnter_EmptyRequired(t *testing.T) {
	assert.True(t, CanEnter(nil, []Role{RoleResidente}))
	assert.True(t, CanEnter([]Role{}, []Role{RoleGuarda, RoleHR}))
}

func TestCanEnter_IntersectionOr(t *testing.T) {
	required := []Role{RoleAdministrador, RoleSupervisor}

	assert.True(t, CanEnter(required, []Role{RoleSupervisor}))
	assert.True(t, CanEnter(required, []Role{RoleResidente, RoleAdministrador}))
	assert.False(t, CanEnter(required, []Role{RoleResidente, RoleGuarda}))
	assert.False(t, CanEnter(required, nil))
}

func TestNormalize_LegacyRRHH(t *testing.T) {
	assert.Equal(t, RoleHR, Normalize("RRHH"))
	assert.Equal(t, RoleHR, Normalize("HR"))
	assert.Equal(t, RoleGuarda, Normalize("Guarda"))
}

func TestNormalizeAll_DeduplicatesKeepingOrder(t *testing.T) {
	roles := NormalizeAll([]string{"Residente", "RRHH", "HR", "Residente", "Guarda"})
	assert.Equal(t, []Role{RoleResidente, RoleHR, RoleGuarda}, roles)
	// First element stays the display "primary role".
	assert.Equal(t, RoleResidente, roles[0])
}
