package service

import (
	"context"
	"testing"

	"github.com/GenturixHub/Genturix-sub003/internal/access"
	"github.com/GenturixHub/Genturix-sub003/internal/config"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *stubUsuarioRepo, email, password string, roles []string, estado string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	require.NoError(t, err)
	condoID := uuid.New()
	u := &model.Usuario{
		Nombre:       "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
		Estado:       estado,
		CondominioID: &condoID,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginResidenteDirectToPanel(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "res@condo.com", "Secreta123", []string{"Residente"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "res@condo.com", Password: "Secreta123"})
	require.NoError(t, err)
	assert.Equal(t, string(access.RouteResident), resp.LandingRoute)
	assert.Equal(t, "Residente", resp.User.RolPrincipal)
	assert.NotEmpty(t, resp.AccessToken)
	assert.False(t, resp.PasswordResetRequired)
}

func TestLoginSuperAdminOverridesOtherRoles(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "root@genturix.com", "Secreta123",
		[]string{"Residente", "SuperAdmin", "Guarda"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "root@genturix.com", Password: "Secreta123"})
	require.NoError(t, err)
	assert.Equal(t, string(access.RouteSuperAdmin), resp.LandingRoute)
}

func TestLoginMultiRoleGoesToPanelSelection(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "multi@condo.com", "Secreta123",
		[]string{"Guarda", "Residente"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "multi@condo.com", Password: "Secreta123"})
	require.NoError(t, err)
	assert.Equal(t, string(access.RoutePanelSelection), resp.LandingRoute)
}

func TestLoginSupervisorAndHRShareRoute(t *testing.T) {
	repo := newStubUsuarioRepo()
	// Two distinct roles force panel selection, even though Supervisor and
	// HR happen to share the same panel route.
	seedUser(t, repo, "hr@condo.com", "Secreta123",
		[]string{"Supervisor", "RRHH"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "hr@condo.com", Password: "Secreta123"})
	require.NoError(t, err)
	assert.Equal(t, string(access.RoutePanelSelection), resp.LandingRoute)
	assert.Contains(t, resp.User.Roles, "HR")
	assert.NotContains(t, resp.User.Roles, "RRHH")
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "res@condo.com", "Secreta123", []string{"Residente"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "res@condo.com", Password: "otra"})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestLoginBlockedAndSuspendedAreDistinct(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "blq@condo.com", "Secreta123", []string{"Residente"}, model.EstadoBloqueado)
	seedUser(t, repo, "sus@condo.com", "Secreta123", []string{"Residente"}, model.EstadoSuspendido)
	svc := NewAuthService(repo, nil, testConfig())

	_, errBlq := svc.Login(context.Background(), dto.LoginRequest{Email: "blq@condo.com", Password: "Secreta123"})
	_, errSus := svc.Login(context.Background(), dto.LoginRequest{Email: "sus@condo.com", Password: "Secreta123"})
	require.Error(t, errBlq)
	require.Error(t, errSus)
	assert.NotEqual(t, errBlq.Error(), errSus.Error())
	assert.Contains(t, errBlq.Error(), "bloqueada")
	assert.Contains(t, errSus.Error(), "suspendida")
}

func TestLoginReportsPasswordResetRequired(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "nuevo@condo.com", "Temporal123", []string{"Administrador"}, model.EstadoActivo)
	u.PasswordResetRequired = true
	require.NoError(t, repo.Update(context.Background(), u))
	svc := NewAuthService(repo, nil, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nuevo@condo.com", Password: "Temporal123"})
	require.NoError(t, err)
	assert.True(t, resp.PasswordResetRequired)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "res@condo.com", "Secreta123", []string{"Residente"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "res@condo.com", Password: "Secreta123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
	assert.Equal(t, login.LandingRoute, refreshed.LandingRoute)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), nil, testConfig())
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
}

func TestChangePasswordEnforcesPolicy(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "adm@condo.com", "Temporal123", []string{"Administrador"}, model.EstadoActivo)
	u.PasswordResetRequired = true
	require.NoError(t, repo.Update(context.Background(), u))
	svc := NewAuthService(repo, nil, testConfig())

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no upper", "secreta123"},
		{"no lower", "SECRETA123"},
		{"no digit", "SecretaSecreta"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
				OldPassword: "Temporal123",
				NewPassword: tc.password,
			})
			require.Error(t, err)
		})
	}

	// Valid change clears the reset flag.
	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		OldPassword: "Temporal123",
		NewPassword: "Definitiva123",
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, stored.PasswordResetRequired)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Definitiva123")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "adm@condo.com", "Temporal123", []string{"Administrador"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		OldPassword: "equivocada",
		NewPassword: "Definitiva123",
	})
	require.Error(t, err)
}

func TestSelectRoleRejectsUnownedRole(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "multi@condo.com", "Secreta123", []string{"Guarda", "Residente"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	_, err := svc.SelectRole(context.Background(), u.ID, "Administrador")
	require.Error(t, err)

	resp, err := svc.SelectRole(context.Background(), u.ID, "Guarda")
	require.NoError(t, err)
	assert.Equal(t, string(access.RouteGuard), resp.LandingRoute)
}

func TestSelectRoleNormalizesRRHH(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "hr@condo.com", "Secreta123", []string{"HR", "Residente"}, model.EstadoActivo)
	svc := NewAuthService(repo, nil, testConfig())

	resp, err := svc.SelectRole(context.Background(), u.ID, "RRHH")
	require.NoError(t, err)
	assert.Equal(t, "HR", resp.ActiveRole)
	assert.Equal(t, string(access.RouteRRHH), resp.LandingRoute)
}
