package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest enforces the password policy client and server side:
// length >= 8 with at least one upper, one lower, and one digit (checked in
// the service — validator tags only cover the length).
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// SelectRoleRequest records which panel a multi-role user picked.
type SelectRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID           string   `json:"id"`
	Nombre       string   `json:"nombre"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	RolPrincipal string   `json:"rol_principal"`
	Estado       string   `json:"estado"`
	CondominioID *string  `json:"condominio_id"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
	// PasswordResetRequired keeps the client on the login surface until the
	// forced password change completes.
	PasswordResetRequired bool `json:"password_reset_required"`
	// LandingRoute is the single role-router decision; clients redirect here
	// instead of re-deriving role logic.
	LandingRoute string `json:"landing_route"`
}

type SelectRoleResponse struct {
	ActiveRole   string `json:"active_role"`
	LandingRoute string `json:"landing_route"`
}
