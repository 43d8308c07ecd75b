package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Nombre   string   `json:"nombre"   validate:"required,min=2,max=100"`
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,oneof=SuperAdmin Administrador Supervisor Guarda Residente Estudiante HR RRHH"`
}

type ActualizarUsuarioRequest struct {
	Nombre string   `json:"nombre" validate:"omitempty,min=2,max=100"`
	Email  string   `json:"email"  validate:"omitempty,email"`
	Roles  []string `json:"roles"  validate:"omitempty,min=1,dive,oneof=SuperAdmin Administrador Supervisor Guarda Residente Estudiante HR RRHH"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SeatUsageResponse struct {
	SeatsTotal     int `json:"seats_total"`
	SeatsUsed      int `json:"seats_used"`
	SeatsAvailable int `json:"seats_available"`
}

// UsuarioSeatResponse pairs a mutated user with the refreshed seat counters
// so the admin UI updates its seat meter without a second round trip.
type UsuarioSeatResponse struct {
	User  UsuarioResponse   `json:"user"`
	Seats SeatUsageResponse `json:"seats"`
}

type UsuarioListResponse struct {
	Users []UsuarioResponse `json:"users"`
	Seats SeatUsageResponse `json:"seats"`
}
