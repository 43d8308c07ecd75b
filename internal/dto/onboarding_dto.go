package dto

import "github.com/GenturixHub/Genturix-sub003/internal/wizard"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaveDraftRequest persists the full wizard snapshot; the client sends it
// after every mutation so a reload restores the last edit.
type SaveDraftRequest struct {
	Draft wizard.Draft `json:"draft"`
}

type ValidateUniqueRequest struct {
	Field string `json:"field" validate:"required,oneof=condominium_name admin_email"`
	Value string `json:"value" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ValidateUniqueResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type DraftResponse struct {
	Draft  *wizard.Draft `json:"draft"`
	Exists bool          `json:"exists"`
}

type StepResponse struct {
	CurrentStep int `json:"current_step"`
}

// AdminCredentials are shown exactly once to the operator after tenant
// creation and never persisted beyond this response.
type AdminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CondominioResponse struct {
	ID                string `json:"id"`
	Nombre            string `json:"nombre"`
	Direccion         string `json:"direccion"`
	ModuloUsuarios    bool   `json:"modulo_usuarios"`
	ModuloReservas    bool   `json:"modulo_reservas"`
	ModuloAprendizaje bool   `json:"modulo_aprendizaje"`
	ModuloPagos       bool   `json:"modulo_pagos"`
}

type CreateTenantResponse struct {
	Success          bool               `json:"success"`
	Condominio       CondominioResponse `json:"condominium"`
	AdminCredentials AdminCredentials   `json:"admin_credentials"`
}
