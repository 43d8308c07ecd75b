package dto

// ─── Areas ───────────────────────────────────────────────────────────────────

type CrearAreaRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=100"`
	Capacidad int    `json:"capacidad" validate:"required,gt=0"`
	AbreMin   int    `json:"abre_min"   validate:"min=0,max=1440"`
	CierraMin int    `json:"cierra_min" validate:"min=0,max=1440"`
}

type AreaResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Capacidad int    `json:"capacidad"`
	AbreMin   int    `json:"abre_min"`
	CierraMin int    `json:"cierra_min"`
	Activo    bool   `json:"activo"`
}

// ─── Reservas ────────────────────────────────────────────────────────────────

type CrearReservaRequest struct {
	AreaID    string `json:"area_id"    validate:"required,uuid"`
	Fecha     string `json:"fecha"      validate:"required,datetime=2006-01-02"`
	InicioMin int    `json:"inicio_min" validate:"min=0,max=1440"`
	FinMin    int    `json:"fin_min"    validate:"min=0,max=1440"`
}

type ReservaResponse struct {
	ID        string `json:"id"`
	AreaID    string `json:"area_id"`
	UsuarioID string `json:"usuario_id"`
	Fecha     string `json:"fecha"`
	InicioMin int    `json:"inicio_min"`
	FinMin    int    `json:"fin_min"`
	Estado    string `json:"estado"`
}
