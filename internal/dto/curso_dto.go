package dto

// ─── Cursos ──────────────────────────────────────────────────────────────────

type CrearCursoRequest struct {
	Titulo      string `json:"titulo" validate:"required,min=2,max=200"`
	Descripcion string `json:"descripcion" validate:"max=2000"`
}

type CrearLeccionRequest struct {
	Titulo    string `json:"titulo" validate:"required,min=2,max=200"`
	Contenido string `json:"contenido"`
	Orden     int    `json:"orden" validate:"min=0"`
}

type LeccionResponse struct {
	ID         string `json:"id"`
	Titulo     string `json:"titulo"`
	Contenido  string `json:"contenido"`
	Orden      int    `json:"orden"`
	Completada bool   `json:"completada"`
}

type CursoResponse struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Lecciones   int    `json:"lecciones"`
}

// ProgresoResponse is derived: completed lessons over total lessons.
type ProgresoResponse struct {
	CursoID         string            `json:"curso_id"`
	Lecciones       []LeccionResponse `json:"lecciones"`
	Completadas     int               `json:"completadas"`
	Total           int               `json:"total"`
	ProgresoPercent int               `json:"progreso_percent"`
}
