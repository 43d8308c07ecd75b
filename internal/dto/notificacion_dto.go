package dto

type NotificacionResponse struct {
	ID        string  `json:"id"`
	Titulo    string  `json:"titulo"`
	Cuerpo    string  `json:"cuerpo"`
	ReadAt    *string `json:"read_at"`
	CreatedAt string  `json:"created_at"`
}

type NotificacionListResponse struct {
	Notificaciones []NotificacionResponse `json:"notificaciones"`
	NoLeidas       int                    `json:"no_leidas"`
}
