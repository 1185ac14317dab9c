package dto

// ReassignRequest cambio de dueño de una sola entidad.
type ReassignRequest struct {
	NewOwnerID string `json:"new_owner_id" validate:"required,uuid"`
}

// BulkReassignRequest transferencia masiva al retirar una cuenta.
type BulkReassignRequest struct {
	ToUserID string `json:"to_user_id" validate:"required,uuid"`
}

// BulkReassignResponse resultado por colección de una transferencia masiva.
// Failed lista las colecciones cuya sentencia falló: una ejecución parcial se
// reporta como tal, nunca como éxito completo.
type BulkReassignResponse struct {
	Companies int      `json:"companies"`
	Contacts  int      `json:"contacts"`
	Deals     int      `json:"deals"`
	Total     int      `json:"total"`
	Failed    []string `json:"failed,omitempty"`
}
