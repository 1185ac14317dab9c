package entity

import "time"

// Company representa una cuenta/empresa cliente del pipeline de ventas.
// OwnerID es el vendedor responsable; siempre no vacío después de crear.
type Company struct {
	ID        string
	Name      string
	Industry  string
	Website   string
	Phone     string
	Address   string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
