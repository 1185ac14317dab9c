package entity

import "time"

// Contact representa una persona de contacto, opcionalmente asociada a una Company.
type Contact struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string
	CompanyID *string // nil si el contacto no está asociado a una empresa
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre completo para mensajes y reportes.
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
