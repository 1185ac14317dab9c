package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// ContactFilter criterios de búsqueda adicionales al alcance de dueño.
type ContactFilter struct {
	Name      string // busca en nombre y apellido
	CompanyID string
}

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Create(contact *entity.Contact) error
	GetByID(id string) (*entity.Contact, error)
	Update(contact *entity.Contact) error
	Delete(id string) error
	List(scope OwnerScope, filter ContactFilter, limit, offset int) ([]*entity.Contact, error)
	ReassignOwner(fromOwnerID, toOwnerID string) (int64, error)
}
