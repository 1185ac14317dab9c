package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// CompanyFilter criterios de búsqueda adicionales al alcance de dueño.
type CompanyFilter struct {
	Name     string // búsqueda parcial case-insensitive
	Industry string
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
	List(scope OwnerScope, filter CompanyFilter, limit, offset int) ([]*entity.Company, error)
	// ReassignOwner transfiere todas las companies de fromOwner a toOwner en una
	// sola sentencia (atómica por colección). Devuelve cuántas filas cambió.
	ReassignOwner(fromOwnerID, toOwnerID string) (int64, error)
}
