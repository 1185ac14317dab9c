package access

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// Identity identidad inmutable del caller para una request, construida por el
// middleware de autenticación a partir del JWT.
type Identity struct {
	UserID   string
	Role     string
	IsActive bool
}

// NewIdentity construye la identidad normalizando el rol.
func NewIdentity(userID, role string, isActive bool) Identity {
	return Identity{
		UserID:   userID,
		Role:     entity.NormalizeRole(role),
		IsActive: isActive,
	}
}

// IsAdmin indica si el caller es administrador.
func (i Identity) IsAdmin() bool {
	return entity.NormalizeRole(i.Role) == entity.RoleAdmin
}

// IsManager indica si el caller es sales_manager.
func (i Identity) IsManager() bool {
	return entity.NormalizeRole(i.Role) == entity.RoleSalesManager
}

// IsRep indica si el caller es sales_rep.
func (i Identity) IsRep() bool {
	return entity.NormalizeRole(i.Role) == entity.RoleSalesRep
}
