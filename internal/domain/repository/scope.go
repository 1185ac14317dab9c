package repository

// OwnerScope restringe un listado/búsqueda al conjunto de dueños visibles para
// el caller. Lo produce el motor de acceso y lo aplican los adaptadores de
// persistencia ANTES de paginar, para que el paginado nunca filtre registros
// fuera de alcance.
type OwnerScope struct {
	All      bool     // admin: sin restricción de dueño
	OwnerIDs []string // manager: equipo; rep: solo él mismo
}

// ScopeAll alcance sin restricción (admin).
func ScopeAll() OwnerScope {
	return OwnerScope{All: true}
}

// ScopeOwners alcance limitado a los dueños indicados.
func ScopeOwners(ownerIDs ...string) OwnerScope {
	return OwnerScope{OwnerIDs: ownerIDs}
}

// Contains indica si un ownerID cae dentro del alcance.
func (s OwnerScope) Contains(ownerID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.OwnerIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}
