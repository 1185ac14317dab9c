package access

import (
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TeamResolver calcula el equipo de un manager: él mismo más sus reportes
// directos. Relación derivada de los User persistidos, no almacenada; se
// recalcula por request para no arrastrar membresías obsoletas entre requests.
// La resolución es de un solo nivel: no recursa en reportes de reportes.
type TeamResolver struct {
	users repository.UserRepository
}

// NewTeamResolver construye el resolver.
func NewTeamResolver(users repository.UserRepository) *TeamResolver {
	return &TeamResolver{users: users}
}

// ResolveTeam devuelve los ids del equipo de managerID, incluyéndolo siempre a
// él mismo. Si managerID no existe, el resultado es el singleton {managerID}:
// validar la existencia del manager es responsabilidad del caller.
func (r *TeamResolver) ResolveTeam(managerID string) ([]string, error) {
	reports, err := r.users.ListByManager(managerID)
	if err != nil {
		return nil, err
	}
	team := make([]string, 0, len(reports)+1)
	team = append(team, managerID)
	for _, u := range reports {
		team = append(team, u.ID)
	}
	return team, nil
}

// DirectReports devuelve solo los ids de los reportes directos, sin incluir al
// manager. Lo usa la (des)activación de usuarios: un manager no puede
// desactivarse a sí mismo por esa vía.
func (r *TeamResolver) DirectReports(managerID string) ([]string, error) {
	reports, err := r.users.ListByManager(managerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reports))
	for _, u := range reports {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
