package access

import (
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Action acción autorizable sobre una entidad con dueño.
type Action string

const (
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionReassign Action = "reassign"
)

// Target estado de propiedad de la entidad objetivo. NewOwnerID solo aplica a
// reasignaciones.
type Target struct {
	OwnerID    string
	NewOwnerID string
}

// Decision resultado del motor de políticas: Allow o Deny con razón específica.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow decisión afirmativa.
func Allow() Decision { return Decision{Allowed: true} }

// Deny decisión negativa con su razón.
func Deny(reason string) Decision { return Decision{Reason: reason} }

// Err traduce la decisión a error de dominio: nil si Allow, AccessDeniedError
// con la razón si Deny.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.Denied(d.Reason)
}

// Engine motor central de decisiones de acceso por propiedad y rol. Único
// punto del sistema donde vive la tabla de decisión rol×acción: todos los
// use cases de Company, Contact, Deal y User lo invocan de forma uniforme en
// lugar de repetir la lógica de tres ramas por entidad.
//
// Sin estado propio: seguro bajo invocación concurrente. La ventana entre la
// resolución del equipo y la mutación posterior no está protegida por locks;
// un cambio de equipo en ese intervalo es un riesgo aceptado.
type Engine struct {
	teams *TeamResolver
}

// NewEngine construye el motor sobre el resolver de equipos.
func NewEngine(teams *TeamResolver) *Engine {
	return &Engine{teams: teams}
}

// Authorize decide si caller puede ejecutar action sobre una entidad cuyo
// dueño actual es target.OwnerID. Para ActionReassign, target.NewOwnerID es el
// dueño propuesto. Orden de precedencia: admin incondicional, luego manager
// acotado a su equipo, luego rep acotado a sí mismo.
func (e *Engine) Authorize(caller Identity, action Action, target Target) (Decision, error) {
	if !caller.IsActive {
		return Deny(domain.ReasonAccessDenied), nil
	}
	switch {
	case caller.IsAdmin():
		return Allow(), nil

	case caller.IsManager():
		team, err := e.teams.ResolveTeam(caller.UserID)
		if err != nil {
			return Decision{}, err
		}
		switch action {
		case ActionReassign:
			// Ambos extremos deben caer dentro del equipo: un manager no puede
			// traerse un registro ajeno ni empujar uno propio fuera de su autoridad.
			if contains(team, target.OwnerID) && contains(team, target.NewOwnerID) {
				return Allow(), nil
			}
			return Deny(domain.ReasonTeamBoundaryViolation), nil
		default:
			if contains(team, target.OwnerID) {
				return Allow(), nil
			}
			return Deny(domain.ReasonAccessDenied), nil
		}

	case caller.IsRep():
		if action == ActionReassign {
			// Los reps nunca cambian propiedad, ni de sus propios registros.
			return Deny(domain.ReasonReassignmentForbidden), nil
		}
		if target.OwnerID == caller.UserID {
			return Allow(), nil
		}
		return Deny(domain.ReasonAccessDenied), nil
	}
	return Deny(domain.ReasonAccessDenied), nil
}

// ResolveCreateOwner decide el dueño efectivo de una entidad nueva a partir
// del dueño solicitado (puede venir vacío = "yo mismo").
//   - admin: respeta el dueño solicitado.
//   - manager: el dueño solicitado debe caer dentro de su equipo.
//   - rep: el dueño es siempre él mismo, ignorando lo solicitado (guardia
//     contra escalada de privilegios: un rep no crea registros pre-asignados).
func (e *Engine) ResolveCreateOwner(caller Identity, requestedOwnerID string) (string, Decision, error) {
	if !caller.IsActive {
		return "", Deny(domain.ReasonAccessDenied), nil
	}
	switch {
	case caller.IsAdmin():
		if requestedOwnerID == "" {
			return caller.UserID, Allow(), nil
		}
		return requestedOwnerID, Allow(), nil

	case caller.IsManager():
		if requestedOwnerID == "" || requestedOwnerID == caller.UserID {
			return caller.UserID, Allow(), nil
		}
		team, err := e.teams.ResolveTeam(caller.UserID)
		if err != nil {
			return "", Decision{}, err
		}
		if contains(team, requestedOwnerID) {
			return requestedOwnerID, Allow(), nil
		}
		return "", Deny(domain.ReasonTeamBoundaryViolation), nil

	case caller.IsRep():
		return caller.UserID, Allow(), nil
	}
	return "", Deny(domain.ReasonAccessDenied), nil
}

// AuthorizeUserState decide la (des)activación de una cuenta de usuario.
// Manager: permitido solo sobre sus reportes directos — la verificación usa
// DirectReports y no el equipo-con-self, así que un manager no puede
// desactivarse a sí mismo por esta vía. Rep: nunca.
func (e *Engine) AuthorizeUserState(caller Identity, targetUserID string) (Decision, error) {
	if !caller.IsActive {
		return Deny(domain.ReasonAccessDenied), nil
	}
	switch {
	case caller.IsAdmin():
		return Allow(), nil
	case caller.IsManager():
		reports, err := e.teams.DirectReports(caller.UserID)
		if err != nil {
			return Decision{}, err
		}
		if contains(reports, targetUserID) {
			return Allow(), nil
		}
		return Deny(domain.ReasonAccessDenied), nil
	}
	return Deny(domain.ReasonAccessDenied), nil
}

// AuthorizeBulkReassign decide la transferencia masiva de registros de
// fromUserID a toUserID. Manager: ambos usuarios deben pertenecer a su equipo.
func (e *Engine) AuthorizeBulkReassign(caller Identity, fromUserID, toUserID string) (Decision, error) {
	if !caller.IsActive {
		return Deny(domain.ReasonAccessDenied), nil
	}
	switch {
	case caller.IsAdmin():
		return Allow(), nil
	case caller.IsManager():
		team, err := e.teams.ResolveTeam(caller.UserID)
		if err != nil {
			return Decision{}, err
		}
		if contains(team, fromUserID) && contains(team, toUserID) {
			return Allow(), nil
		}
		return Deny(domain.ReasonTeamBoundaryViolation), nil
	}
	return Deny(domain.ReasonAccessDenied), nil
}

// ScopeFilter construye el alcance de dueños para listados/búsquedas del
// caller: admin sin restricción, manager su equipo, rep solo él mismo. Los
// repositorios lo aplican antes de paginar.
func (e *Engine) ScopeFilter(caller Identity) (repository.OwnerScope, error) {
	switch {
	case caller.IsAdmin():
		return repository.ScopeAll(), nil
	case caller.IsManager():
		team, err := e.teams.ResolveTeam(caller.UserID)
		if err != nil {
			return repository.OwnerScope{}, err
		}
		return repository.ScopeOwners(team...), nil
	}
	return repository.ScopeOwners(caller.UserID), nil
}

func contains(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
