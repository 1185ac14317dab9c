package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidStage       = errors.New("etapa de pipeline inválida")
)

// Razones de denegación del motor de políticas. El handler HTTP las expone
// tal cual en el cuerpo de error; nunca se registran como error de sistema.
const (
	ReasonAccessDenied          = "access_denied"
	ReasonTeamBoundaryViolation = "team_boundary_violation"
	ReasonReassignmentForbidden = "reassignment_forbidden"
)

// AccessDeniedError lleva la razón específica de una denegación de política.
// Satisface errors.Is(err, ErrForbidden) para que los handlers lo mapeen a 403.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return "acceso denegado: " + e.Reason
}

// Is permite tratar cualquier denegación como ErrForbidden.
func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrForbidden
}

// Denied construye el error de denegación con su razón.
func Denied(reason string) error {
	return &AccessDeniedError{Reason: reason}
}

// DenialReason extrae la razón si err es una denegación de política; si no,
// devuelve cadena vacía.
func DenialReason(err error) string {
	var d *AccessDeniedError
	if errors.As(err, &d) {
		return d.Reason
	}
	return ""
}
