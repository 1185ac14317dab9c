package entity

import "time"

// Acciones registrables en el audit log.
const (
	ActionCreate         = "CREATE"
	ActionUpdate         = "UPDATE"
	ActionDelete         = "DELETE"
	ActionDeactivate     = "DEACTIVATE"
	ActionActivate       = "ACTIVATE"
	ActionReassign       = "REASSIGN"
	ActionPasswordChange = "PASSWORD_CHANGE"
)

// Tipos de entidad referenciables desde el audit log. Junto con EntityID
// forman la referencia polimórfica {entityType, entityId}: el tipo indica en
// qué colección resolver el id.
const (
	EntityCompany = "company"
	EntityContact = "contact"
	EntityDeal    = "deal"
	EntityUser    = "user"
)

// AuditLogEntry entrada inmutable del registro de auditoría. Solo el
// subsistema de auditoría escribe estas filas; nunca se actualizan ni borran.
type AuditLogEntry struct {
	ID          string
	EntityType  string // company, contact, deal, user
	EntityID    string
	Action      string // CREATE, UPDATE, DELETE, ...
	PerformedBy string // User.ID del actor
	Details     map[string]any
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
}
