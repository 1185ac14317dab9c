package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleSalesManager = "sales_manager"
	RoleSalesRep     = "sales_rep"
)

// NormalizeRole canoniza el rol para comparación (la fuente histórica traía
// "Sales_rep" con mayúscula en un punto; aquí todo se compara en minúscula).
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// ValidRole indica si el rol pertenece al conjunto canónico.
func ValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleAdmin, RoleSalesManager, RoleSalesRep:
		return true
	}
	return false
}

// User representa un usuario del sistema de ventas.
// ManagerID solo tiene sentido para sales_rep y referencia a su manager directo.
// Los usuarios nunca se eliminan físicamente: solo se desactivan (IsActive=false).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string  // admin, sales_manager, sales_rep
	ManagerID    *string // nil para admin y managers
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
