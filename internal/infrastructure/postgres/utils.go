package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// scopeClause arma la condición SQL del alcance de dueño y agrega el parámetro
// al slice de args. Devuelve cadena vacía para alcance sin restricción (admin).
// La condición se aplica SIEMPRE antes del LIMIT/OFFSET de la consulta que la
// use, para que el paginado no filtre registros fuera de alcance.
func scopeClause(scope repository.OwnerScope, args *[]any) string {
	if scope.All {
		return ""
	}
	*args = append(*args, scope.OwnerIDs)
	return "owner_id = ANY($" + strconv.Itoa(len(*args)) + ")"
}
