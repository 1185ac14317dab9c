package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = "id, name, industry, website, phone, address, owner_id, created_at, updated_at"

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Industry, company.Website, company.Phone,
		company.Address, company.OwnerID, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	var c entity.Company
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Industry, &c.Website, &c.Phone, &c.Address,
		&c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by id: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa (incluye owner_id para reasignaciones).
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, industry = $3, website = $4, phone = $5,
			address = $6, owner_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Industry, company.Website, company.Phone,
		company.Address, company.OwnerID, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// List lista empresas aplicando el alcance de dueño y los filtros de búsqueda
// antes del LIMIT/OFFSET.
func (r *CompanyRepo) List(scope repository.OwnerScope, filter repository.CompanyFilter, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	var args []any
	where := ""
	if c := scopeClause(scope, &args); c != "" {
		where = appendCond(where, c)
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = appendCond(where, "name ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Industry != "" {
		args = append(args, filter.Industry)
		where = appendCond(where, "industry = $"+strconv.Itoa(len(args)))
	}
	query += where
	args = append(args, limit, offset)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Website, &c.Phone,
			&c.Address, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ReassignOwner transfiere todas las empresas de un dueño a otro en una sola
// sentencia; la atomicidad por colección la da el UPDATE único.
func (r *CompanyRepo) ReassignOwner(fromOwnerID, toOwnerID string) (int64, error) {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE companies SET owner_id = $2, updated_at = now() WHERE owner_id = $1`,
		fromOwnerID, toOwnerID)
	if err != nil {
		return 0, fmt.Errorf("reassign companies: %w", err)
	}
	return tag.RowsAffected(), nil
}

// appendCond encadena condiciones con WHERE/AND.
func appendCond(where, cond string) string {
	if where == "" {
		return " WHERE " + cond
	}
	return where + " AND " + cond
}
