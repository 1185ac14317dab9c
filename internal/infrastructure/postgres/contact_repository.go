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

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación del puerto ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	pool *pgxpool.Pool
}

// NewContactRepository construye el adaptador de persistencia para contactos.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

const contactColumns = "id, first_name, last_name, email, phone, position, company_id, owner_id, created_at, updated_at"

// Create persiste un nuevo contacto.
func (r *ContactRepo) Create(contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		contact.ID, contact.FirstName, contact.LastName, contact.Email, contact.Phone,
		contact.Position, contact.CompanyID, contact.OwnerID, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto por ID.
func (r *ContactRepo) GetByID(id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	var c entity.Contact
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Position,
		&c.CompanyID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact by id: %w", err)
	}
	return &c, nil
}

// Update actualiza un contacto (incluye owner_id para reasignaciones).
func (r *ContactRepo) Update(contact *entity.Contact) error {
	query := `
		UPDATE contacts SET first_name = $2, last_name = $3, email = $4, phone = $5,
			position = $6, company_id = $7, owner_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		contact.ID, contact.FirstName, contact.LastName, contact.Email, contact.Phone,
		contact.Position, contact.CompanyID, contact.OwnerID, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete elimina un contacto por ID.
func (r *ContactRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// List lista contactos dentro del alcance de dueño, con filtros opcionales.
// El filtro por nombre busca sobre el nombre completo concatenado.
func (r *ContactRepo) List(scope repository.OwnerScope, filter repository.ContactFilter, limit, offset int) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	var args []any
	where := ""
	if c := scopeClause(scope, &args); c != "" {
		where = appendCond(where, c)
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = appendCond(where, "(first_name || ' ' || last_name) ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		where = appendCond(where, "company_id = $"+strconv.Itoa(len(args)))
	}
	query += where
	args = append(args, limit, offset)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.Position, &c.CompanyID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ReassignOwner transfiere todos los contactos de un dueño a otro.
func (r *ContactRepo) ReassignOwner(fromOwnerID, toOwnerID string) (int64, error) {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE contacts SET owner_id = $2, updated_at = now() WHERE owner_id = $1`,
		fromOwnerID, toOwnerID)
	if err != nil {
		return 0, fmt.Errorf("reassign contacts: %w", err)
	}
	return tag.RowsAffected(), nil
}
