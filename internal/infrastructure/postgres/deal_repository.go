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

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implementación del puerto DealRepository sobre PostgreSQL.
// stage_history se guarda como JSONB en la misma fila del deal; pgx lo
// serializa/deserializa directamente hacia []entity.StageChange.
type DealRepo struct {
	pool *pgxpool.Pool
}

// NewDealRepository construye el adaptador de persistencia para oportunidades.
func NewDealRepository(pool *pgxpool.Pool) *DealRepo {
	return &DealRepo{pool: pool}
}

const dealColumns = "id, title, amount, stage, probability, company_id, contact_id, owner_id, expected_close, stage_history, created_at, updated_at"

// Create persiste una nueva oportunidad con su historial inicial.
func (r *DealRepo) Create(deal *entity.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		deal.ID, deal.Title, deal.Amount, deal.Stage, deal.Probability,
		deal.CompanyID, deal.ContactID, deal.OwnerID, deal.ExpectedClose,
		deal.StageHistory, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID obtiene una oportunidad por ID, historial incluido.
func (r *DealRepo) GetByID(id string) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	var d entity.Deal
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Title, &d.Amount, &d.Stage, &d.Probability,
		&d.CompanyID, &d.ContactID, &d.OwnerID, &d.ExpectedClose,
		&d.StageHistory, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal by id: %w", err)
	}
	return &d, nil
}

// Update actualiza los campos editables de una oportunidad. No toca stage,
// probability ni stage_history: esos solo cambian vía UpdateStage.
func (r *DealRepo) Update(deal *entity.Deal) error {
	query := `
		UPDATE deals SET title = $2, amount = $3, company_id = $4, contact_id = $5,
			owner_id = $6, expected_close = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		deal.ID, deal.Title, deal.Amount, deal.CompanyID, deal.ContactID,
		deal.OwnerID, deal.ExpectedClose, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

// UpdateStage escribe etapa, probabilidad e historial completo en una sola
// sentencia: no puede quedar una entrada de historial sin su cambio de etapa.
func (r *DealRepo) UpdateStage(deal *entity.Deal) error {
	query := `
		UPDATE deals SET stage = $2, probability = $3, stage_history = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		deal.ID, deal.Stage, deal.Probability, deal.StageHistory, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deal stage: %w", err)
	}
	return nil
}

// Delete elimina una oportunidad por ID.
func (r *DealRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return nil
}

// List lista oportunidades dentro del alcance de dueño, con filtros opcionales.
func (r *DealRepo) List(scope repository.OwnerScope, filter repository.DealFilter, limit, offset int) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals`
	var args []any
	where := ""
	if c := scopeClause(scope, &args); c != "" {
		where = appendCond(where, c)
	}
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		where = appendCond(where, "title ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		where = appendCond(where, "stage = $"+strconv.Itoa(len(args)))
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
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		var d entity.Deal
		if err := rows.Scan(&d.ID, &d.Title, &d.Amount, &d.Stage, &d.Probability,
			&d.CompanyID, &d.ContactID, &d.OwnerID, &d.ExpectedClose,
			&d.StageHistory, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ReassignOwner transfiere todas las oportunidades de un dueño a otro.
func (r *DealRepo) ReassignOwner(fromOwnerID, toOwnerID string) (int64, error) {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE deals SET owner_id = $2, updated_at = now() WHERE owner_id = $1`,
		fromOwnerID, toOwnerID)
	if err != nil {
		return 0, fmt.Errorf("reassign deals: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PipelineSummary totales por etapa dentro del alcance del solicitante.
func (r *DealRepo) PipelineSummary(scope repository.OwnerScope) ([]repository.StageTotal, error) {
	query := `SELECT stage, COUNT(*), COALESCE(SUM(amount), 0) FROM deals`
	var args []any
	if c := scopeClause(scope, &args); c != "" {
		query += " WHERE " + c
	}
	query += " GROUP BY stage"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("pipeline summary: %w", err)
	}
	defer rows.Close()
	var totals []repository.StageTotal
	for rows.Next() {
		var t repository.StageTotal
		if err := rows.Scan(&t.Stage, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan stage total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
