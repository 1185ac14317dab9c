package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/audit"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// DealUseCase casos de uso para oportunidades: CRUD, transición de etapa con
// historial solo-agregar y reasignación.
type DealUseCase struct {
	repo     repository.DealRepository
	userRepo repository.UserRepository
	engine   *access.Engine
	recorder *audit.Recorder
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(repo repository.DealRepository, userRepo repository.UserRepository, engine *access.Engine, recorder *audit.Recorder) *DealUseCase {
	return &DealUseCase{repo: repo, userRepo: userRepo, engine: engine, recorder: recorder}
}

// Create crea una oportunidad. La etapa inicial (Lead si no se indica) entra
// como primera entrada del historial.
func (uc *DealUseCase) Create(caller access.Identity, meta audit.Meta, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	ownerID, dec, err := uc.engine.ResolveCreateOwner(caller, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	if ownerID != caller.UserID {
		owner, err := uc.userRepo.GetByID(ownerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	stage := in.Stage
	if stage == "" {
		stage = entity.StageLead
	}
	if !entity.ValidStage(stage) {
		return nil, domain.ErrInvalidStage
	}
	now := time.Now()
	deal := &entity.Deal{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Amount:        in.Amount,
		Stage:         stage,
		Probability:   entity.StageProbability(stage),
		OwnerID:       ownerID,
		ExpectedClose: in.ExpectedClose,
		StageHistory: []entity.StageChange{
			{Stage: stage, ChangedAt: now, ChangedBy: caller.UserID},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CompanyID != "" {
		deal.CompanyID = &in.CompanyID
	}
	if in.ContactID != "" {
		deal.ContactID = &in.ContactID
	}
	if err := uc.repo.Create(deal); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityDeal,
		EntityID:    deal.ID,
		Action:      entity.ActionCreate,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"title": deal.Title, "stage": deal.Stage,
			"amount": deal.Amount.String(), "owner_id": deal.OwnerID,
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return toDealResponse(deal), nil
}

// GetByID obtiene una oportunidad si cae dentro del alcance del caller.
func (uc *DealUseCase) GetByID(caller access.Identity, id string) (*dto.DealResponse, error) {
	deal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(deal.OwnerID) {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	return toDealResponse(deal), nil
}

// Update actualiza campos generales. La etapa tiene su propia operación para
// que el historial nunca se salte una transición; el dueño, la reasignación.
func (uc *DealUseCase) Update(caller access.Identity, meta audit.Meta, id string, in dto.UpdateDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	dec, err := uc.engine.Authorize(caller, access.ActionUpdate, access.Target{OwnerID: deal.OwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if in.Title != nil {
		deal.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.Amount != nil {
		deal.Amount = *in.Amount
		changes["amount"] = in.Amount.String()
	}
	if in.Probability != nil && !entity.ClosedStage(deal.Stage) {
		// En etapas cerradas la probabilidad está forzada (100/0) y no se edita.
		deal.Probability = *in.Probability
		changes["probability"] = *in.Probability
	}
	if in.CompanyID != nil {
		if *in.CompanyID == "" {
			deal.CompanyID = nil
			changes["company_id"] = nil
		} else {
			deal.CompanyID = in.CompanyID
			changes["company_id"] = *in.CompanyID
		}
	}
	if in.ContactID != nil {
		if *in.ContactID == "" {
			deal.ContactID = nil
			changes["contact_id"] = nil
		} else {
			deal.ContactID = in.ContactID
			changes["contact_id"] = *in.ContactID
		}
	}
	if in.ExpectedClose != nil {
		deal.ExpectedClose = in.ExpectedClose
		changes["expected_close"] = in.ExpectedClose
	}
	deal.UpdatedAt = time.Now()
	if err := uc.repo.Update(deal); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityDeal,
		EntityID:    deal.ID,
		Action:      entity.ActionUpdate,
		PerformedBy: caller.UserID,
		Details:     changes,
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toDealResponse(deal), nil
}

// ChangeStage mueve la oportunidad a otra etapa: agrega la entrada al
// historial (solo-agregar, nunca se muta ni trunca) y fuerza la probabilidad
// en etapas cerradas. Etapa e historial se persisten en una sola sentencia.
func (uc *DealUseCase) ChangeStage(caller access.Identity, meta audit.Meta, id string, in dto.ChangeStageRequest) (*dto.DealResponse, error) {
	if !entity.ValidStage(in.Stage) {
		return nil, domain.ErrInvalidStage
	}
	deal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	dec, err := uc.engine.Authorize(caller, access.ActionUpdate, access.Target{OwnerID: deal.OwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	if deal.Stage == in.Stage {
		return nil, domain.ErrConflict // transición a la misma etapa
	}
	oldStage := deal.Stage
	now := time.Now()
	deal.Stage = in.Stage
	deal.Probability = entity.StageProbability(in.Stage)
	deal.StageHistory = append(deal.StageHistory, entity.StageChange{
		Stage:     in.Stage,
		ChangedAt: now,
		ChangedBy: caller.UserID,
	})
	deal.UpdatedAt = now
	if err := uc.repo.UpdateStage(deal); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityDeal,
		EntityID:    deal.ID,
		Action:      entity.ActionUpdate,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old_stage": oldStage, "new_stage": in.Stage,
			"probability": deal.Probability,
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return toDealResponse(deal), nil
}

// Delete elimina una oportunidad conservando sus valores en la auditoría.
func (uc *DealUseCase) Delete(caller access.Identity, meta audit.Meta, id string) error {
	deal, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if deal == nil {
		return domain.ErrNotFound
	}
	dec, err := uc.engine.Authorize(caller, access.ActionDelete, access.Target{OwnerID: deal.OwnerID})
	if err != nil {
		return err
	}
	if err := dec.Err(); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityDeal,
		EntityID:    deal.ID,
		Action:      entity.ActionDelete,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old": map[string]any{
				"title": deal.Title, "stage": deal.Stage,
				"amount": deal.Amount.String(), "owner_id": deal.OwnerID,
			},
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return nil
}

// Reassign cambia el dueño de la oportunidad. No toca el historial de etapas.
func (uc *DealUseCase) Reassign(caller access.Identity, meta audit.Meta, id string, in dto.ReassignRequest) (*dto.DealResponse, error) {
	deal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	newOwner, err := uc.userRepo.GetByID(in.NewOwnerID)
	if err != nil {
		return nil, err
	}
	if newOwner == nil {
		return nil, domain.ErrUserNotFound
	}
	dec, err := uc.engine.Authorize(caller, access.ActionReassign,
		access.Target{OwnerID: deal.OwnerID, NewOwnerID: in.NewOwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	oldOwner := deal.OwnerID
	deal.OwnerID = in.NewOwnerID
	deal.UpdatedAt = time.Now()
	if err := uc.repo.Update(deal); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityDeal,
		EntityID:    deal.ID,
		Action:      entity.ActionReassign,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old_owner_id": oldOwner,
			"new_owner_id": in.NewOwnerID,
			"message":      "oportunidad \"" + deal.Title + "\" reasignada a " + newOwner.Name,
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return toDealResponse(deal), nil
}

// List lista oportunidades dentro del alcance del caller.
func (uc *DealUseCase) List(caller access.Identity, filter repository.DealFilter, page dto.PageRequest) (*dto.DealListResponse, error) {
	page.DefaultPage()
	if filter.Stage != "" && !entity.ValidStage(filter.Stage) {
		return nil, domain.ErrInvalidStage
	}
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(scope, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DealResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDealResponse(d))
	}
	return &dto.DealListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toDealResponse(d *entity.Deal) *dto.DealResponse {
	if d == nil {
		return nil
	}
	history := make([]dto.StageChangeResponse, 0, len(d.StageHistory))
	for _, h := range d.StageHistory {
		history = append(history, dto.StageChangeResponse{
			Stage:     h.Stage,
			ChangedAt: h.ChangedAt,
			ChangedBy: h.ChangedBy,
		})
	}
	return &dto.DealResponse{
		ID:            d.ID,
		Title:         d.Title,
		Amount:        d.Amount,
		Stage:         d.Stage,
		Probability:   d.Probability,
		CompanyID:     d.CompanyID,
		ContactID:     d.ContactID,
		OwnerID:       d.OwnerID,
		ExpectedClose: d.ExpectedClose,
		StageHistory:  history,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
