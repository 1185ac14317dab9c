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

// CompanyUseCase casos de uso CRUD + reasignación para empresas. Toda decisión
// de acceso pasa por el motor de políticas; toda mutación produce exactamente
// una entrada de auditoría (fire-and-forget).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	userRepo repository.UserRepository
	engine   *access.Engine
	recorder *audit.Recorder
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, userRepo repository.UserRepository, engine *access.Engine, recorder *audit.Recorder) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, userRepo: userRepo, engine: engine, recorder: recorder}
}

// Create crea una empresa. El dueño efectivo lo decide el motor: un rep queda
// siempre como dueño de lo que crea, sin importar lo que envíe.
func (uc *CompanyUseCase) Create(caller access.Identity, meta audit.Meta, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
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
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Industry:  in.Industry,
		Website:   in.Website,
		Phone:     in.Phone,
		Address:   in.Address,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityCompany,
		EntityID:    company.ID,
		Action:      entity.ActionCreate,
		PerformedBy: caller.UserID,
		Details:     map[string]any{"name": company.Name, "owner_id": company.OwnerID},
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa si cae dentro del alcance del caller.
func (uc *CompanyUseCase) GetByID(caller access.Identity, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(company.OwnerID) {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	return toCompanyResponse(company), nil
}

// Update actualiza campos de la empresa. El dueño no se modifica por aquí.
func (uc *CompanyUseCase) Update(caller access.Identity, meta audit.Meta, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	dec, err := uc.engine.Authorize(caller, access.ActionUpdate, access.Target{OwnerID: company.OwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if in.Name != nil {
		company.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.Industry != nil {
		company.Industry = *in.Industry
		changes["industry"] = *in.Industry
	}
	if in.Website != nil {
		company.Website = *in.Website
		changes["website"] = *in.Website
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
		changes["phone"] = *in.Phone
	}
	if in.Address != nil {
		company.Address = *in.Address
		changes["address"] = *in.Address
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityCompany,
		EntityID:    company.ID,
		Action:      entity.ActionUpdate,
		PerformedBy: caller.UserID,
		Details:     changes,
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toCompanyResponse(company), nil
}

// Delete elimina una empresa; la entrada de auditoría conserva los valores
// anteriores para poder reconstruir qué se borró.
func (uc *CompanyUseCase) Delete(caller access.Identity, meta audit.Meta, id string) error {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	dec, err := uc.engine.Authorize(caller, access.ActionDelete, access.Target{OwnerID: company.OwnerID})
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
		EntityType:  entity.EntityCompany,
		EntityID:    company.ID,
		Action:      entity.ActionDelete,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old": map[string]any{"name": company.Name, "industry": company.Industry, "owner_id": company.OwnerID},
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return nil
}

// Reassign cambia el dueño de la empresa. Operación distinta del update
// genérico: la propiedad se reemplaza, nunca se limpia.
func (uc *CompanyUseCase) Reassign(caller access.Identity, meta audit.Meta, id string, in dto.ReassignRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
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
		access.Target{OwnerID: company.OwnerID, NewOwnerID: in.NewOwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	oldOwner := company.OwnerID
	company.OwnerID = in.NewOwnerID
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityCompany,
		EntityID:    company.ID,
		Action:      entity.ActionReassign,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old_owner_id": oldOwner,
			"new_owner_id": in.NewOwnerID,
			"message":      "empresa \"" + company.Name + "\" reasignada a " + newOwner.Name,
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return toCompanyResponse(company), nil
}

// List lista empresas dentro del alcance del caller, con búsqueda y paginación.
// El alcance se aplica en SQL antes del limit/offset.
func (uc *CompanyUseCase) List(caller access.Identity, filter repository.CompanyFilter, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(scope, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Industry:  c.Industry,
		Website:   c.Website,
		Phone:     c.Phone,
		Address:   c.Address,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
