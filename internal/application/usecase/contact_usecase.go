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

// ContactUseCase casos de uso CRUD + reasignación para contactos.
type ContactUseCase struct {
	repo     repository.ContactRepository
	userRepo repository.UserRepository
	engine   *access.Engine
	recorder *audit.Recorder
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository, userRepo repository.UserRepository, engine *access.Engine, recorder *audit.Recorder) *ContactUseCase {
	return &ContactUseCase{repo: repo, userRepo: userRepo, engine: engine, recorder: recorder}
}

// Create crea un contacto con el dueño que decida el motor de políticas.
func (uc *ContactUseCase) Create(caller access.Identity, meta audit.Meta, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
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
	contact := &entity.Contact{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Position:  in.Position,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CompanyID != "" {
		contact.CompanyID = &in.CompanyID
	}
	if err := uc.repo.Create(contact); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityContact,
		EntityID:    contact.ID,
		Action:      entity.ActionCreate,
		PerformedBy: caller.UserID,
		Details:     map[string]any{"name": contact.FullName(), "owner_id": contact.OwnerID},
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toContactResponse(contact), nil
}

// GetByID obtiene un contacto si cae dentro del alcance del caller.
func (uc *ContactUseCase) GetByID(caller access.Identity, id string) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(contact.OwnerID) {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	return toContactResponse(contact), nil
}

// Update actualiza campos del contacto; el dueño no se toca por aquí.
func (uc *ContactUseCase) Update(caller access.Identity, meta audit.Meta, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}
	dec, err := uc.engine.Authorize(caller, access.ActionUpdate, access.Target{OwnerID: contact.OwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if in.FirstName != nil {
		contact.FirstName = *in.FirstName
		changes["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		contact.LastName = *in.LastName
		changes["last_name"] = *in.LastName
	}
	if in.Email != nil {
		contact.Email = *in.Email
		changes["email"] = *in.Email
	}
	if in.Phone != nil {
		contact.Phone = *in.Phone
		changes["phone"] = *in.Phone
	}
	if in.Position != nil {
		contact.Position = *in.Position
		changes["position"] = *in.Position
	}
	if in.CompanyID != nil {
		if *in.CompanyID == "" {
			// Marcador explícito de "desasociar": cadena vacía en un campo
			// puntero significa limpiar la referencia, nil significa sin cambio.
			contact.CompanyID = nil
			changes["company_id"] = nil
		} else {
			contact.CompanyID = in.CompanyID
			changes["company_id"] = *in.CompanyID
		}
	}
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(contact); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityContact,
		EntityID:    contact.ID,
		Action:      entity.ActionUpdate,
		PerformedBy: caller.UserID,
		Details:     changes,
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toContactResponse(contact), nil
}

// Delete elimina un contacto guardando sus valores anteriores en la auditoría.
func (uc *ContactUseCase) Delete(caller access.Identity, meta audit.Meta, id string) error {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.ErrNotFound
	}
	dec, err := uc.engine.Authorize(caller, access.ActionDelete, access.Target{OwnerID: contact.OwnerID})
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
		EntityType:  entity.EntityContact,
		EntityID:    contact.ID,
		Action:      entity.ActionDelete,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old": map[string]any{"name": contact.FullName(), "email": contact.Email, "owner_id": contact.OwnerID},
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return nil
}

// Reassign cambia el dueño del contacto.
func (uc *ContactUseCase) Reassign(caller access.Identity, meta audit.Meta, id string, in dto.ReassignRequest) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
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
		access.Target{OwnerID: contact.OwnerID, NewOwnerID: in.NewOwnerID})
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	oldOwner := contact.OwnerID
	contact.OwnerID = in.NewOwnerID
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(contact); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityContact,
		EntityID:    contact.ID,
		Action:      entity.ActionReassign,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"old_owner_id": oldOwner,
			"new_owner_id": in.NewOwnerID,
			"message":      "contacto \"" + contact.FullName() + "\" reasignado a " + newOwner.Name,
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return toContactResponse(contact), nil
}

// List lista contactos dentro del alcance del caller.
func (uc *ContactUseCase) List(caller access.Identity, filter repository.ContactFilter, page dto.PageRequest) (*dto.ContactListResponse, error) {
	page.DefaultPage()
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(scope, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContactResponse(c))
	}
	return &dto.ContactListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	if c == nil {
		return nil
	}
	return &dto.ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		CompanyID: c.CompanyID,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
