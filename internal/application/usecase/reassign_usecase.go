package usecase

import (
	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/audit"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ReassignUseCase orquestador de reasignación masiva: transfiere todos los
// registros de un usuario (al retirarlo) a otro, a través de las tres
// colecciones con dueño. Cada colección se actualiza con una sola sentencia
// (atómica por colección); no hay transacción entre colecciones, así que una
// ejecución parcial se reporta como tal en Failed, nunca como éxito completo.
type ReassignUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	contacts  repository.ContactRepository
	deals     repository.DealRepository
	engine    *access.Engine
	recorder  *audit.Recorder
}

// NewReassignUseCase construye el orquestador.
func NewReassignUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	contacts repository.ContactRepository,
	deals repository.DealRepository,
	engine *access.Engine,
	recorder *audit.Recorder,
) *ReassignUseCase {
	return &ReassignUseCase{
		users: users, companies: companies, contacts: contacts, deals: deals,
		engine: engine, recorder: recorder,
	}
}

// ReassignAll transfiere la propiedad de todos los registros de fromUserID a
// toUserID. Gateado por el motor: manager solo dentro de su equipo. No toca el
// historial de etapas de los deals: solo se mueve el campo de propiedad.
func (uc *ReassignUseCase) ReassignAll(caller access.Identity, meta audit.Meta, fromUserID, toUserID string) (*dto.BulkReassignResponse, error) {
	if fromUserID == toUserID {
		return nil, domain.ErrInvalidInput
	}
	from, err := uc.users.GetByID(fromUserID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, domain.ErrUserNotFound
	}
	to, err := uc.users.GetByID(toUserID)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, domain.ErrUserNotFound
	}
	dec, err := uc.engine.AuthorizeBulkReassign(caller, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}

	resp := &dto.BulkReassignResponse{}

	if n, err := uc.companies.ReassignOwner(fromUserID, toUserID); err != nil {
		resp.Failed = append(resp.Failed, entity.EntityCompany)
	} else {
		resp.Companies = int(n)
	}
	if n, err := uc.contacts.ReassignOwner(fromUserID, toUserID); err != nil {
		resp.Failed = append(resp.Failed, entity.EntityContact)
	} else {
		resp.Contacts = int(n)
	}
	if n, err := uc.deals.ReassignOwner(fromUserID, toUserID); err != nil {
		resp.Failed = append(resp.Failed, entity.EntityDeal)
	} else {
		resp.Deals = int(n)
	}
	resp.Total = resp.Companies + resp.Contacts + resp.Deals

	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityUser,
		EntityID:    fromUserID,
		Action:      entity.ActionReassign,
		PerformedBy: caller.UserID,
		Details: map[string]any{
			"to_user_id": toUserID,
			"companies":  resp.Companies,
			"contacts":   resp.Contacts,
			"deals":      resp.Deals,
			"failed":     resp.Failed,
			"message":    "registros de " + from.Name + " transferidos a " + to.Name,
		},
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	})
	return resp, nil
}
