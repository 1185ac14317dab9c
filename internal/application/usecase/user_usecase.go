package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/audit"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// UserUseCase gestión de cuentas: perfil, rol/equipo (solo admin), cambio de
// contraseña y (des)activación. Los usuarios nunca se borran físicamente.
type UserUseCase struct {
	repo     repository.UserRepository
	engine   *access.Engine
	teams    *access.TeamResolver
	recorder *audit.Recorder
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, engine *access.Engine, teams *access.TeamResolver, recorder *audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, engine: engine, teams: teams, recorder: recorder}
}

// GetByID obtiene un usuario visible para el caller: admin cualquiera, manager
// su equipo, rep solo él mismo.
func (uc *UserUseCase) GetByID(caller access.Identity, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	visible, err := uc.visibleTo(caller, id)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	return toUserResponse(user), nil
}

// List lista usuarios según el rol: admin todos, manager su equipo, rep solo
// su propia cuenta.
func (uc *UserUseCase) List(caller access.Identity, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	var list []*entity.User
	var err error
	switch {
	case caller.IsAdmin():
		list, err = uc.repo.List(page.Limit, page.Offset)
	case caller.IsManager():
		self, selfErr := uc.repo.GetByID(caller.UserID)
		if selfErr != nil {
			return nil, selfErr
		}
		reports, repErr := uc.repo.ListByManager(caller.UserID)
		if repErr != nil {
			return nil, repErr
		}
		if self != nil {
			list = append(list, self)
		}
		list = append(list, reports...)
		list = pageWindow(list, page)
	default:
		self, selfErr := uc.repo.GetByID(caller.UserID)
		if selfErr != nil {
			return nil, selfErr
		}
		if self != nil {
			list = []*entity.User{self}
		}
		list = pageWindow(list, page)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// pageWindow aplica limit/offset a una lista armada en memoria (ramas manager
// y rep, donde el repositorio no pagina).
func pageWindow(list []*entity.User, page dto.PageRequest) []*entity.User {
	if page.Offset >= len(list) {
		return nil
	}
	list = list[page.Offset:]
	if page.Limit > 0 && page.Limit < len(list) {
		list = list[:page.Limit]
	}
	return list
}

// Update actualiza un usuario. El propio usuario solo puede cambiar su nombre;
// role y manager_id son exclusivos de admin.
func (uc *UserUseCase) Update(caller access.Identity, meta audit.Meta, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	if !caller.IsAdmin() && (in.Role != nil || in.ManagerID != nil) {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	changes := map[string]any{}
	if in.Name != nil {
		user.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.Role != nil {
		role := entity.NormalizeRole(*in.Role)
		if !entity.ValidRole(role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = role
		changes["role"] = role
	}
	if in.ManagerID != nil {
		if *in.ManagerID == "" {
			user.ManagerID = nil
			changes["manager_id"] = nil
		} else {
			manager, mErr := uc.repo.GetByID(*in.ManagerID)
			if mErr != nil {
				return nil, mErr
			}
			if manager == nil {
				return nil, domain.ErrUserNotFound
			}
			user.ManagerID = in.ManagerID
			changes["manager_id"] = *in.ManagerID
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityUser,
		EntityID:    user.ID,
		Action:      entity.ActionUpdate,
		PerformedBy: caller.UserID,
		Details:     changes,
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toUserResponse(user), nil
}

// ChangePassword cambia la contraseña de la cuenta (self o admin).
func (uc *UserUseCase) ChangePassword(caller access.Identity, meta audit.Meta, id string, in dto.ChangePasswordRequest) error {
	if !caller.IsAdmin() && caller.UserID != id {
		return domain.Denied(domain.ReasonAccessDenied)
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityUser,
		EntityID:    user.ID,
		Action:      entity.ActionPasswordChange,
		PerformedBy: caller.UserID,
		Details:     map[string]any{"message": "contraseña actualizada"},
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return nil
}

// Deactivate desactiva una cuenta (borrado suave). Manager solo sobre sus
// reportes directos; nunca sobre sí mismo por esta vía.
func (uc *UserUseCase) Deactivate(caller access.Identity, meta audit.Meta, id string) (*dto.UserResponse, error) {
	return uc.setActive(caller, meta, id, false)
}

// Activate reactiva una cuenta desactivada.
func (uc *UserUseCase) Activate(caller access.Identity, meta audit.Meta, id string) (*dto.UserResponse, error) {
	return uc.setActive(caller, meta, id, true)
}

func (uc *UserUseCase) setActive(caller access.Identity, meta audit.Meta, id string, active bool) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	dec, err := uc.engine.AuthorizeUserState(caller, id)
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return nil, domain.ErrConflict
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	action := entity.ActionDeactivate
	if active {
		action = entity.ActionActivate
	}
	uc.recorder.Record(&entity.AuditLogEntry{
		EntityType:  entity.EntityUser,
		EntityID:    user.ID,
		Action:      action,
		PerformedBy: caller.UserID,
		Details:     map[string]any{"is_active": active},
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
	return toUserResponse(user), nil
}

// visibleTo indica si la cuenta target es visible para el caller.
func (uc *UserUseCase) visibleTo(caller access.Identity, targetID string) (bool, error) {
	if caller.IsAdmin() || caller.UserID == targetID {
		return true, nil
	}
	if caller.IsManager() {
		team, err := uc.teams.ResolveTeam(caller.UserID)
		if err != nil {
			return false, err
		}
		for _, id := range team {
			if id == targetID {
				return true, nil
			}
		}
	}
	return false, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
