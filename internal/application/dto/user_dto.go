package dto

import "time"

// RegisterRequest entrada para registro (auth). Role y ManagerID los asigna un
// admin después; el registro abierto siempre crea sales_rep.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest actualización de usuario. Campos nil = sin cambio.
// Role y ManagerID solo los puede tocar un admin; el propio usuario solo Name.
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin sales_manager sales_rep"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

// ChangePasswordRequest cambio de contraseña (self o admin).
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ManagerID *string   `json:"manager_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
