package types

import "time"

type UserItem struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=Admin Customer"`
}

type UpdateUserRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	// NewPassword 为空时不修改密码
	NewPassword string   `json:"new_password" binding:"omitempty,min=6"`
	Roles       []string `json:"roles" binding:"required,min=1,dive,oneof=Admin Customer"`
}

type UserDetail struct {
	UserItem
	AllRoles []string `json:"all_roles"`
}
