package models

import "time"

const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email        string `gorm:"column:email;size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:255" json:"-"`
	// Provider 第三方登录来源, 本地注册为空
	Provider  string    `gorm:"column:provider;size:32" json:"provider,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Roles []Role `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"column:name;size:50;not null;uniqueIndex:uk_roles_name" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// All 迁移用到的全部表
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&ProductImage{},
		&Role{},
		&User{},
		&CartItem{},
		&Order{},
		&OrderDetail{},
		&OrderStatusLog{},
	}
}
