package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{Repo: NewRepo[models.User](db)}
}

func (u *Users) WithTx(tx *gorm.DB) *Users {
	return &Users{Repo: u.Repo.WithDB(tx)}
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.Db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) FindWithRoles(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := u.Db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) ListWithRoles(ctx context.Context) ([]*models.User, error) {
	return u.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Roles").Order("email ASC")
	})
}

// ReplaceRoles 用给定角色集合覆盖 user_roles
func (u *Users) ReplaceRoles(ctx context.Context, user *models.User, roles []models.Role) error {
	return u.Db.WithContext(ctx).Model(user).Association("Roles").Replace(roles)
}

func (u *Users) DeleteWithRoles(ctx context.Context, user *models.User) error {
	if err := u.Db.WithContext(ctx).Model(user).Association("Roles").Clear(); err != nil {
		return err
	}
	return u.Db.WithContext(ctx).Delete(user).Error
}

type Roles struct {
	Repo[models.Role]
}

func NewRoles(db *gorm.DB) *Roles {
	return &Roles{Repo: NewRepo[models.Role](db)}
}

func (r *Roles) WithTx(tx *gorm.DB) *Roles {
	return &Roles{Repo: r.Repo.WithDB(tx)}
}

func (r *Roles) FindByNames(ctx context.Context, names []string) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(names))
	if len(names) == 0 {
		return roles, nil
	}
	err := r.Db.WithContext(ctx).Where("name IN ?", names).Order("id ASC").Find(&roles).Error
	return roles, err
}

// Ensure 不存在则创建
func (r *Roles) Ensure(ctx context.Context, name string) (*models.Role, error) {
	role := models.Role{Name: name}
	err := r.Db.WithContext(ctx).Where(models.Role{Name: name}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}
