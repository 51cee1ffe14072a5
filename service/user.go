package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/encrypt"
	"Storefront/types"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// UserService 后台用户管理
type UserService struct {
	DB        *gorm.DB
	Auth      IAuthService
	UsersRepo *dao.Users
	RolesRepo *dao.Roles
	OrderRepo *dao.Order
}

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	List(ctx context.Context) ([]*types.UserItem, error)
	Create(ctx context.Context, req *types.CreateUserRequest) (*types.UserItem, error)
	Get(ctx context.Context, id int64) (*types.UserDetail, error)
	// Update 角色按请求整体覆盖
	Update(ctx context.Context, id int64, req *types.UpdateUserRequest) (*types.UserItem, error)
	Delete(ctx context.Context, id int64) error
}

func toUserItem(u *models.User) *types.UserItem {
	return &types.UserItem{
		ID:        u.ID,
		Email:     u.Email,
		Provider:  u.Provider,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}

func (s *UserService) List(ctx context.Context) ([]*types.UserItem, error) {
	users, err := s.UsersRepo.ListWithRoles(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*types.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, toUserItem(u))
	}
	return items, nil
}

func (s *UserService) Create(ctx context.Context, req *types.CreateUserRequest) (*types.UserItem, error) {
	user, err := s.Auth.CreateAccount(ctx, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	return toUserItem(user), nil
}

func (s *UserService) find(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.UsersRepo.FindWithRoles(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) Get(ctx context.Context, id int64) (*types.UserDetail, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.RolesRepo.FindAll(ctx, func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
	if err != nil {
		return nil, err
	}
	detail := &types.UserDetail{UserItem: *toUserItem(user), AllRoles: make([]string, 0, len(all))}
	for _, r := range all {
		detail.AllRoles = append(detail.AllRoles, r.Name)
	}
	return detail, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req *types.UpdateUserRequest) (*types.UserItem, error) {
	names := dedupeStrings(req.Roles)
	if err := checkRoles(names); err != nil {
		return nil, err
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.UsersRepo.WithTx(tx)
		if email != user.Email {
			exist, err := users.IsExist(ctx, "email = ? AND id <> ?", email, id)
			if err != nil {
				return err
			}
			if exist {
				return ErrEmailTaken
			}
		}

		data := map[string]any{"email": email}
		if req.NewPassword != "" {
			hash, err := encrypt.HashPassword(req.NewPassword)
			if err != nil {
				return err
			}
			data["password_hash"] = hash
		}
		if _, err := users.UpdateById(ctx, id, data); err != nil {
			return err
		}

		roles := s.RolesRepo.WithTx(tx)
		wanted := make([]models.Role, 0, len(names))
		for _, name := range names {
			role, err := roles.Ensure(ctx, name)
			if err != nil {
				return err
			}
			wanted = append(wanted, *role)
		}
		if err := users.ReplaceRoles(ctx, user, wanted); err != nil {
			return err
		}
		user.Email = email
		user.Roles = wanted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserItem(user), nil
}

// Delete 有订单的用户不能删除, 购物车一并清理
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders, err := s.OrderRepo.WithTx(tx).QueryCount(ctx, "user_id = ?", id)
		if err != nil {
			return err
		}
		if orders > 0 {
			return ErrUserHasOrders
		}
		if err := tx.WithContext(ctx).Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return s.UsersRepo.WithTx(tx).DeleteWithRoles(ctx, user)
	})
}

// checkRoles 至少保留一个角色, 且只能是内置角色
func checkRoles(names []string) error {
	if len(names) == 0 {
		return ErrRoleRequired
	}
	for _, name := range names {
		if name != models.RoleAdmin && name != models.RoleCustomer {
			return fmt.Errorf("%w: %s", ErrUnknownRole, name)
		}
	}
	return nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
