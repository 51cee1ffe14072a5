package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/encrypt"
	"Storefront/pkg/jwt"
	"Storefront/pkg/log"
	"Storefront/types"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	// Register 注册顾客账号
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthUser, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthUser, error)
	Me(ctx context.Context, userID int64) (*types.AuthUser, error)
	IssueToken(user *types.AuthUser) (string, error)
	// LoginExternal 第三方登录, 邮箱不存在时创建顾客账号
	LoginExternal(ctx context.Context, profile *types.OAuthProfile) (*types.AuthUser, error)
	CreateAccount(ctx context.Context, email, password, role string) (*models.User, error)
	// Seed 初始化角色和配置里的管理员/顾客账号, 可重复执行
	Seed(ctx context.Context) error
}

type AuthService struct {
	DB        *gorm.DB
	Config    *config.Config
	UsersRepo *dao.Users
	RolesRepo *dao.Roles
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAuthUser(u *models.User) *types.AuthUser {
	return &types.AuthUser{ID: u.ID, Email: u.Email, Roles: u.RoleNames()}
}

// createUser 在事务内创建用户并绑定角色
func (s *AuthService) createUser(ctx context.Context, email, password, provider string, roleNames ...string) (*models.User, error) {
	user := &models.User{Email: email, Provider: provider}
	if password != "" {
		hash, err := encrypt.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.UsersRepo.WithTx(tx)
		exist, err := users.IsExist(ctx, "email = ?", email)
		if err != nil {
			return err
		}
		if exist {
			return ErrEmailTaken
		}

		roles := s.RolesRepo.WithTx(tx)
		for _, name := range roleNames {
			role, err := roles.Ensure(ctx, name)
			if err != nil {
				return err
			}
			user.Roles = append(user.Roles, *role)
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthUser, error) {
	user, err := s.createUser(ctx, normalizeEmail(req.Email), req.Password, "", models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return toAuthUser(user), nil
}

func (s *AuthService) CreateAccount(ctx context.Context, email, password, role string) (*models.User, error) {
	return s.createUser(ctx, normalizeEmail(email), password, "", role)
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthUser, error) {
	user, err := s.UsersRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	// 第三方账号没有本地密码
	if user.PasswordHash == "" || !encrypt.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return toAuthUser(user), nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*types.AuthUser, error) {
	user, err := s.UsersRepo.FindWithRoles(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAuthUser(user), nil
}

func (s *AuthService) IssueToken(user *types.AuthUser) (string, error) {
	return jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, user.Email, user.Roles, s.Config.Jwt.Expire())
}

func (s *AuthService) LoginExternal(ctx context.Context, profile *types.OAuthProfile) (*types.AuthUser, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.UsersRepo.FindByEmail(ctx, email)
	if err == nil {
		return toAuthUser(user), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.createUser(ctx, email, "", profile.Provider, models.RoleCustomer)
	if errors.Is(err, ErrEmailTaken) {
		// 并发登录时另一个请求已创建
		user, err = s.UsersRepo.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	log.L.Info("external account created", zap.String("provider", profile.Provider), zap.Int64("user_id", user.ID))
	return toAuthUser(user), nil
}

func (s *AuthService) Seed(ctx context.Context) error {
	for _, name := range []string{models.RoleAdmin, models.RoleCustomer} {
		if _, err := s.RolesRepo.Ensure(ctx, name); err != nil {
			return err
		}
	}

	accounts := []struct {
		cred config.Credential
		role string
	}{
		{s.Config.Seed.Admin, models.RoleAdmin},
		{s.Config.Seed.Customer, models.RoleCustomer},
	}
	for _, a := range accounts {
		if a.cred.Email == "" || a.cred.Password == "" {
			continue
		}
		_, err := s.createUser(ctx, normalizeEmail(a.cred.Email), a.cred.Password, "", a.role)
		if errors.Is(err, ErrEmailTaken) {
			continue
		}
		if err != nil {
			return err
		}
		log.L.Info("seeded account", zap.String("email", a.cred.Email), zap.String("role", a.role))
	}
	return nil
}
