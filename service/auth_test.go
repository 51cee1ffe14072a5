package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/jwt"
	"Storefront/types"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) authService() *AuthService {
	return &AuthService{
		DB:        f.db,
		Config:    testConfig(),
		UsersRepo: dao.NewUsers(f.db),
		RolesRepo: dao.NewRoles(f.db),
	}
}

func (f *fixture) userService() *UserService {
	return &UserService{
		DB:        f.db,
		Auth:      f.authService(),
		UsersRepo: dao.NewUsers(f.db),
		RolesRepo: dao.NewRoles(f.db),
		OrderRepo: dao.NewOrder(f.db),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()

	user, err := svc.Register(f.ctx, &types.RegisterRequest{Email: " Alice@Example.com ", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, []string{models.RoleCustomer}, user.Roles)

	_, err = svc.Register(f.ctx, &types.RegisterRequest{Email: "ALICE@example.com", Password: "other12", ConfirmPassword: "other12"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(f.ctx, &types.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(f.ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := svc.Login(f.ctx, &types.LoginRequest{Email: "Alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	me, err := svc.Me(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleCustomer}, me.Roles)

	_, err = svc.Me(f.ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueToken(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()

	token, err := svc.IssueToken(&types.AuthUser{ID: 7, Email: "a@example.com", Roles: []string{models.RoleAdmin}})
	require.NoError(t, err)

	claims, err := jwt.ParseToken([]byte("test-secret"), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.True(t, claims.HasRole(models.RoleAdmin))
}

func TestLoginExternal(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	profile := &types.OAuthProfile{Provider: ProviderGoogle, Subject: "g-1", Email: "Bob@Example.com"}

	first, err := svc.LoginExternal(f.ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", first.Email)
	assert.Equal(t, []string{models.RoleCustomer}, first.Roles)

	again, err := svc.LoginExternal(f.ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// 第三方账号没有本地密码
	_, err = svc.Login(f.ctx, &types.LoginRequest{Email: "bob@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginExternal(f.ctx, &types.OAuthProfile{Provider: ProviderFacebook})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	svc.Config.Seed.Admin = config.Credential{Email: "admin@example.com", Password: "admin123"}
	svc.Config.Seed.Customer = config.Credential{Email: "customer@example.com", Password: "customer123"}

	require.NoError(t, svc.Seed(f.ctx))
	require.NoError(t, svc.Seed(f.ctx))

	var roles, users int64
	require.NoError(t, f.db.Model(&models.Role{}).Count(&roles).Error)
	require.NoError(t, f.db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(2), roles)
	assert.Equal(t, int64(2), users)

	admin, err := svc.Login(f.ctx, &types.LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin}, admin.Roles)
}

func TestUserManagement(t *testing.T) {
	f := newFixture(t)
	svc := f.userService()

	created, err := svc.Create(f.ctx, &types.CreateUserRequest{Email: "staff@example.com", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin}, created.Roles)
	_, err = svc.Create(f.ctx, &types.CreateUserRequest{Email: "other@example.com", Password: "secret1", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = svc.Create(f.ctx, &types.CreateUserRequest{Email: "STAFF@example.com", Password: "secret1", Role: models.RoleCustomer})
	assert.ErrorIs(t, err, ErrEmailTaken)

	detail, err := svc.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin, models.RoleCustomer}, detail.AllRoles)

	_, err = svc.Update(f.ctx, created.ID, &types.UpdateUserRequest{Email: "other@example.com", Roles: []string{models.RoleAdmin}})
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := svc.Update(f.ctx, created.ID, &types.UpdateUserRequest{
		Email:       "Staff2@example.com",
		NewPassword: "newpass1",
		Roles:       []string{models.RoleCustomer, models.RoleAdmin, models.RoleCustomer},
	})
	require.NoError(t, err)
	assert.Equal(t, "staff2@example.com", updated.Email)
	assert.ElementsMatch(t, []string{models.RoleAdmin, models.RoleCustomer}, updated.Roles)

	_, err = f.authService().Login(f.ctx, &types.LoginRequest{Email: "staff2@example.com", Password: "newpass1"})
	require.NoError(t, err)

	// 只保留请求里的角色
	_, err = svc.Update(f.ctx, created.ID, &types.UpdateUserRequest{Email: "staff2@example.com", Roles: []string{models.RoleCustomer}})
	require.NoError(t, err)
	detail, err = svc.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleCustomer}, detail.Roles)

	list, err := svc.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.Update(f.ctx, 999, &types.UpdateUserRequest{Email: "x@example.com", Roles: []string{models.RoleCustomer}})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateKeepsAtLeastOneRole(t *testing.T) {
	f := newFixture(t)
	svc := f.userService()
	admin, err := svc.Create(f.ctx, &types.CreateUserRequest{Email: "boss@example.com", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Update(f.ctx, admin.ID, &types.UpdateUserRequest{Email: "boss@example.com"})
	assert.ErrorIs(t, err, ErrRoleRequired)
	_, err = svc.Update(f.ctx, admin.ID, &types.UpdateUserRequest{Email: "boss@example.com", Roles: []string{}})
	assert.ErrorIs(t, err, ErrRoleRequired)
	_, err = svc.Update(f.ctx, admin.ID, &types.UpdateUserRequest{Email: "boss@example.com", Roles: []string{"Root"}})
	assert.ErrorIs(t, err, ErrUnknownRole)

	detail, err := svc.Get(f.ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin}, detail.Roles)
}

func TestUserDeleteGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.userService()
	cat := f.category("Shirts")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)

	buyer, err := svc.Create(f.ctx, &types.CreateUserRequest{Email: "buyer@example.com", Password: "secret1", Role: models.RoleCustomer})
	require.NoError(t, err)
	f.order(buyer.ID, models.OrderStatusDelivered, reportNow, line(tee, 1))
	assert.ErrorIs(t, svc.Delete(f.ctx, buyer.ID), ErrUserHasOrders)

	browser, err := svc.Create(f.ctx, &types.CreateUserRequest{Email: "browser@example.com", Password: "secret1", Role: models.RoleCustomer})
	require.NoError(t, err)
	_, err = f.cartService().Add(f.ctx, browser.ID, tee.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.ctx, browser.ID))
	_, err = svc.Get(f.ctx, browser.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var carts int64
	require.NoError(t, f.db.Model(&models.CartItem{}).Where("user_id = ?", browser.ID).Count(&carts).Error)
	assert.Zero(t, carts)

	assert.ErrorIs(t, svc.Delete(f.ctx, 999), ErrUserNotFound)
}

func TestOAuthProviders(t *testing.T) {
	conf, err := config.Parse([]byte(`
oauth:
  redirect_base: https://shop.example.com
  google:
    client_id: gid
    client_secret: gsecret
`))
	require.NoError(t, err)
	svc := NewOAuthService(conf)

	_, err = svc.AuthCodeURL(ProviderFacebook, "s")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	raw, err := svc.AuthCodeURL(ProviderGoogle, "xyz")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "gid", q.Get("client_id"))
	assert.Equal(t, "https://shop.example.com/api/v1/auth/oauth/google/callback", q.Get("redirect_uri"))
}

func TestParseProfile(t *testing.T) {
	google := &oauthProvider{subjectPath: "sub", emailPath: "email"}
	profile, err := parseProfile(ProviderGoogle, google, []byte(`{"sub":"123","email":"a@example.com","name":"A"}`))
	require.NoError(t, err)
	assert.Equal(t, &types.OAuthProfile{Provider: ProviderGoogle, Subject: "123", Email: "a@example.com"}, profile)

	facebook := &oauthProvider{subjectPath: "id", emailPath: "email"}
	_, err = parseProfile(ProviderFacebook, facebook, []byte(`{"id":"42","name":"No Mail"}`))
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = parseProfile(ProviderGoogle, google, []byte(`not json`))
	assert.Error(t, err)
}
