package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/pkg/validate"
	"Storefront/service"
	"Storefront/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	oauthStateCookie = "storefront_oauth_state"
	oauthStateMaxAge = 600
)

type Auth struct {
	Config       *config.Config
	AuthService  service.IAuthService
	OAuthService service.IOAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	auth.POST("/register", context.Wrap(u.Register))
	auth.POST("/login", context.Wrap(u.Login))
	auth.POST("/logout", context.Wrap(u.Logout))
	auth.GET("/me", middleware.Auth(u.Config.Jwt), context.Wrap(u.Me))
	auth.GET("/oauth/:provider/login", context.Wrap(u.OAuthLogin))
	auth.GET("/oauth/:provider/callback", context.Wrap(u.OAuthCallback))
}

// signIn 签发 token 并写入 cookie
func (u *Auth) signIn(c *gin.Context, user *types.AuthUser) error {
	token, err := u.AuthService.IssueToken(user)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, u.Config.Jwt, token, int(u.Config.Jwt.ExpireSeconds))
	response.Success(c, &types.LoginResponse{User: user, Token: token})
	return nil
}

func (u *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	user, err := u.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	return u.signIn(c, user)
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	user, err := u.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	return u.signIn(c, user)
}

func (u *Auth) Logout(c *gin.Context) error {
	middleware.SetSessionCookie(c, u.Config.Jwt, "", -1)
	response.Success(c, nil)
	return nil
}

func (u *Auth) Me(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := u.AuthService.Me(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, user)
	return nil
}

func (u *Auth) OAuthLogin(c *gin.Context) error {
	state := uuid.NewString()
	url, err := u.OAuthService.AuthCodeURL(c.Param("provider"), state)
	if err != nil {
		return bizError(err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", u.Config.Jwt.SecureCookie, true)
	c.Redirect(http.StatusFound, url)
	return nil
}

func (u *Auth) OAuthCallback(c *gin.Context) error {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		return response.BadRequest("invalid oauth state")
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", u.Config.Jwt.SecureCookie, true)

	if msg := c.Query("error"); msg != "" {
		return response.Unauthorized("external login failed: " + msg)
	}
	code := c.Query("code")
	if code == "" {
		return response.BadRequest("missing code")
	}

	profile, err := u.OAuthService.Exchange(c.Request.Context(), c.Param("provider"), code)
	if err != nil {
		return bizError(err)
	}
	user, err := u.AuthService.LoginExternal(c.Request.Context(), profile)
	if err != nil {
		return bizError(err)
	}
	return u.signIn(c, user)
}
