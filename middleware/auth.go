package middleware

import (
	"Storefront/config"
	"Storefront/pkg/jwt"
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"net/http"
	"strings"

	ctxutil "Storefront/pkg/context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenFromRequest 优先读 cookie, 其次 Authorization: Bearer
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SetSessionCookie HttpOnly 会话 cookie, maxAge < 0 表示删除
func SetSessionCookie(c *gin.Context, conf *config.Jwt, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(conf.CookieName, token, maxAge, "/", "", conf.SecureCookie, true)
}

func Auth(conf *config.Jwt) gin.HandlerFunc {
	secret := []byte(conf.Secret)
	return func(c *gin.Context) {
		token := TokenFromRequest(c, conf.CookieName)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "login required")
			return
		}

		claims, err := jwt.ParseToken(secret, token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "session expired, please login again")
			return
		}

		// 滑动过期, 剩余不足一半时续期
		if jwt.ShouldRefresh(claims, conf.Expire()/2) {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, claims.Email, claims.Roles, conf.Expire())
			if err != nil {
				log.L.Warn("refresh token failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
			} else {
				SetSessionCookie(c, conf, newToken, int(conf.ExpireSeconds))
				c.Header("X-New-Access-Token", newToken)
			}
		}

		c.Set(ctxutil.CtxUserID, claims.UserID)
		c.Set(ctxutil.CtxEmail, claims.Email)
		c.Set(ctxutil.CtxRoles, claims.Roles)

		c.Next()
	}
}

// RequireRole 需在 Auth 之后使用
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, r := range ctxutil.GetRoles(c) {
			if r == role {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "permission denied")
	}
}
