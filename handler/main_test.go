package handler

import (
	"Storefront/config"
	"Storefront/models"
	"Storefront/pkg/jwt"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	conf, err := config.Parse([]byte(`
jwt:
  secret: handler-secret
`))
	if err != nil {
		panic(err)
	}
	return conf
}

func bearer(t *testing.T, conf *config.Config, userID int64, roles ...string) string {
	token, err := jwt.GenerateToken([]byte(conf.Jwt.Secret), userID, "u@example.com", roles, time.Hour*24*7)
	require.NoError(t, err)
	return "Bearer " + token
}

func customer(t *testing.T, conf *config.Config, userID int64) string {
	return bearer(t, conf, userID, models.RoleCustomer)
}

// envelope 统一响应结构, data 延迟解析
type envelope struct {
	Code   int               `json:"code"`
	Msg    string            `json:"msg"`
	Data   json.RawMessage   `json:"data"`
	Errors map[string]string `json:"errors"`
}

func do(t *testing.T, r http.Handler, method, path, auth string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}
