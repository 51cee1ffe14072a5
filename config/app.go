package config

import "time"

type App struct {
	Env   string `json:"env" yaml:"env"`
	Name  string `json:"name" yaml:"name"`
	Debug bool   `json:"debug" yaml:"debug"`
	// HashSalt 订单对外编号 (hashids) 使用的盐
	HashSalt string `json:"hash_salt" yaml:"hash_salt"`
	// NodeID snowflake 节点号
	NodeID int64 `json:"node_id" yaml:"node_id"`
}

type Jwt struct {
	Secret        string `json:"secret" yaml:"secret"`
	ExpireSeconds int64  `json:"expire" yaml:"expire"`
	CookieName    string `json:"cookie_name" yaml:"cookie_name"`
	SecureCookie  bool   `json:"secure_cookie" yaml:"secure_cookie"`
}

func (j *Jwt) Expire() time.Duration {
	return time.Duration(j.ExpireSeconds) * time.Second
}

type Checkout struct {
	TTLSeconds int64 `json:"ttl" yaml:"ttl"`
}

func (c *Checkout) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type Tracing struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

type RateLimit struct {
	// CheckoutQPS 下单确认接口的 QPS 上限，0 表示不限流
	CheckoutQPS float64 `json:"checkout_qps" yaml:"checkout_qps"`
}

type Credential struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

// Seed 初始化账号
type Seed struct {
	Admin    Credential `json:"admin" yaml:"admin"`
	Customer Credential `json:"customer" yaml:"customer"`
}
