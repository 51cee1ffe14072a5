package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App            `json:"app" yaml:"app"`
	Server    *Server         `json:"server" yaml:"server"`
	Database  *Database       `json:"database" yaml:"database"`
	Redis     *Redis          `json:"redis" yaml:"redis"`
	Jwt       *Jwt            `json:"jwt" yaml:"jwt"`
	Checkout  *Checkout       `json:"checkout" yaml:"checkout"`
	OAuth     *OAuth          `json:"oauth" yaml:"oauth"`
	Oss       *OssConfig      `json:"oss" yaml:"oss"`
	RocketMQ  *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Tracing   *Tracing        `json:"tracing" yaml:"tracing"`
	Seed      *Seed           `json:"seed" yaml:"seed"`
	RateLimit *RateLimit      `json:"rate_limit" yaml:"rate_limit"`
	Nacos     *NacosConfig    `json:"nacos" yaml:"nacos"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// New 读取 yaml 配置；同目录下的 .env 会先被加载，STOREFRONT_* 环境变量覆盖敏感项
func New(filename string) *Config {
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(err)
	}
	conf.applyEnv()
	return conf
}

// Parse 解析 yaml 并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	conf.defaults()
	return &conf, nil
}

func (c *Config) defaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Name == "" {
		c.App.Name = "storefront"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpireSeconds == 0 {
		c.Jwt.ExpireSeconds = 7 * 24 * 3600
	}
	if c.Jwt.CookieName == "" {
		c.Jwt.CookieName = "storefront_session"
	}
	if c.Checkout == nil {
		c.Checkout = &Checkout{}
	}
	if c.Checkout.TTLSeconds == 0 {
		c.Checkout.TTLSeconds = 30 * 60
	}
	if c.OAuth == nil {
		c.OAuth = &OAuth{}
	}
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.RocketMQ.Topic == "" {
		c.RocketMQ.Topic = "storefront_order_events"
	}
	if c.Tracing == nil {
		c.Tracing = &Tracing{}
	}
	if c.Seed == nil {
		c.Seed = &Seed{}
	}
	if c.RateLimit == nil {
		c.RateLimit = &RateLimit{}
	}
	if c.Nacos != nil {
		if c.Nacos.Port == 0 {
			c.Nacos.Port = 8848
		}
		if c.Nacos.TimeoutMs == 0 {
			c.Nacos.TimeoutMs = 5000
		}
		if c.Nacos.DataID == "" {
			c.Nacos.DataID = c.App.Name + ".yaml"
		}
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOREFRONT_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("STOREFRONT_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("STOREFRONT_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Database.Port = p
		}
	}
	if v := os.Getenv("STOREFRONT_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("STOREFRONT_JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("STOREFRONT_OSS_AK"); v != "" {
		c.Oss.AccessKeyID = v
	}
	if v := os.Getenv("STOREFRONT_OSS_SK"); v != "" {
		c.Oss.AccessKeySecret = v
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
