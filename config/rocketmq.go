package config

import "time"

// RocketMQConfig 订单事件投递, 未开启时事件只写日志
type RocketMQConfig struct {
	Enabled    bool     `yaml:"enabled"`
	NameServer []string `yaml:"nameserver"`
	Topic      string   `yaml:"topic"`

	Producer Producer `yaml:"producer"`
}

type Producer struct {
	Group     string `yaml:"group"`
	Retry     int    `yaml:"retry"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (p Producer) SendTimeout() time.Duration {
	if p.TimeoutMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
