package config

import (
	"net"
	"strconv"
)

// Redis 结算快照和确认锁都存在这里
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
	PoolSize int    `json:"pool_size" yaml:"pool_size"`
}

func (r *Redis) Addr() string {
	return net.JoinHostPort(r.Address, strconv.Itoa(r.Port))
}
