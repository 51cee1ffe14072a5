package config

// NacosConfig 配置中心, Address 为空时只使用本地 yaml
type NacosConfig struct {
	Address   string `yaml:"address"`
	Port      uint64 `yaml:"port"`
	Namespace string `yaml:"namespace"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	TimeoutMs uint64 `yaml:"timeout_ms"`
	LogLevel  string `yaml:"log_level"`
	DataID    string `yaml:"data_id"`
	Group     string `yaml:"group"`
}

func (n *NacosConfig) Enabled() bool {
	return n != nil && n.Address != ""
}

// Overlay 用配置中心下发的 yaml 替换本地配置, 保留 nacos 连接信息和环境变量覆盖
func (c *Config) Overlay(content []byte) (*Config, error) {
	remote, err := Parse(content)
	if err != nil {
		return nil, err
	}
	remote.Nacos = c.Nacos
	if remote.App.Env == "" {
		remote.App.Env = c.App.Env
	}
	remote.applyEnv()
	return remote, nil
}
