package nacos

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"fmt"

	"github.com/nacos-group/nacos-sdk-go/v2/clients"
	"github.com/nacos-group/nacos-sdk-go/v2/common/constant"
	"github.com/nacos-group/nacos-sdk-go/v2/vo"
	"go.uber.org/zap"
)

const defaultGroup = "DEFAULT_GROUP"

// FetchConfig 从 nacos 配置中心读取 yaml 内容
func FetchConfig(cfg *config.NacosConfig) (string, error) {
	sc := []constant.ServerConfig{
		*constant.NewServerConfig(cfg.Address, cfg.Port),
	}
	cc := constant.ClientConfig{
		NamespaceId:         cfg.Namespace,
		TimeoutMs:           cfg.TimeoutMs,
		NotLoadCacheAtStart: true,
		LogDir:              "/tmp/nacos/log",
		CacheDir:            "/tmp/nacos/cache",
		LogLevel:            cfg.LogLevel,
		Username:            cfg.User,
		Password:            cfg.Password,
	}

	cli, err := clients.NewConfigClient(vo.NacosClientParam{
		ClientConfig:  &cc,
		ServerConfigs: sc,
	})
	if err != nil {
		return "", fmt.Errorf("nacos client: %w", err)
	}

	group := cfg.Group
	if group == "" {
		group = defaultGroup
	}
	content, err := cli.GetConfig(vo.ConfigParam{DataId: cfg.DataID, Group: group})
	if err != nil {
		return "", fmt.Errorf("nacos get config %s/%s: %w", group, cfg.DataID, err)
	}
	if content == "" {
		return "", fmt.Errorf("nacos config %s/%s is empty", group, cfg.DataID)
	}
	log.L.Info("config loaded from nacos", zap.String("data_id", cfg.DataID), zap.String("group", group))
	return content, nil
}
