package rocketmq

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

type Rocketmq struct {
	RocketmqProducer rocketmq.Producer
	Topic            string
}

func init() {
	rlog.SetLogLevel("error")
}

// NewRocketmq 未开启时 RocketmqProducer 为 nil, SendMsg 直接返回
func NewRocketmq(cfg *config.RocketMQConfig) *Rocketmq {
	r := &Rocketmq{Topic: cfg.Topic}
	if !cfg.Enabled {
		log.L.Info("rocketmq disabled")
		return r
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
		producer.WithSendMsgTimeout(cfg.Producer.SendTimeout()),
	)
	if err != nil {
		log.L.Error("init producer failed", zap.Error(err))
		return r
	}
	if err = p.Start(); err != nil {
		log.L.Error("start producer failed", zap.Error(err))
		return r
	}
	log.L.Info("init producer success")

	r.RocketmqProducer = p
	return r
}

func (p *Rocketmq) Enabled() bool {
	return p != nil && p.RocketmqProducer != nil
}

func (p *Rocketmq) SendMsg(ctx context.Context, tag, key string, body []byte) error {
	if !p.Enabled() {
		return nil
	}
	msg := primitive.NewMessage(p.Topic, body)
	msg.WithTag(tag)
	if key != "" {
		msg.WithKeys([]string{key})
	}

	// 发送同步消息
	res, err := p.RocketmqProducer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Debug("send message success", zap.String("msg_id", res.MsgID), zap.String("tag", tag))
	return nil
}

func (p *Rocketmq) Shutdown() error {
	if !p.Enabled() {
		return nil
	}
	return p.RocketmqProducer.Shutdown()
}
