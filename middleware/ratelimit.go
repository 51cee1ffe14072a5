package middleware

import (
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"net/http"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ResCheckoutConfirm = "checkout_confirm"

// InitSentinel qps <= 0 时不加载规则, 即不限流
func InitSentinel(qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               ResCheckoutConfirm,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	if err != nil {
		return err
	}
	log.L.Info("sentinel rule loaded", zap.String("resource", ResCheckoutConfirm), zap.Float64("qps", qps))
	return nil
}

func RateLimit(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, b := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if b != nil {
			response.Abort(c, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		defer e.Exit()

		c.Next()
	}
}
