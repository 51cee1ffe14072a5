package cache

import (
	"Storefront/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrCheckoutNotFound = errors.New("checkout session expired")
	ErrCheckoutLocked   = errors.New("checkout is being confirmed")
)

// 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type CheckoutStorage struct {
	redis *redis.Client
}

func NewCheckoutStorage(rds *redis.Client) *CheckoutStorage {
	return &CheckoutStorage{rds}
}

// Save 保存结算快照, ttl 后自动过期
func (c *CheckoutStorage) Save(ctx context.Context, snap *types.CheckoutSnapshot, ttl time.Duration) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, c.name(snap.UserID, snap.Token), b, ttl).Err()
}

// Update 覆盖快照内容, 保留剩余过期时间
func (c *CheckoutStorage) Update(ctx context.Context, snap *types.CheckoutSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.redis.SetArgs(ctx, c.name(snap.UserID, snap.Token), b, redis.SetArgs{KeepTTL: true}).Err()
}

func (c *CheckoutStorage) Get(ctx context.Context, userID int64, token string) (*types.CheckoutSnapshot, error) {
	b, err := c.redis.Get(ctx, c.name(userID, token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCheckoutNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap types.CheckoutSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Lock 同一结算单同时只允许一个确认请求, 返回释放函数
func (c *CheckoutStorage) Lock(ctx context.Context, userID int64, token string, ttl time.Duration) (func(), error) {
	key := c.lockName(userID, token)
	owner := uuid.NewString()

	ok, err := c.redis.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCheckoutLocked
	}
	return func() {
		_ = unlockScript.Run(context.WithoutCancel(ctx), c.redis, []string{key}, owner).Err()
	}, nil
}

func (c *CheckoutStorage) name(userID int64, token string) string {
	return fmt.Sprintf("checkout:%d:%s", userID, token)
}

func (c *CheckoutStorage) lockName(userID int64, token string) string {
	return fmt.Sprintf("checkout:lock:%d:%s", userID, token)
}
