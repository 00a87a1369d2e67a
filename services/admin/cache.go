package admin

import (
	"context"
	"time"

	"dreamdecol/utils"

	"github.com/go-redis/redis/v8"
)

// SessionCache holds revoked tokens and short-lived identity lookups.
type SessionCache interface {
	Get(ctx context.Context, id string) (*utils.AdminSession, error)
	Save(ctx context.Context, session utils.AdminSession) error
	Invalidate(ctx context.Context, id string) error
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// RedisSessionCache stores sessions in Redis.
type RedisSessionCache struct {
	Client *redis.Client
}

// NewSessionCache picks Redis when a client is available and a no-op cache otherwise.
func NewSessionCache(client *redis.Client) SessionCache {
	if client == nil {
		return NoopSessionCache{}
	}
	return RedisSessionCache{Client: client}
}

func (c RedisSessionCache) Get(ctx context.Context, id string) (*utils.AdminSession, error) {
	return utils.GetAdminSession(ctx, c.Client, id)
}

func (c RedisSessionCache) Save(ctx context.Context, session utils.AdminSession) error {
	return utils.SaveAdminSession(ctx, c.Client, session)
}

func (c RedisSessionCache) Invalidate(ctx context.Context, id string) error {
	return utils.DeleteAdminSession(ctx, c.Client, id)
}

func (c RedisSessionCache) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	return utils.RevokeToken(ctx, c.Client, tokenHash, ttl)
}

func (c RedisSessionCache) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	return utils.IsTokenRevoked(ctx, c.Client, tokenHash)
}

// NoopSessionCache is used when Redis is not configured: nothing is cached and logout is a no-op.
type NoopSessionCache struct{}

func (NoopSessionCache) Get(context.Context, string) (*utils.AdminSession, error) { return nil, nil }
func (NoopSessionCache) Save(context.Context, utils.AdminSession) error { return nil }
func (NoopSessionCache) Invalidate(context.Context, string) error { return nil }
func (NoopSessionCache) Revoke(context.Context, string, time.Duration) error { return nil }
func (NoopSessionCache) IsRevoked(context.Context, string) (bool, error) { return false, nil }
