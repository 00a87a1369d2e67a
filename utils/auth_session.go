// File: utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AdminSession is the cached identity of an authenticated admin.
type AdminSession struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	IsActive bool      `json:"isActive"`
	CachedAt time.Time `json:"cachedAt"`
}

// SaveAdminSession caches the identity of an admin for AdminSessionTTL.
func SaveAdminSession(ctx context.Context, client *redis.Client, session AdminSession) error {
	session.CachedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal admin session: %w", err)
	}
	if err := client.Set(ctx, AdminSessionPrefix+session.ID, data, AdminSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save admin session: %w", err)
	}
	return nil
}

// GetAdminSession returns the cached identity, or nil on a cache miss.
func GetAdminSession(ctx context.Context, client *redis.Client, id string) (*AdminSession, error) {
	data, err := client.Get(ctx, AdminSessionPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session AdminSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin session: %w", err)
	}
	return &session, nil
}

// DeleteAdminSession drops a cached identity.
func DeleteAdminSession(ctx context.Context, client *redis.Client, id string) error {
	return client.Del(ctx, AdminSessionPrefix+id).Err()
}

// RevokeToken puts a token hash on the denylist until the token would have expired anyway.
func RevokeToken(ctx context.Context, client *redis.Client, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := client.Set(ctx, RevokedTokenPrefix+tokenHash, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether a token hash is on the denylist.
func IsTokenRevoked(ctx context.Context, client *redis.Client, tokenHash string) (bool, error) {
	n, err := client.Exists(ctx, RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
