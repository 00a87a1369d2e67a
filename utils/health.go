package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest health snapshot of mongo and redis.
type HealthMonitor struct {
	mongo *mongo.Client
	redis *redis.Client
	cron  *cron.Cron

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongoClient *mongo.Client, redisClient *redis.Client) *HealthMonitor {
	return &HealthMonitor{mongo: mongoClient, redis: redisClient}
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Check pings every backend once and stores the result.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if h.mongo != nil {
		status.Mongo = h.mongo.Ping(ctx, nil) == nil
	}
	if h.redis != nil {
		ok := h.redis.Ping(ctx).Err() == nil
		status.Redis = &ok
	}

	h.mu.Lock()
	h.current = status
	h.mu.Unlock()
	return status
}

// Start runs Check immediately and then on the given cron schedule (e.g. "@every 60s").
func (h *HealthMonitor) Start(schedule string) error {
	h.Check(context.Background())
	h.cron = cron.New()
	_, err := h.cron.AddFunc(schedule, func() {
		status := h.Check(context.Background())
		if !status.Mongo {
			GetLogger().Warn("health check: mongo unreachable")
		}
		if status.Redis != nil && !*status.Redis {
			GetLogger().Warn("health check: redis unreachable")
		}
	})
	if err != nil {
		return err
	}
	h.cron.Start()
	GetLogger().Debug("health monitor started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (h *HealthMonitor) Stop() {
	if h.cron != nil {
		<-h.cron.Stop().Done()
	}
}
