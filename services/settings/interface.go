package settings

import (
	"context"
	"sync/atomic"
	"time"

	configRepo "dreamdecol/database/repository/configuration"
	"dreamdecol/models"
)

type SettingsService interface {
	Provider

	// Reload rebuilds the snapshot from the store.
	Reload(ctx context.Context) error
	// EnsureDefaults inserts every missing factory entry and returns how many were created.
	EnsureDefaults(ctx context.Context) (int, error)

	List(ctx context.Context, category string) ([]models.Configuration, error)
	Get(ctx context.Context, key string) (*models.Configuration, error)
	Create(ctx context.Context, input CreateInput) (*models.Configuration, error)
	Update(ctx context.Context, key string, upd models.ConfigurationUpdate) (*models.Configuration, error)
	Delete(ctx context.Context, key string) error
	Public(ctx context.Context, category string) (map[string]interface{}, error)
	Reset(ctx context.Context) error
}

// CreateInput is a new configuration entry.
type CreateInput struct {
	Key         string
	Value       interface{}
	Description string
	Category    string
}

// DefaultSettingsService keeps the configuration collection and the in-process snapshot in step.
type DefaultSettingsService struct {
	Repo configRepo.ConfigurationRepository
	Now  func() time.Time

	snapshot atomic.Pointer[Snapshot]
}

// NewSettingsService starts with the factory snapshot until Reload succeeds.
func NewSettingsService(repo configRepo.ConfigurationRepository) *DefaultSettingsService {
	s := &DefaultSettingsService{Repo: repo, Now: time.Now}
	s.snapshot.Store(DefaultSnapshot())
	return s
}

func (s *DefaultSettingsService) Snapshot() *Snapshot {
	return s.snapshot.Load()
}
