package settings

import (
	"context"
	"errors"
	"fmt"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/utils"

	"go.uber.org/zap"
)

func (s *DefaultSettingsService) Reload(ctx context.Context) error {
	configs, err := s.Repo.List(ctx, "")
	if err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	s.snapshot.Store(NewSnapshot(configs))
	return nil
}

// refresh reloads after a successful write; the write stands even if the reload fails.
func (s *DefaultSettingsService) refresh(ctx context.Context) {
	if err := s.Reload(ctx); err != nil {
		utils.GetLogger().Warn("Settings snapshot is stale", zap.Error(err))
	}
}

func (s *DefaultSettingsService) fromDefault(d Default) *models.Configuration {
	now := s.Now()
	return &models.Configuration{
		Key:         d.Key,
		Value:       d.Value,
		Description: d.Description,
		Category:    d.Category,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *DefaultSettingsService) EnsureDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, d := range Defaults {
		ok, err := s.Repo.InsertIfMissing(ctx, s.fromDefault(d))
		if err != nil {
			return created, err
		}
		if ok {
			created++
			utils.GetLogger().Info("Created configuration", zap.String("key", d.Key))
		}
	}
	if err := s.Reload(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func (s *DefaultSettingsService) List(ctx context.Context, category string) ([]models.Configuration, error) {
	configs, err := s.Repo.List(ctx, category)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch configurations", err)
	}
	return configs, nil
}

func (s *DefaultSettingsService) Get(ctx context.Context, key string) (*models.Configuration, error) {
	c, err := s.Repo.GetActive(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("Configuration not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch configuration", err)
	}
	return c, nil
}

func (s *DefaultSettingsService) Create(ctx context.Context, input CreateInput) (*models.Configuration, error) {
	if input.Key == "" || input.Value == nil || input.Category == "" {
		return nil, utils.NewValidationError("Key, value, and category are required")
	}
	if !isConfigCategory(input.Category) {
		return nil, utils.NewValidationError("Invalid category")
	}

	now := s.Now()
	c := &models.Configuration{
		Key:         input.Key,
		Value:       input.Value,
		Description: input.Description,
		Category:    input.Category,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewValidationError("Configuration key already exists")
		}
		return nil, utils.NewInternalError("Failed to create configuration", err)
	}
	s.refresh(ctx)
	return c, nil
}

func (s *DefaultSettingsService) Update(ctx context.Context, key string, upd models.ConfigurationUpdate) (*models.Configuration, error) {
	if upd.Value == nil {
		return nil, utils.NewValidationError("Value is required")
	}
	if upd.Category != nil && !isConfigCategory(*upd.Category) {
		return nil, utils.NewValidationError("Invalid category")
	}
	c, err := s.Repo.Update(ctx, key, upd, s.Now())
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("Configuration not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to update configuration", err)
	}
	s.refresh(ctx)
	return c, nil
}

func (s *DefaultSettingsService) Delete(ctx context.Context, key string) error {
	err := s.Repo.Delete(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFoundError("Configuration not found")
	}
	if err != nil {
		return utils.NewInternalError("Failed to delete configuration", err)
	}
	s.refresh(ctx)
	return nil
}

// Public exposes the key/value pairs of one category to unauthenticated clients.
func (s *DefaultSettingsService) Public(ctx context.Context, category string) (map[string]interface{}, error) {
	configs, err := s.Repo.List(ctx, category)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch configurations", err)
	}
	out := make(map[string]interface{}, len(configs))
	for _, c := range configs {
		out[c.Key] = c.Value
	}
	return out, nil
}

func (s *DefaultSettingsService) Reset(ctx context.Context) error {
	for _, d := range Defaults {
		if err := s.Repo.Upsert(ctx, s.fromDefault(d)); err != nil {
			return utils.NewInternalError("Failed to reset configurations", err)
		}
	}
	s.refresh(ctx)
	return nil
}

func isConfigCategory(category string) bool {
	for _, c := range models.ConfigCategories {
		if c == category {
			return true
		}
	}
	return false
}
