package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/qikpos/pos-platform/internal/cache"
	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
)

// SettingsService manages the single store configuration record.
type SettingsService struct {
	repo      repository.SettingsRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

func NewSettingsService(repo repository.SettingsRepository, c cache.Cache) *SettingsService {
	return &SettingsService{
		repo:      repo,
		cache:     c,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// GetSettings returns the stored configuration, falling back to defaults for
// a deployment that has never saved one.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	cached := &models.StoreSettings{}
	if found, err := s.cache.Get(ctx, cache.SettingsKey, cached); err == nil && found {
		return cached, nil
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			defaults := models.DefaultStoreSettings()

			return &defaults, nil
		}

		return nil, errors.DatabaseError("Failed to load store settings").WithError(err)
	}

	_ = s.cache.Set(ctx, cache.SettingsKey, settings, 0)

	return settings, nil
}

// UpdateSettings replaces the configuration record wholesale.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *models.StoreSettings) (*models.StoreSettings, error) {
	// Receipt text ends up in rendered HTML, so it is sanitized on the way in.
	settings.ReceiptHeader = s.sanitizer.Sanitize(settings.ReceiptHeader)
	settings.ReceiptFooter = s.sanitizer.Sanitize(settings.ReceiptFooter)

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, errors.DatabaseError("Failed to save store settings").WithError(err)
	}

	_ = s.cache.Delete(ctx, cache.SettingsKey)

	return settings, nil
}
