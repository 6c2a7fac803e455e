package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/utils"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.StoreSettings, error)
	SaveSettings(ctx context.Context, settings *models.StoreSettings) error
}

// The settings table holds a single JSONB row; SaveSettings replaces it
// wholesale, matching how the configuration record behaves everywhere else.
type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepository{DB: db}
}

func (r *settingsRepository) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var data []byte

	err := r.DB.QueryRowContext(dbCtx, `SELECT data FROM settings WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	settings := &models.StoreSettings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings *models.StoreSettings) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = r.DB.ExecContext(dbCtx,
		`INSERT INTO settings (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, data)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
