package repositories

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/sqlite"
)

type AssetRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewAssetRepository(dbs *sqlite.Database, logger *slog.Logger) *AssetRepository {
	return &AssetRepository{
		dbs:    dbs,
		logger: logger.With("source", "AssetRepository"),
	}
}

func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) (string, error) {
	id := asset.ID
	if id == "" {
		id = uuid.NewString()
	}
	stmt := `INSERT INTO assets (id, filename, content_type, storage_key, url)
	VALUES (?, ?, ?, ?, ?)`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		id, asset.Filename, asset.ContentType, asset.StorageKey, asset.URL); err != nil {
		return "", errors.Wrap(err, "insert asset", slog.String("storageKey", asset.StorageKey))
	}
	return id, nil
}

func (r *AssetRepository) List(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	stmt := `SELECT id, filename, content_type, storage_key, url, created_at
	FROM assets ORDER BY created_at DESC, id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &assets, stmt); err != nil {
		return nil, errors.Wrap(err, "list assets")
	}
	return assets, nil
}
