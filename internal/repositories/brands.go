package repositories

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/sqlite"
)

type BrandRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewBrandRepository(dbs *sqlite.Database, logger *slog.Logger) *BrandRepository {
	return &BrandRepository{
		dbs:    dbs,
		logger: logger.With("source", "BrandRepository"),
	}
}

func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) (string, error) {
	id := brand.ID
	if id == "" {
		id = uuid.NewString()
	}
	stmt := `INSERT INTO brands (id, name, description, website, primary_contact_name, primary_contact_email, logo_asset_id)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		id, brand.Name, brand.Description, brand.Website,
		brand.PrimaryContactName, brand.PrimaryContactEmail, brand.LogoAssetID); err != nil {
		return "", errors.Wrap(err, "insert brand", slog.String("name", brand.Name))
	}
	return id, nil
}

// List returns all brands with their logo URLs joined in, ordered by name.
func (r *BrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	stmt := `SELECT b.id, b.name, b.description, b.website, b.primary_contact_name, b.primary_contact_email,
	       b.logo_asset_id, a.url AS logo_url, b.created_at
	FROM brands b
	LEFT JOIN assets a ON b.logo_asset_id = a.id
	ORDER BY b.name`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &brands, stmt); err != nil {
		return nil, errors.Wrap(err, "list brands")
	}
	return brands, nil
}
