package models

import (
	"database/sql"
	"time"
)

// Brand is a client brand that briefs are produced for.
type Brand struct {
	ID                  string         `db:"id"`
	Name                string         `db:"name"`
	Description         string         `db:"description"`
	Website             string         `db:"website"`
	PrimaryContactName  string         `db:"primary_contact_name"`
	PrimaryContactEmail string         `db:"primary_contact_email"`
	LogoAssetID         sql.NullString `db:"logo_asset_id"`
	LogoURL             sql.NullString `db:"logo_url"`
	CreatedAt           time.Time      `db:"created_at"`
}
