package models

import "time"

// Asset is an uploaded or generated image stored in the blob store.
type Asset struct {
	ID          string    `db:"id"`
	Filename    string    `db:"filename"`
	ContentType string    `db:"content_type"`
	StorageKey  string    `db:"storage_key"`
	URL         string    `db:"url"`
	CreatedAt   time.Time `db:"created_at"`
}
