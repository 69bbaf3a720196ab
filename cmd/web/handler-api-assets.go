package main

import (
	"io"
	"net/http"

	"github.com/mkromann/ugc-builder/internal/blob"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
)

type uploadAssetResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// apiUploadAsset accepts a multipart upload under the "file" field, stores it in the
// blob store and records it as an asset. Uploads are capped at blob.MaxUploadBytes
// and restricted to the image content types the store accepts.
func (app *application) apiUploadAsset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, blob.MaxUploadBytes)
	if err := r.ParseMultipartForm(blob.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			app.apiError(w, r, http.StatusRequestEntityTooLarge, "File exceeds the 5 MB upload limit.")
			return
		}
		app.apiError(w, r, http.StatusBadRequest, "Expected a multipart form upload.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.apiError(w, r, http.StatusBadRequest, "The \"file\" form field is required.")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "read upload"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	key, url, err := app.blobs.Put(data, header.Filename, contentType)
	if err != nil {
		if errors.Is(err, blob.ErrUnsupportedContentType) {
			app.apiError(w, r, http.StatusUnsupportedMediaType, "Only image uploads are supported.")
			return
		}
		app.serverError(w, r, err)
		return
	}

	id, err := app.assets.Create(r.Context(), &models.Asset{
		Filename:    header.Filename,
		ContentType: contentType,
		StorageKey:  key,
		URL:         url,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, uploadAssetResponse{
		ID:       id,
		Filename: header.Filename,
		URL:      url,
	})
}
