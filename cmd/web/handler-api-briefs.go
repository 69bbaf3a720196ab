package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/repositories"
)

// apiCreateBrief persists a brief with all of its scenes. Scene numbers are
// resequenced before validation so callers may send scenes in any order.
func (app *application) apiCreateBrief(w http.ResponseWriter, r *http.Request) {
	var brief models.Brief
	if err := app.readJSON(w, r, &brief); err != nil {
		app.apiError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}
	brief.Scenes = models.ResequenceScenes(brief.Scenes)

	id, err := app.briefs.Create(r.Context(), &brief)
	if err != nil {
		if validationErr := briefValidationMessage(err); validationErr != "" {
			app.apiError(w, r, http.StatusUnprocessableEntity, validationErr)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, map[string]string{"id": id, "title": brief.Title})
}

func briefValidationMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyTitle):
		return "Brief title is required."
	case errors.Is(err, models.ErrNoLanguage):
		return "Brief language is required."
	case errors.Is(err, models.ErrNoScenes):
		return "A brief needs at least one scene."
	case errors.Is(err, models.ErrEmptyScript):
		return "Every scene needs a script."
	case errors.Is(err, models.ErrUnknownTone):
		return "One of the scene tones is not in the allowed vocabulary."
	case errors.Is(err, models.ErrInvalidScene):
		return "Scene numbering is invalid."
	default:
		return ""
	}
}

func (app *application) apiListBriefs(w http.ResponseWriter, r *http.Request) {
	briefs, err := app.briefs.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, briefs)
}

func (app *application) apiGetBrief(w http.ResponseWriter, r *http.Request) {
	brief, err := app.briefs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.apiError(w, r, http.StatusNotFound, "Brief not found.")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, brief)
}

type sceneImageRequest struct {
	Prompt string `json:"prompt"`
}

type sceneImageResponse struct {
	ImageURL string `json:"imageUrl"`
	AssetID  string `json:"assetId"`
}

// apiGenerateSceneImage generates an image for one scene, stores it as a local asset
// and updates the scene to point at it. The prompt defaults to the scene's visual
// description.
func (app *application) apiGenerateSceneImage(w http.ResponseWriter, r *http.Request) {
	briefID := r.PathValue("id")
	sceneNumber, err := strconv.Atoi(r.PathValue("sceneNumber"))
	if err != nil {
		app.apiError(w, r, http.StatusBadRequest, "Scene number must be an integer.")
		return
	}

	var req sceneImageRequest
	if err = app.readJSON(w, r, &req); err != nil {
		app.apiError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}

	brief, err := app.briefs.Get(r.Context(), briefID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.apiError(w, r, http.StatusNotFound, "Brief not found.")
			return
		}
		app.serverError(w, r, err)
		return
	}

	prompt := req.Prompt
	if prompt == "" {
		for _, scene := range brief.Scenes {
			if scene.SceneNumber == sceneNumber {
				prompt = scene.Visual.Description
				break
			}
		}
	}
	if prompt == "" {
		app.apiError(w, r, http.StatusUnprocessableEntity,
			"The scene has no visual description and no prompt was given.")
		return
	}

	imageBytes, err := app.images.GenerateImagePNG(r.Context(), prompt)
	if err != nil {
		app.apiError(w, r, http.StatusBadGateway, "Image generation failed. Please try again.")
		return
	}

	filename := fmt.Sprintf("brief-%s-scene-%d.png", briefID, sceneNumber)
	key, url, err := app.blobs.Put(imageBytes, filename, "image/png")
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	assetID, err := app.assets.Create(r.Context(), &models.Asset{
		Filename:    filename,
		ContentType: "image/png",
		StorageKey:  key,
		URL:         url,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err = app.briefs.UpdateSceneImage(r.Context(), briefID, sceneNumber, url); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.apiError(w, r, http.StatusNotFound, "Scene not found.")
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, sceneImageResponse{ImageURL: url, AssetID: assetID})
}
