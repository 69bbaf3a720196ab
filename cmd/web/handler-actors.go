package main

import (
	"net/http"

	"github.com/mkromann/ugc-builder/internal/models"
)

type actorsTemplateData struct {
	BaseTemplateData
	Actors     []models.Actor
	Genders    []models.Gender
	ActorTypes []models.ActorType
}

func (app *application) actorsTemplateData(r *http.Request) (actorsTemplateData, error) {
	actors, err := app.actors.List(r.Context())
	if err != nil {
		return actorsTemplateData{}, err
	}
	return actorsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Actors:           actors,
		Genders: []models.Gender{
			models.GenderFemale,
			models.GenderMale,
			models.GenderNonBinary,
			models.GenderPreferNotToSay,
			models.GenderOther,
		},
		ActorTypes: []models.ActorType{models.ActorTypeHuman, models.ActorTypeAI},
	}, nil
}

func (app *application) actorsPage(w http.ResponseWriter, r *http.Request) {
	data, err := app.actorsTemplateData(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "actors", data)
}

func (app *application) createActor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("name") == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	actor := models.Actor{
		Name:              r.PostForm.Get("name"),
		Nationality:       r.PostForm.Get("nationality"),
		Gender:            models.Gender(r.PostForm.Get("gender")),
		ActorType:         models.ActorType(r.PostForm.Get("actor_type")),
		ProfileImageURL:   r.PostForm.Get("profile_image_url"),
		VisualDescription: r.PostForm.Get("visual_description"),
		ElevenLabsVoiceID: r.PostForm.Get("elevenlabs_voice_id"),
	}
	if actor.Gender == "" {
		actor.Gender = models.GenderPreferNotToSay
	}
	if actor.ActorType == "" {
		actor.ActorType = models.ActorTypeHuman
	}

	if _, err := app.actors.Create(r.Context(), &actor); err != nil {
		app.serverError(w, r, err)
		return
	}

	// htmx swaps just the table body, full form posts reload the page.
	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		data, err := app.actorsTemplateData(r)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		app.renderTemplate(w, r, http.StatusOK, "actors", "actor-rows", data)
		return
	}
	http.Redirect(w, r, "/actors", http.StatusSeeOther)
}
