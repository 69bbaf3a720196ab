package main

import (
	"net/http"
)

type homeTemplateData struct {
	BaseTemplateData
	BriefCount int
	ActorCount int
	BrandCount int
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	briefs, err := app.briefs.List(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	actors, err := app.actors.List(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	brands, err := app.brands.List(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		BriefCount:       len(briefs),
		ActorCount:       len(actors),
		BrandCount:       len(brands),
	}

	app.render(w, r, http.StatusOK, "home", data)
}
