package main

import (
	"net/http"

	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/repositories"
)

type briefsTemplateData struct {
	BaseTemplateData
	Briefs []models.Brief
}

func (app *application) briefsPage(w http.ResponseWriter, r *http.Request) {
	briefs, err := app.briefs.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	data := briefsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Briefs:           briefs,
	}
	app.render(w, r, http.StatusOK, "briefs", data)
}

type briefCreateTemplateData struct {
	BaseTemplateData
	URL   string
	Error string
}

func (app *application) briefCreatePage(w http.ResponseWriter, r *http.Request) {
	data := briefCreateTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "briefcreate", data)
}

// briefCreateSubmit runs the generation pipeline from the web form, saves the draft
// and lands on its detail page. Pipeline failures re-render the form with the
// classified message.
func (app *application) briefCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	rawURL := r.PostForm.Get("url")

	brief, err := app.generator.Generate(r.Context(), rawURL)
	if err != nil {
		status, message := generationFailure(err)
		if status == http.StatusInternalServerError {
			app.serverError(w, r, err)
			return
		}
		data := briefCreateTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			URL:              rawURL,
			Error:            message,
		}
		app.render(w, r, status, "briefcreate", data)
		return
	}

	id, err := app.briefs.Create(r.Context(), brief)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/briefs/"+id, http.StatusSeeOther)
}

type briefDetailTemplateData struct {
	BaseTemplateData
	Brief *models.Brief
}

func (app *application) briefDetailPage(w http.ResponseWriter, r *http.Request) {
	brief, err := app.briefs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	data := briefDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Brief:            brief,
	}
	app.render(w, r, http.StatusOK, "briefdetail", data)
}
