package main

import (
	"net/http"

	"github.com/mkromann/ugc-builder/internal/models"
)

type brandsTemplateData struct {
	BaseTemplateData
	Brands []models.Brand
}

func (app *application) brandsTemplateData(r *http.Request) (brandsTemplateData, error) {
	brands, err := app.brands.List(r.Context())
	if err != nil {
		return brandsTemplateData{}, err
	}
	return brandsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Brands:           brands,
	}, nil
}

func (app *application) brandsPage(w http.ResponseWriter, r *http.Request) {
	data, err := app.brandsTemplateData(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "brands", data)
}

func (app *application) createBrand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("name") == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	brand := models.Brand{
		Name:                r.PostForm.Get("name"),
		Description:         r.PostForm.Get("description"),
		Website:             r.PostForm.Get("website"),
		PrimaryContactName:  r.PostForm.Get("primary_contact_name"),
		PrimaryContactEmail: r.PostForm.Get("primary_contact_email"),
	}

	if _, err := app.brands.Create(r.Context(), &brand); err != nil {
		app.serverError(w, r, err)
		return
	}

	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		data, err := app.brandsTemplateData(r)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		app.renderTemplate(w, r, http.StatusOK, "brands", "brand-rows", data)
		return
	}
	http.Redirect(w, r, "/brands", http.StatusSeeOther)
}
