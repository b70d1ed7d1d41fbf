package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/response"
	"github.com/mbolis/quick-form/steps"
)

type formView struct {
	model.Form
	TotalSteps      int      `json:"totalSteps"`
	DuplicateLabels []string `json:"duplicateLabels,omitempty"`
}

func viewOf(form model.Form) formView {
	return formView{
		Form:            form,
		TotalSteps:      steps.Total(form.Schema),
		DuplicateLabels: response.DuplicateLabels(form.Schema),
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err = app.Forms.Create(r.Context(), adminTenantRequest(r), form)
		if err != nil {
			httpx.LogError(w, r, "create_form", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": form.ID,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Forms.List(r.Context(), adminTenantRequest(r))
		if err != nil {
			httpx.LogError(w, r, "list_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.Load(r.Context(), adminTenantRequest(r), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "get_form", err)
			return
		}

		render.JSON(w, r, viewOf(form))
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		form.ID = chi.URLParam(r, "id")

		form, err = app.Forms.Save(r.Context(), adminTenantRequest(r), form)
		if err != nil {
			httpx.LogError(w, r, "update_form", err)
			return
		}

		render.JSON(w, r, viewOf(form))
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Forms.Delete(r.Context(), adminTenantRequest(r), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := app.Forms.Responses(r.Context(), adminTenantRequest(r), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": submissions,
		})
	}
}
