package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/steps"
)

type publicForm struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TotalSteps int             `json:"totalSteps"`
	Steps      [][]model.Field `json:"steps"`
}

func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.Load(r.Context(), publicTenantRequest(r), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "public.get_form", err)
			return
		}

		partition := steps.Partition(form.Schema)
		render.JSON(w, r, publicForm{
			ID:         form.ID,
			Name:       form.Name,
			TotalSteps: len(partition),
			Steps:      partition,
		})
	}
}

func PublicGetStep(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		step, err := strconv.Atoi(chi.URLParam(r, "step"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.step")
			return
		}

		form, err := app.Forms.Load(r.Context(), publicTenantRequest(r), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "public.get_step", err)
			return
		}

		total := steps.Total(form.Schema)
		if step < 1 || step > total {
			httpx.LogNotFound(w, "public.get_step", step)
			return
		}

		render.JSON(w, r, map[string]any{
			"step":       step,
			"totalSteps": total,
			"fields":     steps.Fields(form.Schema, step),
		})
	}
}

type fieldError struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func PublicSubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Answers model.Response `json:"answers"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err := app.Forms.Load(r.Context(), publicTenantRequest(r), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogError(w, r, "public.submit.get_form", err)
			return
		}

		result, err := app.Submissions.Submit(r.Context(), form, body.Answers, publicTenantRequest(r))
		if err != nil {
			httpx.LogError(w, r, "public.submit", err)
			return
		}

		if !result.OK {
			errs := make([]fieldError, len(result.Errors))
			for i, f := range result.Errors {
				errs[i] = fieldError{f.ID, f.Label}
			}
			log.Debugf("public.submit: %d required fields missing", len(errs))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{
				"errors": errs,
			})
			return
		}

		resp := map[string]any{
			"id": result.ResponseID,
		}
		if result.Warning != nil {
			log.Warnf("public.submit.notify: %s", result.Warning)
			resp["warning"] = "your response was saved, but the form owner could not be notified"
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp)
	}
}
