package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/routes/middlewares"
	"github.com/mbolis/quick-form/tenant"
)

func Wire(app app.App) http.Handler {
	requestLogger := middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true})

	root := chi.NewRouter()
	root.Use(requestLogger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get(`/forms/{id}`, PublicGetForm(app))
	api.Get(`/forms/{id}/steps/{step:^\d+$}`, PublicGetStep(app))
	api.Post(`/forms/{id}/responses`, PublicSubmitResponse(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD form
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get(`/forms/{id}`, GetForm(app))
		r.Put(`/forms/{id}`, UpdateForm(app))
		r.Delete(`/forms/{id}`, DeleteForm(app))

		// schema editing
		r.Post(`/forms/{id}/fields`, AddField(app))
		r.Post(`/forms/{id}/steps`, AddStep(app))
		r.Patch(`/forms/{id}/fields/{fieldId}`, PatchField(app))
		r.Delete(`/forms/{id}/fields/{fieldId}`, DeleteField(app))
		r.Post(`/forms/{id}/fields/{fieldId}/duplicate`, DuplicateField(app))
		r.Post(`/forms/{id}/fields/{fieldId}/move`, MoveField(app))
		r.Post(`/forms/{id}/fields/{fieldId}/options`, UpdateOptions(app))

		r.Get(`/forms/{id}/responses`, GetFormResponses(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

// publicTenantRequest collects the inputs of tenant resolution for anonymous
// and embedded rendering: the ?tenant= embed parameter and the form in the path.
func publicTenantRequest(r *http.Request) tenant.Request {
	return tenant.Request{
		Explicit: r.URL.Query().Get("tenant"),
		Session:  middlewares.Claims(r)[httpx.TenantClaim],
		FormID:   chi.URLParam(r, "id"),
	}
}

// adminTenantRequest scopes an authenticated request to the tenant claim of
// its token. The embed parameter is ignored here.
func adminTenantRequest(r *http.Request) tenant.Request {
	return tenant.Request{
		Session: middlewares.Claims(r)[httpx.TenantClaim],
		FormID:  chi.URLParam(r, "id"),
	}
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
