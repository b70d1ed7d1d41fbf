package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/editor"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/steps"
)

// edit decodes the request body into body, when given, and runs fn on an
// editing session of the form in the path. It writes the error response
// itself and returns ok=false on failure.
func edit(app app.App, w http.ResponseWriter, r *http.Request, code string, body any, fn func(*editor.Session) error) (form model.Form, session *editor.Session, ok bool) {
	if body != nil {
		err := render.DecodeJSON(r.Body, body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
	}

	form, session, err := app.Forms.Edit(r.Context(), adminTenantRequest(r), chi.URLParam(r, "id"), fn)
	if err != nil {
		httpx.LogError(w, r, code, err)
		return
	}
	return form, session, true
}

func AddField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Kind     model.Kind `json:"kind"`
			Step     int        `json:"step"`
			Label    string     `json:"label"`
			Required bool       `json:"required"`
		}{}

		var field model.Field
		form, _, ok := edit(app, w, r, "add_field", &body, func(ss *editor.Session) (err error) {
			// no step means the last one
			step := body.Step
			if step == 0 {
				step = steps.Total(ss.Schema)
			}
			ss.SetStep(step)

			field, err = ss.Add(body.Kind)
			if err != nil || field.IsDivider() {
				return err
			}

			patch := editor.FieldPatch{Label: &body.Label}
			if body.Required {
				patch.Required = &body.Required
			}
			ss.Schema, err = editor.UpdateField(ss.Schema, field.ID, patch)
			field, _ = ss.Schema.Find(field.ID)
			return err
		})
		if !ok {
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"field": field,
			"form":  viewOf(form),
		})
	}
}

func AddStep(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			ActiveStep int `json:"activeStep"`
		}{}

		form, session, ok := edit(app, w, r, "add_step", &body, func(ss *editor.Session) error {
			ss.SetStep(body.ActiveStep)
			ss.AddStep()
			return nil
		})
		if !ok {
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"activeStep": session.ActiveStep,
			"form":       viewOf(form),
		})
	}
}

func PatchField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch := editor.FieldPatch{}
		fieldID := chi.URLParam(r, "fieldId")

		form, _, ok := edit(app, w, r, "patch_field", &patch, func(ss *editor.Session) (err error) {
			ss.Schema, err = editor.UpdateField(ss.Schema, fieldID, patch)
			return
		})
		if !ok {
			return
		}

		render.JSON(w, r, viewOf(form))
	}
}

func DuplicateField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldID := chi.URLParam(r, "fieldId")

		form, _, ok := edit(app, w, r, "duplicate_field", nil, func(ss *editor.Session) error {
			return ss.Duplicate(fieldID)
		})
		if !ok {
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, viewOf(form))
	}
}

// DeleteField removes a field. Removing a step divider also removes the
// fields of its step, so it needs ?confirm=true; without it the answer is 409.
func DeleteField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldID := chi.URLParam(r, "fieldId")
		confirm := r.URL.Query().Get("confirm") == "true"

		var deletion editor.Deletion
		form, _, ok := edit(app, w, r, "delete_field", nil, func(ss *editor.Session) (err error) {
			deletion, err = ss.Delete(fieldID, confirm)
			return
		})
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"cascade": deletion.Cascade,
			"removed": deletion.Removed,
			"form":    viewOf(form),
		})
	}
}

func MoveField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Step  *int `json:"step"`
			Index *int `json:"index"`
		}{}
		fieldID := chi.URLParam(r, "fieldId")

		form, _, ok := edit(app, w, r, "move_field", &body, func(ss *editor.Session) (err error) {
			switch {
			case body.Step != nil:
				return ss.MoveToStep(fieldID, *body.Step)
			case body.Index != nil:
				ss.Schema, err = editor.MoveField(ss.Schema, fieldID, *body.Index)
				return err
			}
			return &model.SchemaError{Op: "move", FieldID: fieldID, Msg: "step or index required"}
		})
		if !ok {
			return
		}

		render.JSON(w, r, viewOf(form))
	}
}

func UpdateOptions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Op       string `json:"op"`
			OptionID string `json:"optionId"`
			Label    string `json:"label"`
		}{}
		fieldID := chi.URLParam(r, "fieldId")

		form, _, ok := edit(app, w, r, "update_options", &body, func(ss *editor.Session) (err error) {
			var op editor.OptionOp
			switch body.Op {
			case "add":
				op = editor.AddOption{Label: body.Label}
			case "rename":
				op = editor.RenameOption{ID: body.OptionID, Label: body.Label}
			case "remove":
				op = editor.RemoveOption{ID: body.OptionID}
			default:
				return &model.SchemaError{Op: "options", FieldID: fieldID, Msg: "unknown op " + body.Op}
			}
			ss.Schema, err = editor.UpdateCheckboxOptions(ss.Schema, fieldID, op)
			return
		})
		if !ok {
			return
		}

		render.JSON(w, r, viewOf(form))
	}
}
