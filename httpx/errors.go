package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/editor"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/tenant"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log a debug message, and send an HTTP response with status 404 and default text
func LogNotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	w.WriteHeader(http.StatusNotFound)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}

// Will map err onto an HTTP status, log it, and send the response.
// Schema errors carry their message; tenant and storage failures get the default
// text so nothing internal leaks to respondents.
func LogError(w http.ResponseWriter, r *http.Request, code string, err error) {
	var schemaErr *model.SchemaError
	var tenantErr *tenant.TenantResolutionError
	var persistErr *model.PersistenceError

	switch {
	case errors.Is(err, model.ErrNotFound):
		LogNotFound(w, code, err)
	case errors.Is(err, model.ErrConflict):
		LogStatus(w, http.StatusConflict, log.DebugLevel, code+".conflict")
	case errors.Is(err, editor.ErrCascadeUnconfirmed):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, map[string]any{"error": err.Error(), "confirm": true})
		log.Debugf("%s: %s", code, err)
	case errors.As(err, &schemaErr):
		LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", schemaErr.Error())
	case errors.As(err, &tenantErr):
		log.Warnf("%s: %s", code, err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	case errors.As(err, &persistErr):
		log.Errorf("%s: %s", code, err)
		w.Header().Set("Retry-After", "5")
		http.Error(w, "storage unavailable, please retry", http.StatusServiceUnavailable)
	default:
		LogInternalError(w, code, err)
	}
}
