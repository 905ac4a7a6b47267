package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/utils/renderer"
)

var Render = renderer.New()

func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	if err := Render.JSON(w, status, v); err != nil {
		logger.Error("RespondJSON: failed to render response", "error", err)
	}
}

func RespondMessage(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]interface{}{"message": msg})
}

// RespondError writes {"error": message} with the status derived from err.
// Errors that are not *apperr.Error are logged and reported as 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	body := map[string]interface{}{}

	if e, ok := apperr.As(err); ok {
		body["error"] = e.Message
		for k, v := range e.Extra {
			body[k] = v
		}
		if status >= http.StatusInternalServerError {
			logger.WithCtx(r.Context()).Error(e.Message, "error", e.Err, "path", r.URL.Path)
		}
	} else {
		logger.WithCtx(r.Context()).Error("unhandled error", "error", err, "path", r.URL.Path)
		body["error"] = "Server error"
	}

	RespondJSON(w, status, body)
}

// DecodeAndValidate reads a JSON body into dst and checks its validate tags.
// It writes the 400 response itself and returns false on failure.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return false
	}
	if fields, err := ValidateStruct(dst); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": fields,
		})
		return false
	}
	return true
}

func UserIDFromRequest(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyUserID).(string)
	return id
}

func ClaimsFromRequest(r *http.Request) *Claims {
	c, _ := r.Context().Value(ContextKeyClaims).(*Claims)
	return c
}
