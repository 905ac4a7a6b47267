package handlers

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"gorm.io/gorm"
)

type HomeHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewHomeHandler(db *gorm.DB) *HomeHandler {
	return &HomeHandler{db: db, now: time.Now}
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// TestDB pings the database and reports round-trip success.
func (h *HomeHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("HomeHandler.TestDB: ping failed", "error", err)
		helpers.RespondJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"dbTime":  h.now().UTC().Format(time.RFC3339),
		"message": "Database connection successful",
	})
}
