package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
)

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, users)
}
