package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/gorilla/mux"
)

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	order, err := h.orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, order)
}
