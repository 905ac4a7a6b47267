package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	users   *services.UserService
	catalog *services.CatalogService
}

func NewUserHandler(users *services.UserService, catalog *services.CatalogService) *UserHandler {
	return &UserHandler{users: users, catalog: catalog}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.ProfileInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), helpers.UserIDFromRequest(r), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.users.Dashboard(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, dashboard)
}

func (h *UserHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RecordView(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["productId"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Product view recorded")
}
