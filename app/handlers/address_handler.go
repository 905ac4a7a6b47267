package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

type AddressHandler struct {
	addresses *services.AddressService
}

func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.AddressInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	address, err := h.addresses.Create(r.Context(), helpers.UserIDFromRequest(r), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.AddressInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	address, err := h.addresses.Update(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"], req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.addresses.Delete(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Address deleted successfully")
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	address, err := h.addresses.SetDefault(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, address)
}
