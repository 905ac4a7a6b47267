package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, categories)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req services.CategoryInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := h.admin.CreateCategory(r.Context(), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req services.CategoryInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := h.admin.UpdateCategory(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Category deleted successfully")
}
