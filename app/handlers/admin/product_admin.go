package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, total, err := h.catalog.ListAdminProducts(r.Context(), helpers.ProductFilterFromQuery(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
		"total":    total,
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req services.ProductInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	product, err := h.catalog.CreateProduct(r.Context(), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req services.ProductInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	product, err := h.catalog.UpdateProduct(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Product deleted successfully")
}
