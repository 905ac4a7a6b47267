package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, total, err := h.catalog.ListProducts(r.Context(), helpers.ProductFilterFromQuery(r))
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

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.catalog.ListReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, reviews)
}

func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req services.ReviewInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	review, err := h.catalog.AddReview(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"], req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, review)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) Category(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, category)
}
