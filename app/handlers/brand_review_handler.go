package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

type BrandReviewHandler struct {
	reviews *services.BrandReviewService
}

func NewBrandReviewHandler(reviews *services.BrandReviewService) *BrandReviewHandler {
	return &BrandReviewHandler{reviews: reviews}
}

func (h *BrandReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reviews.Summary(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, summary)
}

func (h *BrandReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ReviewInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	review, err := h.reviews.Create(r.Context(), helpers.UserIDFromRequest(r), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, review)
}

func (h *BrandReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.ReviewInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	claims := helpers.ClaimsFromRequest(r)
	review, err := h.reviews.Update(r.Context(), mux.Vars(r)["id"], claims.ID, claims.IsAdmin(), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, review)
}

func (h *BrandReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := helpers.ClaimsFromRequest(r)
	if err := h.reviews.Delete(r.Context(), mux.Vars(r)["id"], claims.ID, claims.IsAdmin()); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Review deleted successfully")
}
