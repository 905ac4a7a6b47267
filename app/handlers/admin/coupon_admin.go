package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) Coupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.admin.ListCoupons(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, coupons)
}

func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req services.CouponInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	coupon, err := h.admin.CreateCoupon(r.Context(), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusCreated, coupon)
}

func (h *AdminHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	var req services.CouponInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	coupon, err := h.admin.UpdateCoupon(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, coupon)
}

func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteCoupon(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Coupon deleted successfully")
}
