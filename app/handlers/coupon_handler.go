package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/shopspring/decimal"
)

type CouponHandler struct {
	coupons *services.CouponService
}

func NewCouponHandler(coupons *services.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type couponRequest struct {
	Code      string              `json:"code" validate:"required"`
	CartItems []services.CartLine `json:"cart_items" validate:"dive"`
}

type validatedCoupon struct {
	*models.Coupon
	DiscountAmount decimal.Decimal         `json:"discount_amount"`
	EligibleAmount decimal.Decimal         `json:"eligible_amount"`
	Items          []services.LineDiscount `json:"items"`
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, coupons)
}

func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	q, err := h.coupons.Validate(r.Context(), req.Code, req.CartItems)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"coupon": validatedCoupon{
			Coupon:         q.Coupon,
			DiscountAmount: q.DiscountAmount,
			EligibleAmount: q.EligibleAmount,
			Items:          q.Lines,
		},
	})
}

func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	q, err := h.coupons.Apply(r.Context(), helpers.UserIDFromRequest(r), req.Code, req.CartItems)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"items":          q.Lines,
		"total_discount": q.DiscountAmount,
	})
}
