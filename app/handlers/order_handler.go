package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type gatewayOrderRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"order_id"`
	Receipt string          `json:"receipt"`
}

type verifyPaymentRequest struct {
	services.PaymentConfirmation
	OrderID string `json:"order_id" validate:"required"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrderInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	placed, msg, err := h.orders.Create(r.Context(), helpers.UserIDFromRequest(r), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": msg,
		"order":   placed,
	})
}

func (h *OrderHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.CancelPayment(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"]); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondMessage(w, http.StatusOK, "Order cancelled successfully")
}

func (h *OrderHandler) confirm(w http.ResponseWriter, r *http.Request, orderID string, in services.PaymentConfirmation) {
	order, err := h.orders.ConfirmPayment(r.Context(), helpers.UserIDFromRequest(r), orderID, in)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Payment successful and order confirmed",
		"order_id": order.ID,
	})
}

func (h *OrderHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req services.PaymentConfirmation
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	h.confirm(w, r, mux.Vars(r)["id"], req)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), helpers.UserIDFromRequest(r), mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	var req gatewayOrderRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ref := req.Receipt
	if ref == "" {
		ref = req.OrderID
	}
	session, err := h.orders.CreateGatewayOrder(r.Context(), req.Amount, ref)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, session)
}

// VerifyPayment is the gateway-callback flavour of PaymentSuccess with the
// order id in the body.
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	h.confirm(w, r, req.OrderID, req.PaymentConfirmation)
}

func (h *OrderHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	helpers.RespondJSON(w, http.StatusOK, services.PaymentMethods())
}
