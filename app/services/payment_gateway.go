package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	razorpay "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
)

const GatewayCurrency = "INR"

// GatewayOrder is the remote order a client pays against. Amount is in
// minor units (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status,omitempty"`
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

func NewRazorpayGateway(client *razorpay.Client, keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{client: client, keyID: keyID, secret: secret}
}

func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateOrder calls the Razorpay orders API. The SDK has no context support,
// so ctx is only checked before the call.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (*GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": GatewayCurrency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		logger.WithCtx(ctx).Error("RazorpayGateway.CreateOrder: request failed", "receipt", receipt, "amount", amountMinor, "error", err)
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("failed to create razorpay order: response has no id")
	}
	order := &GatewayOrder{ID: id, Amount: amountMinor, Currency: GatewayCurrency, Receipt: receipt}
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		order.Currency = cur
	}
	if st, ok := body["status"].(string); ok {
		order.Status = st
	}
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 of "order_id|payment_id".
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}
	attrs := map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": paymentID,
	}
	return rzputils.VerifyPaymentSignature(attrs, signature, g.secret)
}
