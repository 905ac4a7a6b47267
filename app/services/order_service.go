package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/metrics"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotTemporary = errors.New("order is not temporary")

type OrderLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	Items           []OrderLine            `json:"items" validate:"dive"`
	CouponCode      string                 `json:"coupon_code"`
}

type PaymentConfirmation struct {
	PaymentID      string `json:"razorpay_payment_id"`
	GatewayOrderID string `json:"razorpay_order_id"`
	Signature      string `json:"razorpay_signature"`
}

// CheckoutSession is what the client needs to open the gateway's payment form.
type CheckoutSession struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type PlacedOrder struct {
	*models.Order
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	RazorpayOrder   *CheckoutSession       `json:"razorpay_order,omitempty"`
}

type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "card", Name: "Credit/Debit Card", Description: "Pay with Visa, Mastercard, or other cards", Enabled: true},
		{ID: "cod", Name: "Cash on Delivery", Description: "Pay when you receive your order", Enabled: true},
	}
}

var adminStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

var statusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func CanTransition(from, to string) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	db            *gorm.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	productRepo   repositories.ProductRepository
	cartRepo      repositories.CartRepository
	userRepo      repositories.UserRepository
	gateway       PaymentGateway
	mailer        EmailSender
	now           func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepository,
	cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository,
	gateway PaymentGateway,
	mailer EmailSender,
) *OrderService {
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		mailer:        mailer,
		now:           time.Now,
	}
}

// buildItems snapshots current prices and names. It runs outside the write
// transaction.
func (s *OrderService) buildItems(ctx context.Context, lines []OrderLine) ([]models.OrderItem, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("Order must contain items")
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, apperr.Validation("Quantity must be at least 1")
		}
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, apperr.NotFound("Product not found").With("product_id", l.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       l.Quantity,
			PriceAtTime:    p.Price,
			DiscountAmount: decimal.Zero,
		})
	}
	return items, nil
}

// applyCartDiscounts copies coupon discounts stored on the user's cart rows
// onto the matching order items and returns the order totals.
func applyCartDiscounts(items []models.OrderItem, discounts map[string]decimal.Decimal) (total, discount decimal.Decimal) {
	gross := decimal.Zero
	discount = decimal.Zero
	for i := range items {
		line := items[i].PriceAtTime.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		gross = gross.Add(line)
		if d, ok := discounts[items[i].ProductID]; ok && d.IsPositive() {
			if d.GreaterThan(line) {
				d = line
			}
			items[i].DiscountAmount = d
			discount = discount.Add(d)
		}
	}
	total = gross.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total, discount
}

func (s *OrderService) decrementStock(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		ok, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if !ok {
			return apperr.Validation(fmt.Sprintf("Insufficient stock for %s", item.ProductName))
		}
	}
	return nil
}

func (s *OrderService) Create(ctx context.Context, userID string, in CreateOrderInput) (*PlacedOrder, string, error) {
	if in.PaymentMethod != models.PaymentMethodCOD && in.PaymentMethod != models.PaymentMethodOnline {
		return nil, "", apperr.Validation("Invalid payment method")
	}

	items, err := s.buildItems(ctx, in.Items)
	if err != nil {
		return nil, "", err
	}
	if fields, err := helpers.ValidateStruct(in.ShippingAddress); err != nil {
		return nil, "", apperr.Validation("Shipping address is incomplete").With("fields", fields)
	}

	order := &models.Order{
		UserID:        userID,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		CouponCode:    in.CouponCode,
	}
	order.SetShipping(in.ShippingAddress)

	if in.PaymentMethod == models.PaymentMethodOnline {
		order.Status = models.OrderStatusPendingPayment
		order.IsTemporary = true
		placed, err := s.createOnline(ctx, order, items)
		if err != nil {
			return nil, "", err
		}
		return placed, "Order initiated", nil
	}

	order.Status = models.OrderStatusPending
	if err := s.createCOD(ctx, order, items); err != nil {
		return nil, "", err
	}
	s.sendConfirmation(ctx, order)
	return &PlacedOrder{Order: order, ShippingAddress: order.Shipping()}, "Order created successfully", nil
}

func (s *OrderService) insertOrder(ctx context.Context, tx *gorm.DB, order *models.Order, items []models.OrderItem) error {
	discounts, err := s.cartRepo.DiscountsByUser(ctx, tx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to read cart discounts: %w", err)
	}
	order.TotalAmount, order.DiscountAmount = applyCartDiscounts(items, discounts)

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.CreateBatch(ctx, tx, items); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}
	order.Items = items
	order.PaymentMethodDisplay = models.PaymentMethodDisplay(order.PaymentMethod)
	return nil
}

func (s *OrderService) createCOD(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.insertOrder(ctx, tx, order, items); err != nil {
			return err
		}
		if err := s.decrementStock(ctx, tx, items); err != nil {
			return err
		}
		if err := s.cartRepo.ClearByUser(ctx, tx, order.UserID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.WithCtx(ctx).Warn("OrderService.createCOD: rolled back", "user_id", order.UserID, "error", err)
		return err
	}
	metrics.OrdersCreated.WithLabelValues(models.PaymentMethodCOD).Inc()
	logger.WithCtx(ctx).Info("OrderService.createCOD: order placed", "order_id", order.ID, "total", order.TotalAmount.String())
	return nil
}

// createOnline commits a temporary order, then opens a gateway order for it.
// When the gateway call fails the temporary order is removed again.
func (s *OrderService) createOnline(ctx context.Context, order *models.Order, items []models.OrderItem) (*PlacedOrder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.insertOrder(ctx, tx, order, items)
	})
	if err != nil {
		return nil, err
	}

	if !order.TotalAmount.IsPositive() {
		s.discardTemporary(ctx, order.ID)
		return nil, apperr.Validation("Invalid amount")
	}

	receipt := fmt.Sprintf("order_%s_%d", order.ID, s.now().UnixMilli())
	gwOrder, err := s.gateway.CreateOrder(ctx, calc.ToMinorUnits(order.TotalAmount), receipt)
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("create_order").Inc()
		s.discardTemporary(ctx, order.ID)
		return nil, apperr.Upstream("Failed to create Razorpay order", err)
	}

	if err := s.orderRepo.SetGatewayOrderID(ctx, order.ID, gwOrder.ID); err != nil {
		return nil, fmt.Errorf("failed to store gateway order id: %w", err)
	}
	order.GatewayOrderID = gwOrder.ID
	metrics.OrdersCreated.WithLabelValues(models.PaymentMethodOnline).Inc()

	return &PlacedOrder{
		Order:           order,
		ShippingAddress: order.Shipping(),
		RazorpayOrder: &CheckoutSession{
			ID:       gwOrder.ID,
			Amount:   gwOrder.Amount,
			Currency: gwOrder.Currency,
			Key:      s.gateway.KeyID(),
		},
	}, nil
}

func (s *OrderService) discardTemporary(ctx context.Context, orderID string) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Delete(ctx, tx, orderID)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("OrderService.discardTemporary: failed to remove order", "order_id", orderID, "error", err)
	}
}

// CreateGatewayOrder opens a standalone gateway order for amount rupees.
func (s *OrderService) CreateGatewayOrder(ctx context.Context, amount decimal.Decimal, reference string) (*CheckoutSession, error) {
	if !amount.IsPositive() {
		return nil, apperr.Validation("Invalid amount")
	}
	if reference == "" {
		reference = "manual"
	}
	receipt := fmt.Sprintf("order_%s_%d", reference, s.now().UnixMilli())
	gwOrder, err := s.gateway.CreateOrder(ctx, calc.ToMinorUnits(amount), receipt)
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("create_order").Inc()
		return nil, apperr.Upstream("Failed to create Razorpay order", err)
	}
	return &CheckoutSession{ID: gwOrder.ID, Amount: gwOrder.Amount, Currency: gwOrder.Currency, Key: s.gateway.KeyID()}, nil
}

func (s *OrderService) CancelPayment(ctx context.Context, userID, orderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindTemporaryForUser(ctx, tx, orderID, userID)
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		if order == nil {
			return apperr.NotFound("Order not found or not a temporary order")
		}
		if err := s.orderRepo.Delete(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// ConfirmPayment finalizes a temporary order after the gateway signature is
// verified. Replaying a confirmation with the same payment id succeeds
// without side effects.
func (s *OrderService) ConfirmPayment(ctx context.Context, userID, orderID string, in PaymentConfirmation) (*models.Order, error) {
	if !s.gateway.VerifySignature(in.GatewayOrderID, in.PaymentID, in.Signature) {
		metrics.PaymentsFailed.WithLabelValues("signature").Inc()
		return nil, apperr.Validation("Invalid payment signature")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindTemporaryForUser(ctx, tx, orderID, userID)
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		if order == nil {
			return errNotTemporary
		}
		// A signature only proves payment for the gateway order it names, so
		// the order must already be bound to that gateway order.
		if order.GatewayOrderID == "" || order.GatewayOrderID != in.GatewayOrderID {
			return apperr.Validation("Invalid payment signature")
		}

		if err := s.orderRepo.MarkPaid(ctx, tx, order.ID, in.PaymentID, in.GatewayOrderID); err != nil {
			return fmt.Errorf("failed to confirm order: %w", err)
		}
		if err := s.decrementStock(ctx, tx, order.Items); err != nil {
			return err
		}
		if err := s.cartRepo.ClearByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})

	if errors.Is(err, errNotTemporary) {
		existing, lookupErr := s.orderRepo.GetByID(ctx, orderID)
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to load order: %w", lookupErr)
		}
		if existing != nil && existing.UserID == userID && !existing.IsTemporary && in.PaymentID != "" && existing.PaymentID == in.PaymentID {
			logger.WithCtx(ctx).Info("OrderService.ConfirmPayment: already confirmed", "order_id", orderID)
			return existing, nil
		}
		return nil, apperr.NotFound("Order not found or not a temporary order")
	}
	if err != nil {
		metrics.PaymentsFailed.WithLabelValues("confirm").Inc()
		logger.WithCtx(ctx).Warn("OrderService.ConfirmPayment: rolled back", "order_id", orderID, "error", err)
		return nil, err
	}

	metrics.PaymentsConfirmed.Inc()
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	s.sendConfirmation(ctx, order)
	return order, nil
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.mailer == nil || order == nil {
		return
	}
	email := order.UserEmail
	if email == "" {
		user, err := s.userRepo.FindByID(ctx, order.UserID)
		if err != nil || user == nil {
			logger.WithCtx(ctx).Warn("OrderService.sendConfirmation: user lookup failed", "order_id", order.ID, "error", err)
			return
		}
		email = user.Email
	}
	if err := s.mailer.SendHTMLEmail(email, "Order confirmation", BuildOrderConfirmationEmailBody(order)); err != nil {
		logger.WithCtx(ctx).Warn("OrderService.sendConfirmation: email not sent", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindForUser(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !adminStatuses[status] {
		return nil, apperr.Validation("Invalid status")
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	if order.IsTemporary {
		return nil, apperr.Validation("Cannot change status of an unpaid order")
	}
	if order.Status == status {
		return order, nil
	}
	if !CanTransition(order.Status, status) {
		return nil, apperr.Validation(fmt.Sprintf("Cannot change status from %s to %s", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	logger.WithCtx(ctx).Info("OrderService.UpdateStatus: status changed", "order_id", orderID, "status", status)
	return order, nil
}

// PurgeTemporary deletes temporary orders created before now-olderThan and
// returns how many were removed.
func (s *OrderService) PurgeTemporary(ctx context.Context, olderThan time.Duration) (int, error) {
	orders, err := s.orderRepo.TemporaryOlderThan(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to list temporary orders: %w", err)
	}
	removed := 0
	for _, o := range orders {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.orderRepo.Delete(ctx, tx, o.ID)
		})
		if err != nil {
			return removed, fmt.Errorf("failed to delete order %s: %w", o.ID, err)
		}
		removed++
	}
	return removed, nil
}
