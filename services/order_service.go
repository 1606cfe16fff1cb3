package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/store"
)

// Mailer sends order notifications. Failures are logged, never surfaced to
// the buyer.
type Mailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
}

// OrderService is the order placement and stock reconciliation workflow.
type OrderService interface {
	// PlaceOrder converts the user's cart into an order: snapshots each
	// product at its current catalog price, prices the order, creates it,
	// decrements stock and consumes the cart. The side effects run as a
	// saga; any failure rolls back everything already applied.
	PlaceOrder(ctx context.Context, userID primitive.ObjectID, shipping models.ShippingInfo, payment models.PaymentInfo) (*models.Order, error)
	// MyOrders returns the caller's orders, newest first.
	MyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// AllOrders returns every order, newest first, plus the aggregate
	// total across the set.
	AllOrders(ctx context.Context) ([]models.Order, float64, error)
	// UpdateStatus drives the order state machine. Entering Cancelled
	// restores stock for every order item exactly once.
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, target string) (*models.Order, error)
}

type orderService struct {
	carts   store.CartStore
	catalog store.ProductCatalog
	stock   store.StockLedger
	orders  store.OrderStore
	users   store.UserStore
	mailer  Mailer
	logger  *slog.Logger
}

func NewOrderService(
	carts store.CartStore,
	catalog store.ProductCatalog,
	stock store.StockLedger,
	orders store.OrderStore,
	users store.UserStore,
	mailer Mailer,
	logger *slog.Logger,
) OrderService {
	return &orderService{
		carts:   carts,
		catalog: catalog,
		stock:   stock,
		orders:  orders,
		users:   users,
		mailer:  mailer,
		logger:  logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, shipping models.ShippingInfo, payment models.PaymentInfo) (*models.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			return nil, models.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	// Snapshot every line item at the current catalog price. Pricing is
	// at-checkout, not at add-to-cart time.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				return nil, models.ErrProductUnavailable
			}
			return nil, err
		}
		items = append(items, models.OrderItem{
			Name:      product.Name,
			Quantity:  line.Quantity,
			Image:     product.FirstImageURL(),
			Price:     product.Price,
			ProductID: product.ID,
		})
	}

	quote := PriceItems(items)
	now := time.Now()
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		ShippingInfo:  shipping,
		UserID:        userID,
		OrderItems:    items,
		PaymentInfo:   payment,
		PaidAt:        now,
		ItemsPrice:    quote.ItemsPrice,
		TaxPrice:      quote.TaxPrice,
		ShippingPrice: quote.ShippingPrice,
		TotalPrice:    quote.TotalPrice,
		Status:        models.StatusProcessing,
		CreatedAt:     now,
	}

	sg := newSaga(s.logger)
	sg.then("create order",
		func(ctx context.Context) error { return s.orders.Insert(ctx, order) },
		func(ctx context.Context) error { return s.orders.Remove(ctx, order.ID) },
	)
	for _, item := range items {
		item := item
		sg.then("reserve stock",
			func(ctx context.Context) error {
				err := s.stock.Adjust(ctx, item.ProductID, -item.Quantity)
				if errors.Is(err, models.ErrProductNotFound) {
					return models.ErrProductUnavailable
				}
				return err
			},
			func(ctx context.Context) error { return s.stock.Adjust(ctx, item.ProductID, item.Quantity) },
		)
	}
	sg.then("consume cart",
		func(ctx context.Context) error {
			deleted, err := s.carts.Delete(ctx, cart.ID)
			if err != nil {
				return err
			}
			if !deleted {
				// Another checkout for this user consumed the cart between
				// our read and now. Exactly one concurrent checkout wins.
				return models.ErrCartCheckedOut
			}
			return nil
		},
		nil,
	)
	if err := sg.run(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", order.ID.Hex(),
		"user_id", userID.Hex(),
		"total", order.TotalPrice,
		"items", len(order.OrderItems))

	if s.mailer != nil {
		go s.sendConfirmation(ctx, order)
	}
	return order, nil
}

func (s *orderService) sendConfirmation(ctx context.Context, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.logger.Warn("confirmation email skipped", "order_id", order.ID.Hex(), "error", err)
		return
	}
	if err := s.mailer.SendOrderConfirmation(user.Email, order); err != nil {
		s.logger.Warn("confirmation email failed", "order_id", order.ID.Hex(), "error", err)
	}
}

func (s *orderService) MyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *orderService) AllOrders(ctx context.Context) ([]models.Order, float64, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	var totalAmount float64
	for _, order := range orders {
		totalAmount += order.TotalPrice
	}
	return orders, Round2(totalAmount), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, target string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusDelivered {
		return nil, models.ErrAlreadyDelivered
	}
	if target == "" {
		return nil, models.ErrMissingStatus
	}
	status, err := models.ParseOrderStatus(target)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, models.ErrInvalidTransition
	}

	var deliveredAt *time.Time
	if status == models.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	// The CAS on the previously observed status is what makes the stock
	// restore below exactly-once: only the request that actually moved the
	// order into Cancelled performs it.
	updated, err := s.orders.UpdateStatus(ctx, order.ID, order.Status, status, deliveredAt)
	if err != nil {
		return nil, err
	}

	if status == models.StatusCancelled {
		s.restoreStock(ctx, updated)
	}

	s.logger.Info("order status updated",
		"order_id", updated.ID.Hex(),
		"from", order.Status,
		"to", updated.Status)
	return updated, nil
}

// restoreStock reverses the checkout decrements after a cancellation. It
// runs on a cancellation-detached context: once the order is Cancelled the
// restore must complete even if the caller goes away.
func (s *orderService) restoreStock(ctx context.Context, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	for _, item := range order.OrderItems {
		if err := s.stock.Adjust(ctx, item.ProductID, item.Quantity); err != nil {
			// A deleted product cannot take its stock back; anything else
			// needs operator attention.
			s.logger.Error("stock restore failed",
				"order_id", order.ID.Hex(),
				"product_id", item.ProductID.Hex(),
				"quantity", item.Quantity,
				"error", err)
		}
	}
}
