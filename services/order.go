package services

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ramani-storefront/models"
	"ramani-storefront/store"
	"ramani-storefront/utils"
)

// OrderService turns a checkout payload into an order and empties the cart
type OrderService struct {
	orders   OrderStore
	carts    CartStore
	mailer   utils.Mailer
	now      func() time.Time
	dispatch func(func())
}

func NewOrderService(orders OrderStore, carts CartStore, mailer utils.Mailer) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		mailer:   mailer,
		now:      time.Now,
		dispatch: func(f func()) { go f() },
	}
}

const orderNumberAttempts = 5

// OrderNumber formats the public order number for a creation time.
func OrderNumber(t time.Time) string {
	return "RM" + strconv.FormatInt(t.UnixMilli(), 10)
}

// Place stores the order as submitted and then clears the customer's cart.
// The two writes are independent: a failed cart clear is logged, not returned.
func (s *OrderService) Place(ctx context.Context, customer utils.Principal, req models.PlaceOrderRequest) (*models.Order, error) {
	userID, err := ParseID("userId", customer.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		UserID:          userID,
		OrderNumber:     OrderNumber(now),
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.insert(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		zap.L().Warn("cart not cleared after order", zap.String("order", order.OrderNumber), zap.Error(err))
	}

	if s.mailer != nil && customer.Email != "" {
		placed := *order
		s.dispatch(func() {
			if err := utils.SendOrderConfirmationEmail(s.mailer, customer.Email, placed); err != nil {
				zap.L().Warn("order confirmation email failed", zap.String("order", placed.OrderNumber), zap.Error(err))
			}
		})
	}
	return order, nil
}

// insert stores the order, moving the number to the next millisecond when
// another checkout already claimed it.
func (s *OrderService) insert(ctx context.Context, order *models.Order) error {
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if err = s.orders.Insert(ctx, order); !errors.Is(err, store.ErrDuplicate) {
			return err
		}
		order.OrderNumber = OrderNumber(order.CreatedAt.Add(time.Duration(attempt+1) * time.Millisecond))
	}
	return err
}

func (s *OrderService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Get returns an order only when it belongs to userID.
func (s *OrderService) Get(ctx context.Context, userID primitive.ObjectID, idHex string) (*models.Order, error) {
	id, err := ParseID("id", idHex)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetForUser(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// ListAll returns every order for the back office.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) UpdateStatus(ctx context.Context, idHex string, req models.OrderStatusRequest) (*models.Order, error) {
	id, err := ParseID("id", idHex)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.UpdateStatus(ctx, id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

type orderRow struct {
	OrderNumber   string  `csv:"orderNumber"`
	CreatedAt     string  `csv:"createdAt"`
	Status        string  `csv:"status"`
	Customer      string  `csv:"customer"`
	Phone         string  `csv:"phone"`
	City          string  `csv:"city"`
	Items         int     `csv:"items"`
	TotalAmount   float64 `csv:"totalAmount"`
	PaymentMethod string  `csv:"paymentMethod"`
}

// ExportCSV writes every order as one CSV row.
func (s *OrderService) ExportCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return err
	}
	rows := make([]*orderRow, 0, len(orders))
	for _, o := range orders {
		units := 0
		for _, item := range o.Items {
			units += item.Quantity
		}
		rows = append(rows, &orderRow{
			OrderNumber:   o.OrderNumber,
			CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
			Status:        o.Status,
			Customer:      o.ShippingAddress.FullName,
			Phone:         o.ShippingAddress.Phone,
			City:          o.ShippingAddress.City,
			Items:         units,
			TotalAmount:   o.TotalAmount,
			PaymentMethod: o.PaymentMethod,
		})
	}
	return gocsv.Marshal(rows, w)
}
