package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

// OrderItemInput describes one line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderCommand carries the fields accepted when placing an order.
type CreateOrderCommand struct {
	UserID          uuid.UUID
	ShippingAddress string
	Notes           string
	Items           []OrderItemInput
}

// UpdateOrderCommand carries the mutable order fields.
type UpdateOrderCommand struct {
	Status          *string
	PaymentStatus   *string
	ShippingAddress *string
	Notes           *string
}

type OrderService interface {
	Create(ctx context.Context, cmd CreateOrderCommand) (*types.Order, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateOrderCommand) (*types.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Order, error)
	List(ctx context.Context, offset, limit int) ([]*types.Order, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	orderRepo   repos.OrderRepo
	productRepo repos.ProductRepo
	userRepo    repos.UserRepo
}

func NewOrderService(db *gorm.DB, baseLog *logger.Logger, orderRepo repos.OrderRepo, productRepo repos.ProductRepo, userRepo repos.UserRepo) OrderService {
	serviceLog := baseLog.With("service", "OrderService")
	return &orderService{db: db, log: serviceLog, orderRepo: orderRepo, productRepo: productRepo, userRepo: userRepo}
}

// newOrderNumber builds a unique, human-sortable order number.
func newOrderNumber(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("ORD-%s-%d", now.Format("20060102150405"), now.UnixNano()%100000000)
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), hex.EncodeToString(buf))
}

func validOrderStatus(s string) bool {
	switch s {
	case types.OrderStatusPending, types.OrderStatusProcessing, types.OrderStatusShipped,
		types.OrderStatusDelivered, types.OrderStatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch s {
	case types.PaymentStatusPending, types.PaymentStatusPaid, types.PaymentStatusFailed:
		return true
	}
	return false
}

// Create places an order: items are priced from the current product price and
// the total is computed server-side. Stock is decremented atomically.
func (os *orderService) Create(ctx context.Context, cmd CreateOrderCommand) (*types.Order, error) {
	if len(cmd.Items) == 0 {
		return nil, apierr.ValidationField("items", "Order must contain at least one item.")
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, apierr.ValidationField("items", "Item quantity must be positive.")
		}
	}
	var created *types.Order
	txErr := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := os.userRepo.GetByID(ctx, tx, cmd.UserID)
		if err != nil {
			return err
		}
		if user == nil || user.IsDeleted {
			return apierr.ValidationField("user", "User does not exist.")
		}

		now := time.Now().UTC()
		order := &types.Order{
			UserID:          cmd.UserID,
			OrderNumber:     newOrderNumber(now),
			Status:          types.OrderStatusPending,
			PaymentStatus:   types.PaymentStatusPending,
			ShippingAddress: cmd.ShippingAddress,
			Notes:           cmd.Notes,
		}
		var total float64
		for _, item := range cmd.Items {
			product, err := os.productRepo.GetByID(ctx, tx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.IsDeleted {
				return apierr.ValidationField("items", fmt.Sprintf("Product %s does not exist or is deleted.", item.ProductID))
			}
			if product.Quantity < item.Quantity {
				return apierr.ValidationField("items", fmt.Sprintf("Insufficient stock for product '%s'.", product.Name))
			}
			product.Quantity -= item.Quantity
			if err := os.productRepo.Update(ctx, tx, product); err != nil {
				return err
			}
			productID := product.ID
			order.Items = append(order.Items, &types.OrderItem{
				ProductID: &productID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
			total += product.Price * float64(item.Quantity)
		}
		order.TotalAmount = total
		created, err = os.orderRepo.Create(ctx, tx, order)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	os.log.Info("order created", "order_id", created.ID, "order_number", created.OrderNumber)
	return created, nil
}

func (os *orderService) Update(ctx context.Context, id uuid.UUID, cmd UpdateOrderCommand) (*types.Order, error) {
	var updated *types.Order
	txErr := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := os.orderRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apierr.NotFound("order")
		}
		if cmd.Status != nil {
			if !validOrderStatus(*cmd.Status) {
				return apierr.ValidationField("status", "Invalid order status.")
			}
			order.Status = *cmd.Status
		}
		if cmd.PaymentStatus != nil {
			if !validPaymentStatus(*cmd.PaymentStatus) {
				return apierr.ValidationField("payment_status", "Invalid payment status.")
			}
			order.PaymentStatus = *cmd.PaymentStatus
		}
		if cmd.ShippingAddress != nil {
			order.ShippingAddress = *cmd.ShippingAddress
		}
		if cmd.Notes != nil {
			order.Notes = *cmd.Notes
		}
		if err := os.orderRepo.Update(ctx, tx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (os *orderService) Get(ctx context.Context, id uuid.UUID) (*types.Order, error) {
	order, err := os.orderRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apierr.NotFound("order")
	}
	return order, nil
}

func (os *orderService) List(ctx context.Context, offset, limit int) ([]*types.Order, int64, error) {
	return os.orderRepo.List(ctx, nil, offset, limit)
}

func (os *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := os.orderRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apierr.NotFound("order")
	}
	if err := os.orderRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	os.log.Info("order deleted", "order_id", id)
	return nil
}
