package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type orderFixture struct {
	orders   OrderService
	products ProductService
	users    UserService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	productRepo := repos.NewProductRepo(gdb, log)
	userRepo := repos.NewUserRepo(gdb, log)
	roleRepo := repos.NewRoleRepo(gdb, log)
	categoryRepo := repos.NewCategoryRepo(gdb, log)
	return &orderFixture{
		orders:   NewOrderService(gdb, log, repos.NewOrderRepo(gdb, log), productRepo, userRepo),
		products: NewProductService(gdb, log, productRepo, categoryRepo),
		users:    NewUserService(gdb, log, userRepo, roleRepo),
	}
}

func (f *orderFixture) mustUser(t *testing.T, email string) *types.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), CreateUserCommand{Email: email, Password: "pw123456"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *orderFixture) mustProduct(t *testing.T, name string, price float64, quantity int) *types.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), CreateProductCommand{
		Name: name, Price: price, Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestOrderCreateComputesTotal(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.mustUser(t, "buyer@example.com")
	laptop := f.mustProduct(t, "Laptop", 1000.00, 10)
	mouse := f.mustProduct(t, "Mouse", 25.50, 50)

	order, err := f.orders.Create(ctx, CreateOrderCommand{
		UserID: user.ID,
		Items: []OrderItemInput{
			{ProductID: laptop.ID, Quantity: 2},
			{ProductID: mouse.ID, Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalAmount != 2102.00 {
		t.Fatalf("total = %v, want 2102.00", order.TotalAmount)
	}
	if order.OrderNumber == "" {
		t.Fatalf("order number not generated")
	}
	if order.Status != types.OrderStatusPending || order.PaymentStatus != types.PaymentStatusPending {
		t.Fatalf("initial statuses wrong: %q/%q", order.Status, order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}

	// Stock decremented.
	got, err := f.products.Get(ctx, laptop.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Quantity != 8 {
		t.Fatalf("stock = %d, want 8", got.Quantity)
	}
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.mustUser(t, "buyer@example.com")
	rare := f.mustProduct(t, "Rare Item", 99.00, 1)

	_, err := f.orders.Create(ctx, CreateOrderCommand{
		UserID: user.ID,
		Items:  []OrderItemInput{{ProductID: rare.ID, Quantity: 2}},
	})
	if msg := fieldError(t, err, "items"); msg != "Insufficient stock for product 'Rare Item'." {
		t.Fatalf("unexpected message: %q", msg)
	}
	// Whole order rolled back, stock untouched.
	got, err := f.products.Get(ctx, rare.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Quantity != 1 {
		t.Fatalf("stock = %d, want 1", got.Quantity)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.mustUser(t, "buyer@example.com")

	_, err := f.orders.Create(ctx, CreateOrderCommand{UserID: user.ID})
	if msg := fieldError(t, err, "items"); msg != "Order must contain at least one item." {
		t.Fatalf("unexpected message: %q", msg)
	}

	_, err = f.orders.Create(ctx, CreateOrderCommand{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	if msg := fieldError(t, err, "user"); msg != "User does not exist." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestOrderStatusUpdates(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.mustUser(t, "buyer@example.com")
	item := f.mustProduct(t, "Cable", 5.00, 100)

	order, err := f.orders.Create(ctx, CreateOrderCommand{
		UserID: user.ID,
		Items:  []OrderItemInput{{ProductID: item.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	paid := types.PaymentStatusPaid
	shipped := types.OrderStatusShipped
	updated, err := f.orders.Update(ctx, order.ID, UpdateOrderCommand{Status: &shipped, PaymentStatus: &paid})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != types.OrderStatusShipped || updated.PaymentStatus != types.PaymentStatusPaid {
		t.Fatalf("statuses wrong: %q/%q", updated.Status, updated.PaymentStatus)
	}

	bogus := "TELEPORTED"
	if _, err := f.orders.Update(ctx, order.ID, UpdateOrderCommand{Status: &bogus}); err == nil {
		t.Fatalf("expected invalid status rejection")
	}
}
