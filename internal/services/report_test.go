package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type reportFixture struct {
	db  *gorm.DB
	svc ReportService
}

func newReportFixture(t *testing.T, cache *redis.Client) *reportFixture {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	return &reportFixture{
		db:  gdb,
		svc: NewReportService(log, repos.NewReportRepo(gdb, log), cache),
	}
}

func (f *reportFixture) seedCategory(t *testing.T, name string, deleted bool) *types.Category {
	t.Helper()
	cat := &types.Category{Name: name, Level: 1, IsDeleted: deleted}
	if err := f.db.Create(cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return cat
}

func (f *reportFixture) seedProduct(t *testing.T, name string, price float64, cats ...*types.Category) *types.Product {
	t.Helper()
	product := &types.Product{Name: name, Price: price, Quantity: 100}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if len(cats) > 0 {
		if err := f.db.Model(product).Association("Categories").Append(cats); err != nil {
			t.Fatalf("link categories: %v", err)
		}
	}
	return product
}

func (f *reportFixture) seedUser(t *testing.T, email string) *types.User {
	t.Helper()
	user := &types.User{Email: email, Password: "x"}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *reportFixture) seedOrder(t *testing.T, user *types.User, paymentStatus string, createdAt time.Time, lines ...*types.OrderItem) *types.Order {
	t.Helper()
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	order := &types.Order{
		UserID:        user.ID,
		OrderNumber:   "ORD-" + createdAt.Format("20060102150405.000000000"),
		TotalAmount:   total,
		Status:        types.OrderStatusPending,
		PaymentStatus: paymentStatus,
		Items:         lines,
		CreatedAt:     createdAt,
	}
	if err := f.db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	dr, err := ParseDateRange(start, end, time.Now().UTC())
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	return dr
}

func TestSalesByDateReport(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()
	user := f.seedUser(t, "buyer@example.com")
	laptop := f.seedProduct(t, "Laptop", 1000.00)

	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC)
	f.seedOrder(t, user, types.PaymentStatusPaid, day1,
		&types.OrderItem{ProductID: &laptop.ID, Quantity: 2, UnitPrice: 1000.00})
	f.seedOrder(t, user, types.PaymentStatusPaid, day3,
		&types.OrderItem{ProductID: &laptop.ID, Quantity: 1, UnitPrice: 1000.00})
	// Outside the window, must not appear.
	f.seedOrder(t, user, types.PaymentStatusPaid, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		&types.OrderItem{ProductID: &laptop.ID, Quantity: 5, UnitPrice: 1000.00})

	report, err := f.svc.SalesByDate(ctx, mustRange(t, "2025-03-01", "2025-03-31"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	// Zero-order days are omitted, not zero-filled.
	if len(report.Results) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Results))
	}
	if report.Results[0].Date != "2025-03-10" || report.Results[0].TotalSales != 2000.00 || report.Results[0].OrderCount != 1 {
		t.Fatalf("day1 row wrong: %+v", report.Results[0])
	}
	if report.Results[1].Date != "2025-03-12" || report.Results[1].TotalSales != 1000.00 {
		t.Fatalf("day3 row wrong: %+v", report.Results[1])
	}
	if report.TotalSales != 3000.00 || report.TotalCount != 2 {
		t.Fatalf("totals wrong: %+v", report)
	}
}

func TestProductPopularityReport(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()
	user := f.seedUser(t, "buyer@example.com")
	mouse := f.seedProduct(t, "Mouse", 25.50)
	keyboard := f.seedProduct(t, "Keyboard", 80.00)

	when := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	f.seedOrder(t, user, types.PaymentStatusPaid, when,
		&types.OrderItem{ProductID: &mouse.ID, Quantity: 10, UnitPrice: 25.50},
		&types.OrderItem{ProductID: &keyboard.ID, Quantity: 3, UnitPrice: 80.00})

	report, err := f.svc.ProductPopularity(ctx, mustRange(t, "2025-03-01", "2025-03-31"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Results))
	}
	// Ordered by units sold descending.
	if report.Results[0].ProductName != "Mouse" || report.Results[0].UnitsSold != 10 {
		t.Fatalf("top row wrong: %+v", report.Results[0])
	}
	if report.Results[0].Revenue != 255.00 {
		t.Fatalf("revenue = %v, want 255.00", report.Results[0].Revenue)
	}
	if report.Results[1].ProductName != "Keyboard" || report.Results[1].Revenue != 240.00 {
		t.Fatalf("second row wrong: %+v", report.Results[1])
	}
}

func TestPaymentStatusReport(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()
	user := f.seedUser(t, "buyer@example.com")
	item := f.seedProduct(t, "Cable", 5.00)

	when := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		f.seedOrder(t, user, types.PaymentStatusPaid, when.Add(time.Duration(i)*time.Minute),
			&types.OrderItem{ProductID: &item.ID, Quantity: 1, UnitPrice: 5.00})
	}
	for i := 0; i < 2; i++ {
		f.seedOrder(t, user, types.PaymentStatusPending, when.Add(time.Duration(10+i)*time.Minute),
			&types.OrderItem{ProductID: &item.ID, Quantity: 1, UnitPrice: 5.00})
	}

	report, err := f.svc.PaymentStatus(ctx, mustRange(t, "2025-03-01", "2025-03-31"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.TotalOrders != 4 {
		t.Fatalf("total orders = %d, want 4", report.TotalOrders)
	}
	if len(report.Results) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Results))
	}
	for _, row := range report.Results {
		if row.OrderCount != 2 || row.Percentage != 50.00 {
			t.Fatalf("row wrong: %+v", row)
		}
	}
}

func TestPaymentStatusReportEmpty(t *testing.T) {
	f := newReportFixture(t, nil)
	report, err := f.svc.PaymentStatus(context.Background(), mustRange(t, "2025-03-01", "2025-03-31"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.TotalOrders != 0 || len(report.Results) != 0 {
		t.Fatalf("empty window not empty: %+v", report)
	}
}

func TestCategorySalesReport(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()
	user := f.seedUser(t, "buyer@example.com")

	electronics := f.seedCategory(t, "Electronics", false)
	hidden := f.seedCategory(t, "Hidden", true)
	laptop := f.seedProduct(t, "Laptop", 1000.00, electronics)
	relic := f.seedProduct(t, "Relic", 10.00, hidden)

	when := time.Date(2025, 3, 18, 10, 0, 0, 0, time.UTC)
	f.seedOrder(t, user, types.PaymentStatusPaid, when,
		&types.OrderItem{ProductID: &laptop.ID, Quantity: 2, UnitPrice: 1000.00})
	f.seedOrder(t, user, types.PaymentStatusPaid, when.Add(time.Hour),
		&types.OrderItem{ProductID: &relic.ID, Quantity: 1, UnitPrice: 10.00})

	report, err := f.svc.CategorySales(ctx, mustRange(t, "2025-03-01", "2025-03-31"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	// Soft-deleted categories are excluded entirely.
	if len(report.Results) != 1 {
		t.Fatalf("rows = %d, want 1: %+v", len(report.Results), report.Results)
	}
	row := report.Results[0]
	if row.CategoryName != "Electronics" || row.TotalSales != 2000.00 {
		t.Fatalf("row wrong: %+v", row)
	}
	if row.OrderCount != 1 || row.ProductCount != 1 || row.TotalQuantity != 2 {
		t.Fatalf("counts wrong: %+v", row)
	}
}

func TestReportCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	f := newReportFixture(t, cache)
	ctx := context.Background()
	user := f.seedUser(t, "buyer@example.com")
	item := f.seedProduct(t, "Widget", 9.99)
	when := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	f.seedOrder(t, user, types.PaymentStatusPaid, when,
		&types.OrderItem{ProductID: &item.ID, Quantity: 1, UnitPrice: 9.99})

	dr := mustRange(t, "2025-03-01", "2025-03-31")
	first, err := f.svc.SalesByDate(ctx, dr)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	key := "reports:sales_by_date:2025-03-01:2025-03-31"
	if !mr.Exists(key) {
		t.Fatalf("cache key %q not written", key)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	// New rows do not affect the cached window until it expires.
	f.seedOrder(t, user, types.PaymentStatusPaid, when.Add(time.Hour),
		&types.OrderItem{ProductID: &item.ID, Quantity: 5, UnitPrice: 9.99})
	second, err := f.svc.SalesByDate(ctx, dr)
	if err != nil {
		t.Fatalf("cached report: %v", err)
	}
	if second.TotalCount != first.TotalCount {
		t.Fatalf("cache bypassed: %d vs %d", second.TotalCount, first.TotalCount)
	}

	mr.FastForward(time.Hour + time.Minute)
	third, err := f.svc.SalesByDate(ctx, dr)
	if err != nil {
		t.Fatalf("recomputed report: %v", err)
	}
	if third.TotalCount != first.TotalCount+1 {
		t.Fatalf("recompute wrong: %d", third.TotalCount)
	}
}
