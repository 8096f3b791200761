package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
)

// Report rows mirror the aggregation shapes the handlers expose. Null
// aggregates are coerced to zero in SQL (COALESCE); a missing group is a
// missing row, not a zero-filled one.

type SalesRow struct {
	Date    string  `gorm:"column:date"`
	Revenue float64 `gorm:"column:revenue"`
	Orders  int64   `gorm:"column:orders"`
}

type ProductPopularityRow struct {
	ProductID   uuid.UUID `gorm:"column:product_id"`
	ProductName string    `gorm:"column:product_name"`
	UnitsSold   int64     `gorm:"column:units_sold"`
	Revenue     float64   `gorm:"column:revenue"`
}

type PaymentStatusRow struct {
	Status     string `gorm:"column:status"`
	OrderCount int64  `gorm:"column:order_count"`
}

type CategorySalesRow struct {
	CategoryID    uuid.UUID `gorm:"column:category_id"`
	CategoryName  string    `gorm:"column:category_name"`
	TotalSales    float64   `gorm:"column:total_sales"`
	OrderCount    int64     `gorm:"column:order_count"`
	ProductCount  int64     `gorm:"column:product_count"`
	TotalQuantity int64     `gorm:"column:total_quantity"`
}

type ReportRepo interface {
	SalesByDate(ctx context.Context, start, endExclusive time.Time) ([]SalesRow, error)
	ProductPopularity(ctx context.Context, start, endExclusive time.Time) ([]ProductPopularityRow, error)
	PaymentStatusCounts(ctx context.Context, start, endExclusive time.Time) ([]PaymentStatusRow, int64, error)
	CategorySales(ctx context.Context, start, endExclusive time.Time) ([]CategorySalesRow, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	repoLog := baseLog.With("repo", "ReportRepo")
	return &reportRepo{db: db, log: repoLog}
}

// dateExpr renders a timestamp column as a YYYY-MM-DD string. The expression
// differs per dialect so the sqlite-backed test databases group identically
// to postgres.
func (rr *reportRepo) dateExpr(col string) string {
	if rr.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", col)
	}
	return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", col)
}

func (rr *reportRepo) SalesByDate(ctx context.Context, start, endExclusive time.Time) ([]SalesRow, error) {
	var rows []SalesRow
	query := fmt.Sprintf(`
		SELECT %s AS date,
		       COALESCE(SUM(total_amount), 0) AS revenue,
		       COUNT(id) AS orders
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY 1
		ORDER BY 1 ASC`, rr.dateExpr("created_at"))
	if err := rr.db.WithContext(ctx).Raw(query, start, endExclusive).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (rr *reportRepo) ProductPopularity(ctx context.Context, start, endExclusive time.Time) ([]ProductPopularityRow, error) {
	var rows []ProductPopularityRow
	query := `
		SELECT oi.product_id AS product_id,
		       p.name AS product_name,
		       COALESCE(SUM(oi.quantity), 0) AS units_sold,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY oi.product_id, p.name
		ORDER BY units_sold DESC`
	if err := rr.db.WithContext(ctx).Raw(query, start, endExclusive).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (rr *reportRepo) PaymentStatusCounts(ctx context.Context, start, endExclusive time.Time) ([]PaymentStatusRow, int64, error) {
	var rows []PaymentStatusRow
	query := `
		SELECT payment_status AS status,
		       COUNT(id) AS order_count
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY payment_status
		ORDER BY payment_status ASC`
	if err := rr.db.WithContext(ctx).Raw(query, start, endExclusive).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	var total int64
	for _, row := range rows {
		total += row.OrderCount
	}
	return rows, total, nil
}

func (rr *reportRepo) CategorySales(ctx context.Context, start, endExclusive time.Time) ([]CategorySalesRow, error) {
	var rows []CategorySalesRow
	query := `
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS total_sales,
		       COUNT(DISTINCT oi.order_id) AS order_count,
		       COUNT(DISTINCT CASE WHEN p.is_deleted = ? THEN p.id END) AS product_count,
		       COALESCE(SUM(oi.quantity), 0) AS total_quantity
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		JOIN products p ON p.id = pc.product_id
		JOIN order_items oi ON oi.product_id = p.id
		JOIN orders o ON o.id = oi.order_id
		WHERE c.is_deleted = ? AND o.created_at >= ? AND o.created_at < ?
		GROUP BY c.id, c.name
		ORDER BY total_sales DESC`
	if err := rr.db.WithContext(ctx).Raw(query, false, false, start, endExclusive).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
