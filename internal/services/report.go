package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
)

const reportCacheTTL = time.Hour

// SalesByDateEntry is one day of the sales report. Days with no orders are
// omitted rather than zero-filled.
type SalesByDateEntry struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int64   `json:"order_count"`
}

type SalesByDateReport struct {
	Results    []SalesByDateEntry `json:"results"`
	TotalSales float64            `json:"total_sales"`
	TotalCount int64              `json:"total_count"`
}

type ProductPopularityEntry struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int64   `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

type ProductPopularityReport struct {
	Results []ProductPopularityEntry `json:"results"`
}

type PaymentStatusEntry struct {
	Status     string  `json:"status"`
	OrderCount int64   `json:"order_count"`
	Percentage float64 `json:"percentage"`
}

type PaymentStatusReport struct {
	Results     []PaymentStatusEntry `json:"results"`
	TotalOrders int64                `json:"total_orders"`
}

type CategorySalesEntry struct {
	CategoryID    string  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	TotalSales    float64 `json:"total_sales"`
	OrderCount    int64   `json:"order_count"`
	ProductCount  int64   `json:"product_count"`
	TotalQuantity int64   `json:"total_quantity"`
}

type CategorySalesReport struct {
	Results []CategorySalesEntry `json:"results"`
}

type ReportService interface {
	SalesByDate(ctx context.Context, dr DateRange) (*SalesByDateReport, error)
	ProductPopularity(ctx context.Context, dr DateRange) (*ProductPopularityReport, error)
	PaymentStatus(ctx context.Context, dr DateRange) (*PaymentStatusReport, error)
	CategorySales(ctx context.Context, dr DateRange) (*CategorySalesReport, error)
}

type reportService struct {
	log        *logger.Logger
	reportRepo repos.ReportRepo
	cache      *redis.Client
}

// NewReportService builds the analytics service. cache may be nil, which
// disables report caching entirely.
func NewReportService(baseLog *logger.Logger, reportRepo repos.ReportRepo, cache *redis.Client) ReportService {
	serviceLog := baseLog.With("service", "ReportService")
	return &reportService{log: serviceLog, reportRepo: reportRepo, cache: cache}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func reportCacheKey(name string, dr DateRange) string {
	return fmt.Sprintf("reports:%s:%s:%s", name, dr.StartDate(), dr.EndDate())
}

// cacheGet loads a cached report into out. A miss, a decode failure, or an
// unreachable redis all report false; reports are recomputed in those cases.
func (rs *reportService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if rs.cache == nil {
		return false
	}
	raw, err := rs.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			rs.log.Warn("report cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		rs.log.Warn("report cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (rs *reportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if rs.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := rs.cache.Set(ctx, key, raw, reportCacheTTL).Err(); err != nil {
		rs.log.Warn("report cache write failed", "key", key, "error", err)
	}
}

func (rs *reportService) SalesByDate(ctx context.Context, dr DateRange) (*SalesByDateReport, error) {
	key := reportCacheKey("sales_by_date", dr)
	var cached SalesByDateReport
	if rs.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := rs.reportRepo.SalesByDate(ctx, dr.Start, dr.EndExclusive())
	if err != nil {
		return nil, err
	}
	report := &SalesByDateReport{Results: make([]SalesByDateEntry, 0, len(rows))}
	for _, row := range rows {
		entry := SalesByDateEntry{
			Date:       row.Date,
			TotalSales: round2(row.Revenue),
			OrderCount: row.Orders,
		}
		report.Results = append(report.Results, entry)
		report.TotalSales += row.Revenue
		report.TotalCount += row.Orders
	}
	report.TotalSales = round2(report.TotalSales)

	rs.cacheSet(ctx, key, report)
	return report, nil
}

func (rs *reportService) ProductPopularity(ctx context.Context, dr DateRange) (*ProductPopularityReport, error) {
	key := reportCacheKey("product_popularity", dr)
	var cached ProductPopularityReport
	if rs.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := rs.reportRepo.ProductPopularity(ctx, dr.Start, dr.EndExclusive())
	if err != nil {
		return nil, err
	}
	report := &ProductPopularityReport{Results: make([]ProductPopularityEntry, 0, len(rows))}
	for _, row := range rows {
		entry := ProductPopularityEntry{
			ProductID:   row.ProductID.String(),
			ProductName: row.ProductName,
			UnitsSold:   row.UnitsSold,
			Revenue:     round2(row.Revenue),
		}
		report.Results = append(report.Results, entry)
	}

	rs.cacheSet(ctx, key, report)
	return report, nil
}

func (rs *reportService) PaymentStatus(ctx context.Context, dr DateRange) (*PaymentStatusReport, error) {
	key := reportCacheKey("payment_status", dr)
	var cached PaymentStatusReport
	if rs.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, total, err := rs.reportRepo.PaymentStatusCounts(ctx, dr.Start, dr.EndExclusive())
	if err != nil {
		return nil, err
	}
	report := &PaymentStatusReport{
		Results:     make([]PaymentStatusEntry, 0, len(rows)),
		TotalOrders: total,
	}
	for _, row := range rows {
		entry := PaymentStatusEntry{
			Status:     row.Status,
			OrderCount: row.OrderCount,
		}
		if total > 0 {
			entry.Percentage = round2(float64(row.OrderCount) / float64(total) * 100)
		}
		report.Results = append(report.Results, entry)
	}

	rs.cacheSet(ctx, key, report)
	return report, nil
}

func (rs *reportService) CategorySales(ctx context.Context, dr DateRange) (*CategorySalesReport, error) {
	key := reportCacheKey("category_sales", dr)
	var cached CategorySalesReport
	if rs.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := rs.reportRepo.CategorySales(ctx, dr.Start, dr.EndExclusive())
	if err != nil {
		return nil, err
	}
	report := &CategorySalesReport{Results: make([]CategorySalesEntry, 0, len(rows))}
	for _, row := range rows {
		entry := CategorySalesEntry{
			CategoryID:    row.CategoryID.String(),
			CategoryName:  row.CategoryName,
			TotalSales:    round2(row.TotalSales),
			OrderCount:    row.OrderCount,
			ProductCount:  row.ProductCount,
			TotalQuantity: row.TotalQuantity,
		}
		report.Results = append(report.Results, entry)
	}

	rs.cacheSet(ctx, key, report)
	return report, nil
}
