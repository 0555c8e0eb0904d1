// internal/services/report_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
	"github.com/georgeY2002/E-Commerce/internal/utils"
)

// ReportService aggregates orders into the admin views: dashboard totals,
// per-day earnings buckets and top selling products. Earnings aggregates
// only count orders that were paid and are still active (not cancelled or
// returned); the top-products view deliberately counts every order ever
// placed, so it reflects demand rather than settled revenue.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

const lowStockThreshold = 5

type DashboardStats struct {
	TotalEarnings    float64 `json:"totalEarnings"`
	MonthlyEarnings  float64 `json:"monthlyEarnings"`
	YearlyEarnings   float64 `json:"yearlyEarnings"`
	TotalOrders      int64   `json:"totalOrders"`
	CompletedOrders  int64   `json:"completedOrders"`
	PendingOrders    int64   `json:"pendingOrders"`
	LowStockProducts int64   `json:"lowStockProducts"`
}

type EarningsBucket struct {
	Date          string  `json:"date"`
	DailyEarnings float64 `json:"dailyEarnings"`
	OrderCount    int64   `json:"orderCount"`
}

type TopProduct struct {
	ProductID    uuid.UUID       `json:"productId"`
	TotalSold    int64           `json:"totalSold"`
	TotalRevenue float64         `json:"totalRevenue"`
	Product      *models.Product `json:"product,omitempty"`
}

// earningsScope narrows an order query to settled revenue: payment completed
// and the order not cancelled or returned.
func earningsScope(db *gorm.DB) *gorm.DB {
	return db.
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Where("order_status NOT IN ?", []models.OrderStatus{
			models.OrderStatusCancelled,
			models.OrderStatusReturned,
		})
}

func (s *ReportService) GetDashboardStats() (*DashboardStats, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}

	if err := earningsScope(s.db.Model(&models.Order{})).
		Select("COALESCE(SUM(admin_earnings), 0)").
		Scan(&stats.TotalEarnings).Error; err != nil {
		return nil, fmt.Errorf("failed to compute total earnings: %w", err)
	}

	if err := earningsScope(s.db.Model(&models.Order{})).
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(admin_earnings), 0)").
		Scan(&stats.MonthlyEarnings).Error; err != nil {
		return nil, fmt.Errorf("failed to compute monthly earnings: %w", err)
	}

	if err := earningsScope(s.db.Model(&models.Order{})).
		Where("created_at >= ?", startOfYear).
		Select("COALESCE(SUM(admin_earnings), 0)").
		Scan(&stats.YearlyEarnings).Error; err != nil {
		return nil, fmt.Errorf("failed to compute yearly earnings: %w", err)
	}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Count(&stats.CompletedOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed orders: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Where("order_status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	if err := s.db.Model(&models.Product{}).
		Where("stock_quantity < ?", lowStockThreshold).
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	return stats, nil
}

// GetEarningsBreakdown buckets settled earnings by calendar day, oldest
// first. Period is one of week (rolling 7 days), month (since the 1st) or
// year (since Jan 1); anything else falls back to month. Bucketing happens
// in Go so day boundaries follow the server timezone consistently.
func (s *ReportService) GetEarningsBreakdown(period string) ([]EarningsBucket, error) {
	now := time.Now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "year":
		startDate = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	var orders []models.Order
	if err := earningsScope(s.db.Model(&models.Order{})).
		Where("created_at >= ?", startDate).
		Select("created_at", "admin_earnings").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch earnings: %w", err)
	}

	byDay := make(map[string]*EarningsBucket)
	for _, order := range orders {
		day := order.CreatedAt.Format("2006-01-02")
		bucket, ok := byDay[day]
		if !ok {
			bucket = &EarningsBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.DailyEarnings += order.AdminEarnings
		bucket.OrderCount++
	}

	buckets := make([]EarningsBucket, 0, len(byDay))
	for _, bucket := range byDay {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})

	return buckets, nil
}

// GetTopProducts ranks products by units sold across all orders regardless
// of their status, ties broken by revenue.
func (s *ReportService) GetTopProducts(limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var rows []TopProduct
	if err := s.db.Model(&models.OrderItem{}).
		Select("product_id, SUM(quantity) AS total_sold, SUM(price * quantity) AS total_revenue").
		Group("product_id").
		Order("total_sold DESC, total_revenue DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}

	// Attach product details; a product deleted since its sales still counts,
	// it just carries no detail record.
	for i := range rows {
		var product models.Product
		if err := s.db.First(&product, "id = ?", rows[i].ProductID).Error; err == nil {
			rows[i].Product = &product
		}
	}

	return rows, nil
}

type OrderFilter struct {
	Status        string
	PaymentStatus string
	utils.PaginationParams
}

// GetOrders lists all orders for the admin panel, newest first, optionally
// filtered by order and payment status.
func (s *ReportService) GetOrders(filter OrderFilter) (*utils.PaginationResult, error) {
	filter.Normalize()
	query := s.db.Model(&models.Order{})

	if filter.Status != "" {
		if !models.OrderStatus(filter.Status).Valid() {
			return nil, fmt.Errorf("%w: invalid order status %q", ErrValidation, filter.Status)
		}
		query = query.Where("order_status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		if !models.PaymentStatus(filter.PaymentStatus).Valid() {
			return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, filter.PaymentStatus)
		}
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	if err := utils.ApplyPagination(query, filter.PaginationParams).
		Preload("User").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, filter.PaginationParams)
	return &result, nil
}
