// internal/services/report_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
)

type ReportServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	orders  *OrderService
	reports *ReportService
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.orders = NewOrderService(s.db, 0.15)
	s.reports = NewReportService(s.db)
}

// placeOrder creates a paid-or-not order in the given states and returns it.
func (s *ReportServiceTestSuite) placeOrder(product *models.Product, qty int, payment models.PaymentStatus, status models.OrderStatus) *models.Order {
	order, err := s.orders.CreateOrder(&CreateOrderRequest{
		GuestInfo: &models.GuestInfo{Name: "Guest", Email: "g@example.com", Phone: "1"},
		Items:     []CheckoutItem{{ProductID: product.ID, Quantity: qty}},
		ShippingAddress: models.Address{
			Street: "1 Main St", City: "Springfield", State: "IL",
			ZipCode: "62701", Country: "USA",
		},
		BillingAddress: models.Address{
			Street: "1 Main St", City: "Springfield", State: "IL",
			ZipCode: "62701", Country: "USA",
		},
		PaymentMethod: models.PaymentMethodCashOnDelivery,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"payment_status": payment,
			"order_status":   status,
		}).Error)

	order.PaymentStatus = payment
	order.OrderStatus = status
	return order
}

func (s *ReportServiceTestSuite) TestDashboardCountsAndEarnings() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 100)
	createTestProduct(s.T(), s.db, "Charm", 100, 3) // low stock

	// Counted in earnings: paid and active
	s.placeOrder(watch, 2, models.PaymentStatusCompleted, models.OrderStatusDelivered) // earns 300
	s.placeOrder(watch, 1, models.PaymentStatusCompleted, models.OrderStatusShipped)   // earns 150

	// Excluded from earnings: cancelled despite being paid
	s.placeOrder(watch, 1, models.PaymentStatusCompleted, models.OrderStatusCancelled)

	// Excluded from earnings: unpaid
	s.placeOrder(watch, 1, models.PaymentStatusPending, models.OrderStatusPending)

	stats, err := s.reports.GetDashboardStats()
	s.Require().NoError(err)

	s.InDelta(450.0, stats.TotalEarnings, 0.001)
	s.InDelta(450.0, stats.MonthlyEarnings, 0.001)
	s.InDelta(450.0, stats.YearlyEarnings, 0.001)
	s.Equal(int64(4), stats.TotalOrders)
	s.Equal(int64(3), stats.CompletedOrders) // payment completed, regardless of order status
	s.Equal(int64(1), stats.PendingOrders)
	s.Equal(int64(1), stats.LowStockProducts) // only Charm sits under the threshold
}

func (s *ReportServiceTestSuite) TestEarningsBreakdownSumsMatchDashboard() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 100)

	s.placeOrder(watch, 2, models.PaymentStatusCompleted, models.OrderStatusDelivered)
	s.placeOrder(watch, 3, models.PaymentStatusCompleted, models.OrderStatusProcessing)
	s.placeOrder(watch, 1, models.PaymentStatusCompleted, models.OrderStatusReturned) // excluded
	s.placeOrder(watch, 1, models.PaymentStatusFailed, models.OrderStatusPending)     // excluded

	buckets, err := s.reports.GetEarningsBreakdown("month")
	s.Require().NoError(err)
	s.Require().Len(buckets, 1) // everything created today

	s.InDelta(750.0, buckets[0].DailyEarnings, 0.001) // 15% of 5000
	s.Equal(int64(2), buckets[0].OrderCount)

	stats, err := s.reports.GetDashboardStats()
	s.Require().NoError(err)
	s.InDelta(stats.MonthlyEarnings, buckets[0].DailyEarnings, 0.001)
}

func (s *ReportServiceTestSuite) TestEarningsBreakdownUnknownPeriodFallsBackToMonth() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 10)
	s.placeOrder(watch, 1, models.PaymentStatusCompleted, models.OrderStatusDelivered)

	buckets, err := s.reports.GetEarningsBreakdown("quarter")
	s.Require().NoError(err)
	s.Len(buckets, 1)
}

func (s *ReportServiceTestSuite) TestTopProductsCountsEveryOrder() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 100)
	ring := createTestProduct(s.T(), s.db, "Ring", 500, 100)

	s.placeOrder(watch, 2, models.PaymentStatusCompleted, models.OrderStatusDelivered)
	s.placeOrder(watch, 3, models.PaymentStatusPending, models.OrderStatusCancelled) // still counts
	s.placeOrder(ring, 4, models.PaymentStatusCompleted, models.OrderStatusShipped)

	top, err := s.reports.GetTopProducts(10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)

	// Watch leads: 5 units vs 4
	s.Equal(watch.ID, top[0].ProductID)
	s.Equal(int64(5), top[0].TotalSold)
	s.InDelta(5000.0, top[0].TotalRevenue, 0.001)
	s.Require().NotNil(top[0].Product)
	s.Equal("Chrono", top[0].Product.Name)

	s.Equal(ring.ID, top[1].ProductID)
	s.Equal(int64(4), top[1].TotalSold)
}

func (s *ReportServiceTestSuite) TestGetOrdersFilters() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 100)

	s.placeOrder(watch, 1, models.PaymentStatusCompleted, models.OrderStatusDelivered)
	s.placeOrder(watch, 1, models.PaymentStatusPending, models.OrderStatusPending)
	s.placeOrder(watch, 1, models.PaymentStatusPending, models.OrderStatusPending)

	all, err := s.reports.GetOrders(OrderFilter{})
	s.Require().NoError(err)
	s.Equal(int64(3), all.Total)

	pending, err := s.reports.GetOrders(OrderFilter{Status: "pending"})
	s.Require().NoError(err)
	s.Equal(int64(2), pending.Total)

	paid, err := s.reports.GetOrders(OrderFilter{PaymentStatus: "completed"})
	s.Require().NoError(err)
	s.Equal(int64(1), paid.Total)

	_, err = s.reports.GetOrders(OrderFilter{Status: "bogus"})
	s.ErrorIs(err, ErrValidation)
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
