// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *OrderService
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewOrderService(s.db, 0.15)
}

func (s *OrderServiceTestSuite) guestRequest(items ...CheckoutItem) *CreateOrderRequest {
	return &CreateOrderRequest{
		GuestInfo: &models.GuestInfo{
			Name:  "Guest Buyer",
			Email: "guest@example.com",
			Phone: "+1234567890",
		},
		Items: items,
		ShippingAddress: models.Address{
			Street: "1 Main St", City: "Springfield", State: "IL",
			ZipCode: "62701", Country: "USA",
		},
		BillingAddress: models.Address{
			Street: "1 Main St", City: "Springfield", State: "IL",
			ZipCode: "62701", Country: "USA",
		},
		PaymentMethod: models.PaymentMethodCashOnDelivery,
	}
}

func (s *OrderServiceTestSuite) TestGuestCheckoutComputesTotalsAndEarnings() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 10)
	ring := createTestProduct(s.T(), s.db, "Ring", 500, 10)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 2},
		CheckoutItem{ProductID: ring.ID, Quantity: 1},
	))
	s.Require().NoError(err)

	s.Equal(2500.0, order.TotalAmount)
	s.Equal(375.0, order.AdminEarnings) // 15% of 2500
	s.Equal(models.OrderStatusPending, order.OrderStatus)
	s.Equal(models.PaymentStatusPending, order.PaymentStatus)
	s.Nil(order.UserID)
	s.Require().NotNil(order.GuestInfo)
	s.Equal("guest@example.com", order.GuestInfo.Email)
	s.Len(order.Items, 2)

	s.Equal(8, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)
	s.Equal(9, reloadProduct(s.T(), s.db, ring.ID).StockQuantity)
}

func (s *OrderServiceTestSuite) TestRegisteredCheckoutBindsUser() {
	user := createTestUser(s.T(), s.db, "buyer@example.com")
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	req := s.guestRequest(CheckoutItem{ProductID: watch.ID, Quantity: 1})
	req.UserID = user.ID.String()

	order, err := s.service.CreateOrder(req)
	s.Require().NoError(err)

	s.Require().NotNil(order.UserID)
	s.Equal(user.ID, *order.UserID)
	s.Nil(order.GuestInfo)
}

func (s *OrderServiceTestSuite) TestMalformedUserIDFallsBackToGuest() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	req := s.guestRequest(CheckoutItem{ProductID: watch.ID, Quantity: 1})
	req.UserID = "not-a-uuid"

	order, err := s.service.CreateOrder(req)
	s.Require().NoError(err)

	s.Nil(order.UserID)
	s.NotNil(order.GuestInfo)
}

func (s *OrderServiceTestSuite) TestCheckoutWithoutIdentityFails() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	req := s.guestRequest(CheckoutItem{ProductID: watch.ID, Quantity: 1})
	req.GuestInfo = nil

	_, err := s.service.CreateOrder(req)
	s.ErrorIs(err, ErrValidation)
}

func (s *OrderServiceTestSuite) TestUnknownProductRollsBackWholeOrder() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	_, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 2},
		CheckoutItem{ProductID: uuid.New(), Quantity: 1},
	))
	s.ErrorIs(err, ErrProductNotFound)

	// First line's reservation must have been rolled back
	s.Equal(5, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)
}

func (s *OrderServiceTestSuite) TestInsufficientStockLeavesInventoryUntouched() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 3)

	_, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 4},
	))
	s.ErrorIs(err, ErrInsufficientStock)

	got := reloadProduct(s.T(), s.db, watch.ID)
	s.Equal(3, got.StockQuantity)
	s.True(got.InStock)
}

func (s *OrderServiceTestSuite) TestSellingOutFlipsInStock() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	_, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 5},
	))
	s.Require().NoError(err)

	got := reloadProduct(s.T(), s.db, watch.ID)
	s.Equal(0, got.StockQuantity)
	s.False(got.InStock)
}

func (s *OrderServiceTestSuite) TestCancelRestoresStock() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 5},
	))
	s.Require().NoError(err)
	s.Equal(0, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)

	cancelled, err := s.service.CancelOrder(order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusCancelled, cancelled.OrderStatus)

	got := reloadProduct(s.T(), s.db, watch.ID)
	s.Equal(5, got.StockQuantity)
	s.True(got.InStock)
}

func (s *OrderServiceTestSuite) TestCancelDeliveredOrderRejected() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 1},
	))
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("order_status", models.OrderStatusDelivered).Error)

	_, err = s.service.CancelOrder(order.ID)
	s.ErrorIs(err, ErrInvalidTransition)

	// Stock stays deducted
	s.Equal(4, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)
}

func (s *OrderServiceTestSuite) TestCancelUnknownOrder() {
	_, err := s.service.CancelOrder(uuid.New())
	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *OrderServiceTestSuite) TestAdminCancelRestoresThenReactivateDeducts() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 2},
	))
	s.Require().NoError(err)
	s.Equal(3, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)

	// Into cancelled: stock comes back
	_, err = s.service.AdminUpdateStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: models.OrderStatusCancelled,
	})
	s.Require().NoError(err)
	s.Equal(5, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)

	// Out of cancelled: stock deducted again
	_, err = s.service.AdminUpdateStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: models.OrderStatusProcessing,
	})
	s.Require().NoError(err)
	s.Equal(3, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)
}

func (s *OrderServiceTestSuite) TestAdminInactiveToInactiveMovesNothing() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 2},
	))
	s.Require().NoError(err)

	_, err = s.service.AdminUpdateStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: models.OrderStatusCancelled,
	})
	s.Require().NoError(err)
	s.Equal(5, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)

	// Cancelled to returned is a no-op for inventory
	_, err = s.service.AdminUpdateStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: models.OrderStatusReturned,
	})
	s.Require().NoError(err)
	s.Equal(5, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)
}

func (s *OrderServiceTestSuite) TestAdminUpdateSetsShippingFields() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 1},
	))
	s.Require().NoError(err)

	updated, err := s.service.AdminUpdateStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus:    models.OrderStatusShipped,
		PaymentStatus:  models.PaymentStatusCompleted,
		TrackingNumber: "TRK-12345",
		Notes:          "Signature required",
	})
	s.Require().NoError(err)

	s.Equal(models.OrderStatusShipped, updated.OrderStatus)
	s.Equal(models.PaymentStatusCompleted, updated.PaymentStatus)
	s.Equal("TRK-12345", updated.TrackingNumber)
	s.Equal("Signature required", updated.Notes)

	// No inventory movement for pending -> shipped
	s.Equal(4, reloadProduct(s.T(), s.db, watch.ID).StockQuantity)
}

func (s *OrderServiceTestSuite) TestAdminUpdateRejectsUnknownStatus() {
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 5)

	order, err := s.service.CreateOrder(s.guestRequest(
		CheckoutItem{ProductID: watch.ID, Quantity: 1},
	))
	s.Require().NoError(err)

	_, err = s.service.AdminUpdateStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: "teleported",
	})
	s.ErrorIs(err, ErrValidation)
}

func (s *OrderServiceTestSuite) TestGetUserOrdersNewestFirst() {
	user := createTestUser(s.T(), s.db, "buyer@example.com")
	watch := createTestProduct(s.T(), s.db, "Chrono", 1000, 10)

	for i := 0; i < 3; i++ {
		req := s.guestRequest(CheckoutItem{ProductID: watch.ID, Quantity: 1})
		req.UserID = user.ID.String()
		_, err := s.service.CreateOrder(req)
		s.Require().NoError(err)
	}

	orders, err := s.service.GetUserOrders(user.ID)
	s.Require().NoError(err)
	s.Len(orders, 3)
	for _, o := range orders {
		s.Require().NotNil(o.UserID)
		s.Equal(user.ID, *o.UserID)
	}
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
