// internal/handlers/order_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/georgeY2002/E-Commerce/internal/cache"
	"github.com/georgeY2002/E-Commerce/internal/models"
	"github.com/georgeY2002/E-Commerce/internal/services"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	s.db = db

	productService := services.NewProductService(db, &cache.Cache{})
	orderService := services.NewOrderService(db, 0.15)
	orderHandler := NewOrderHandler(orderService, productService)

	s.router = gin.New()
	api := s.router.Group("/api")
	orders := api.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id/cancel", orderHandler.CancelOrder)
	}
}

func (s *OrderHandlerTestSuite) seedProduct(stock int) *models.Product {
	product := &models.Product{
		Name:          "Chrono",
		Description:   "test watch",
		Price:         1000,
		Category:      models.CategoryWatches,
		Brand:         "Testbrand",
		Material:      "Steel",
		StockQuantity: stock,
		InStock:       stock > 0,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *OrderHandlerTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OrderHandlerTestSuite) checkoutBody(productID string, qty int) map[string]interface{} {
	return map[string]interface{}{
		"guestInfo": map[string]string{
			"name":  "Guest Buyer",
			"email": "guest@example.com",
			"phone": "+1234567890",
		},
		"items": []map[string]interface{}{
			{"productId": productID, "quantity": qty},
		},
		"shippingAddress": map[string]string{
			"street": "1 Main St", "city": "Springfield", "state": "IL",
			"zipCode": "62701", "country": "USA",
		},
		"billingAddress": map[string]string{
			"street": "1 Main St", "city": "Springfield", "state": "IL",
			"zipCode": "62701", "country": "USA",
		},
		"paymentMethod": "cash_on_delivery",
	}
}

func (s *OrderHandlerTestSuite) TestGuestCheckoutSucceeds() {
	product := s.seedProduct(5)

	w := s.postJSON("/api/orders", s.checkoutBody(product.ID.String(), 2))
	s.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.True(response["success"].(bool))

	data := response["data"].(map[string]interface{})
	s.InDelta(2000.0, data["totalAmount"].(float64), 0.001)
	s.InDelta(300.0, data["adminEarnings"].(float64), 0.001)
	s.Equal("pending", data["orderStatus"])
}

func (s *OrderHandlerTestSuite) TestCheckoutInsufficientStock() {
	product := s.seedProduct(1)

	w := s.postJSON("/api/orders", s.checkoutBody(product.ID.String(), 3))
	s.Equal(http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.False(response["success"].(bool))

	errObj := response["error"].(map[string]interface{})
	s.Equal("INSUFFICIENT_STOCK", errObj["code"])
}

func (s *OrderHandlerTestSuite) TestCheckoutUnknownProduct() {
	w := s.postJSON("/api/orders", s.checkoutBody("11111111-2222-3333-4444-555555555555", 1))
	s.Equal(http.StatusNotFound, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errObj := response["error"].(map[string]interface{})
	s.Equal("NOT_FOUND", errObj["code"])
}

func (s *OrderHandlerTestSuite) TestCancelDeliveredOrderRejected() {
	product := s.seedProduct(5)

	w := s.postJSON("/api/orders", s.checkoutBody(product.ID.String(), 1))
	s.Require().Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	orderID := response["data"].(map[string]interface{})["id"].(string)

	s.Require().NoError(s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("order_status", models.OrderStatusDelivered).Error)

	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/orders/%s/cancel", orderID), nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)

	var cancelResp map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &cancelResp))
	errObj := cancelResp["error"].(map[string]interface{})
	s.Equal("INVALID_TRANSITION", errObj["code"])
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
