// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
	"github.com/georgeY2002/E-Commerce/internal/utils"
)

type OrderService struct {
	db             *gorm.DB
	commissionRate float64
}

func NewOrderService(db *gorm.DB, commissionRate float64) *OrderService {
	return &OrderService{
		db:             db,
		commissionRate: commissionRate,
	}
}

type CheckoutItem struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	UserID          string               `json:"userId,omitempty"`
	GuestInfo       *models.GuestInfo    `json:"guestInfo,omitempty"`
	Items           []CheckoutItem       `json:"items" validate:"required,min=1,dive"`
	ShippingAddress models.Address       `json:"shippingAddress"`
	BillingAddress  models.Address       `json:"billingAddress"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus       models.OrderStatus   `json:"orderStatus,omitempty"`
	PaymentStatus     models.PaymentStatus `json:"paymentStatus,omitempty"`
	TrackingNumber    string               `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time           `json:"estimatedDelivery,omitempty"`
	Notes             string               `json:"notes,omitempty"`
}

// CreateOrder runs the whole checkout in one transaction: every line is
// validated and its stock reserved with a conditional decrement, so a
// failure on any line rolls the entire order back and two concurrent
// checkouts cannot oversell the same product.
func (s *OrderService) CreateOrder(req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: invalid payment method %q", ErrValidation, req.PaymentMethod)
	}

	// A registered order carries a user reference, a guest order carries
	// contact info, never both. A valid userId wins over guestInfo.
	var userID *uuid.UUID
	if req.UserID != "" {
		if uid, err := uuid.Parse(req.UserID); err == nil {
			userID = &uid
		}
	}
	if userID == nil && req.GuestInfo == nil {
		return nil, fmt.Errorf("%w: missing user ID or guest information", ErrValidation)
	}

	order := &models.Order{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusPending,
	}
	if userID != nil {
		var user models.User
		if err := s.db.First(&user, "id = ?", *userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUserNotFound, *userID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		order.UserID = userID
	} else {
		order.GuestInfo = req.GuestInfo
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var totalAmount float64
		var items []models.OrderItem

		for _, line := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				}
				return fmt.Errorf("database error: %w", err)
			}

			reserved, err := reserveStock(tx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !reserved {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}

			totalAmount += product.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		order.Items = items
		order.TotalAmount = totalAmount
		order.AdminEarnings = totalAmount * s.commissionRate

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"items":        len(order.Items),
		"guest":        order.GuestInfo != nil,
	}).Info("Order created")

	// Reload with product details for the response
	s.db.Preload("Items.Product").Preload("User").First(order, "id = ?", order.ID)

	return order, nil
}

// CancelOrder is the customer-facing cancel: restores stock for every line
// and marks the order cancelled. Delivered orders cannot be cancelled.
// Payment status and earnings are left untouched here.
func (s *OrderService) CancelOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.OrderStatus == models.OrderStatusDelivered {
		return nil, fmt.Errorf("%w: cannot cancel delivered order", ErrInvalidTransition)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := restoreStock(tx, order.Items); err != nil {
			return err
		}

		if err := tx.Model(&order).Update("order_status", models.OrderStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("order_id", order.ID).Info("Order cancelled")

	order.OrderStatus = models.OrderStatusCancelled
	return &order, nil
}

// UpdateStatus is the customer-facing status update: plain field overwrites,
// no inventory reconciliation.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := applyStatusFields(&order, req); err != nil {
		return nil, err
	}

	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &order, nil
}

// AdminUpdateStatus applies the same optional overwrites and additionally
// reconciles inventory against the previous status: transitions into
// cancelled/returned restore stock, transitions out of them deduct it again.
func (s *OrderService) AdminUpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	previousStatus := order.OrderStatus

	if err := applyStatusFields(&order, req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch StockDelta(previousStatus, order.OrderStatus) {
		case +1:
			if err := restoreStock(tx, order.Items); err != nil {
				return err
			}
		case -1:
			if err := deductStock(tx, order.Items); err != nil {
				return err
			}
		}

		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     previousStatus,
		"to":       order.OrderStatus,
	}).Info("Order status updated")

	// Join user and product display fields for the response
	s.db.Preload("User").Preload("Items.Product").First(&order, "id = ?", order.ID)

	return &order, nil
}

func applyStatusFields(order *models.Order, req *UpdateOrderStatusRequest) error {
	if req.OrderStatus != "" {
		if !req.OrderStatus.Valid() {
			return fmt.Errorf("%w: invalid order status %q", ErrValidation, req.OrderStatus)
		}
		order.OrderStatus = req.OrderStatus
	}
	if req.PaymentStatus != "" {
		if !req.PaymentStatus.Valid() {
			return fmt.Errorf("%w: invalid payment status %q", ErrValidation, req.PaymentStatus)
		}
		order.PaymentStatus = req.PaymentStatus
	}
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.EstimatedDelivery != nil {
		order.EstimatedDelivery = req.EstimatedDelivery
	}
	if req.Notes != "" {
		order.Notes = req.Notes
	}
	return nil
}

func (s *OrderService) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items.Product").Preload("User").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user orders: %w", err)
	}

	return orders, nil
}
