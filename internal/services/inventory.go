// internal/services/inventory.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/models"
)

// StockDelta maps an order status transition to the per-item stock movement
// it requires. Positive means restore (each line's quantity goes back on the
// shelf), negative means deduct, zero means the transition does not touch
// inventory. Evaluated against the previous status on every update.
func StockDelta(prev, next models.OrderStatus) int {
	switch {
	case next.Inactive() && !prev.Inactive():
		return +1
	case prev.Inactive() && !next.Inactive():
		return -1
	default:
		return 0
	}
}

// restoreStock puts every line item's quantity back on the shelf and flips
// inStock on for products that become available again.
func restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to restore stock for product %s: %w", item.ProductID, res.Error)
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ? AND stock_quantity > 0", item.ProductID).
			UpdateColumn("in_stock", true).Error; err != nil {
			return fmt.Errorf("failed to update stock flag for product %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// deductStock takes every line item's quantity off the shelf again, used when
// a cancelled or returned order is reactivated. Mirrors the restore path: no
// sufficiency check is applied here, the quantity was already sold once.
func deductStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to deduct stock for product %s: %w", item.ProductID, res.Error)
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ? AND stock_quantity <= 0", item.ProductID).
			UpdateColumn("in_stock", false).Error; err != nil {
			return fmt.Errorf("failed to update stock flag for product %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// reserveStock decrements a single product's stock only if enough is
// available, in one conditional statement. Two concurrent checkouts for the
// last unit cannot both succeed: the second sees zero rows affected.
func reserveStock(tx *gorm.DB, productID uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return false, fmt.Errorf("failed to reserve stock for product %s: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity <= 0", productID).
		UpdateColumn("in_stock", false).Error; err != nil {
		return false, fmt.Errorf("failed to update stock flag for product %s: %w", productID, err)
	}

	return true, nil
}
