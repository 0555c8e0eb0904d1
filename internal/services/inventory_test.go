// internal/services/inventory_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/georgeY2002/E-Commerce/internal/models"
)

func TestStockDelta(t *testing.T) {
	tests := []struct {
		name string
		prev models.OrderStatus
		next models.OrderStatus
		want int
	}{
		{"pending to cancelled restores", models.OrderStatusPending, models.OrderStatusCancelled, +1},
		{"shipped to returned restores", models.OrderStatusShipped, models.OrderStatusReturned, +1},
		{"cancelled to processing deducts", models.OrderStatusCancelled, models.OrderStatusProcessing, -1},
		{"returned to delivered deducts", models.OrderStatusReturned, models.OrderStatusDelivered, -1},
		{"pending to shipped no movement", models.OrderStatusPending, models.OrderStatusShipped, 0},
		{"cancelled to returned no movement", models.OrderStatusCancelled, models.OrderStatusReturned, 0},
		{"delivered to delivered no movement", models.OrderStatusDelivered, models.OrderStatusDelivered, 0},
		{"cancelled to cancelled no movement", models.OrderStatusCancelled, models.OrderStatusCancelled, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockDelta(tt.prev, tt.next))
		})
	}
}

func TestReserveStockConditionalDecrement(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "Last Unit Watch", 100, 1)

	ok, err := reserveStock(db, product.ID, 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	// Second reservation must see zero rows affected
	ok, err = reserveStock(db, product.ID, 1)
	assert.NoError(t, err)
	assert.False(t, ok)

	got := reloadProduct(t, db, product.ID)
	assert.Equal(t, 0, got.StockQuantity)
	assert.False(t, got.InStock)
}
