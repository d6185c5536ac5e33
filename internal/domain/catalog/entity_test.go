package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
)

func TestProduct_CurrentPrice(t *testing.T) {
	tests := []struct {
		name      string
		price     int64
		stock     int
		threshold int
		want      int64
	}{
		{
			name:      "stock_above_threshold_base_price",
			price:     1000,
			stock:     6,
			threshold: 5,
			want:      1000,
		},
		{
			name:      "stock_at_threshold_doubled",
			price:     1000,
			stock:     5,
			threshold: 5,
			want:      2000,
		},
		{
			name:      "stock_below_threshold_doubled",
			price:     1000,
			stock:     2,
			threshold: 5,
			want:      2000,
		},
		{
			name:      "zero_stock_doubled",
			price:     750,
			stock:     0,
			threshold: 3,
			want:      1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := catalog.Product{
				Price:     tt.price,
				Stock:     tt.stock,
				Threshold: tt.threshold,
			}
			assert.Equal(t, tt.want, p.CurrentPrice())
		})
	}
}

func TestProduct_IsLowStock(t *testing.T) {
	p := catalog.Product{Stock: 5, Threshold: 5}
	assert.True(t, p.IsLowStock())

	p.Stock = 6
	assert.False(t, p.IsLowStock())
}

func TestProductType_Valid(t *testing.T) {
	assert.True(t, catalog.ProductTypeVegetable.Valid())
	assert.True(t, catalog.ProductTypeFruit.Valid())
	assert.False(t, catalog.ProductType("dairy").Valid())
}
