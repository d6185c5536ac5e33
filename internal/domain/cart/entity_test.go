// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_Add(t *testing.T) {
	c := NewCart(1)

	c.Add(10, 2)
	assert.Equal(t, 1, len(c.Items))
	assert.Equal(t, 2, c.Quantity(10))

	// same product increments the existing line
	c.Add(10, 3)
	assert.Equal(t, 1, len(c.Items))
	assert.Equal(t, 5, c.Quantity(10))

	// different product gets its own line
	c.Add(20, 1)
	assert.Equal(t, 2, len(c.Items))
	assert.Equal(t, 1, c.Quantity(20))

	// non-positive quantities are ignored
	c.Add(30, 0)
	c.Add(30, -1)
	assert.Equal(t, 2, len(c.Items))
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart(1)
	c.Add(10, 2)

	ok := c.SetQuantity(10, 7)
	assert.True(t, ok)
	assert.Equal(t, 7, c.Quantity(10))

	// zero removes the line
	ok = c.SetQuantity(10, 0)
	assert.True(t, ok)
	assert.True(t, c.IsEmpty())

	// unknown product
	ok = c.SetQuantity(99, 3)
	assert.False(t, ok)
}

func TestCart_Remove(t *testing.T) {
	c := NewCart(1)
	c.Add(10, 2)
	c.Add(20, 1)

	assert.True(t, c.Remove(10))
	assert.Equal(t, 0, c.Quantity(10))
	assert.Equal(t, 1, len(c.Items))

	assert.False(t, c.Remove(10))
}
