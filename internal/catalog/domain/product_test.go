package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveID(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Walnut Tray", "walnut-tray"},
		{"Ceramic  Mug", "ceramic-mug"},
		{"  Brass Hook ", "brass-hook"},
		{"Lamp", "lamp"},
		{"OAK\tSHELF", "oak-shelf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, DeriveID(tc.name))
	}
}

func TestCatalog_Lookup(t *testing.T) {
	cat := NewCatalog([]Product{
		{ID: "walnut-tray", Name: "Walnut Tray", Price: 1299, InitialQty: 3},
		{ID: "ceramic-mug", Name: "Ceramic Mug", Price: 450, InitialQty: 2, Category: "kitchen"},
	})

	p, ok := cat.Get("ceramic-mug")
	assert.True(t, ok)
	assert.Equal(t, int64(450), p.Price)
	assert.True(t, cat.Has("walnut-tray"))
	assert.False(t, cat.Has("missing"))

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

func TestCatalog_InitialStockAndOrder(t *testing.T) {
	products := []Product{
		{ID: "b", Name: "B", Price: 1, InitialQty: 5},
		{ID: "a", Name: "A", Price: 2, InitialQty: 0},
	}
	cat := NewCatalog(products)

	assert.Equal(t, map[string]int{"b": 5, "a": 0}, cat.InitialStock())

	// Insertion order is preserved for rendering.
	got := cat.Products()
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	// Products returns a copy, not the backing slice.
	got[0].ID = "mutated"
	again := cat.Products()
	assert.Equal(t, "b", again[0].ID)
}
