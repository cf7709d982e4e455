package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_ReserveAndRelease(t *testing.T) {
	l := NewLedger(map[string]int{"p1": 2})

	assert.NoError(t, l.Reserve("p1"))
	assert.Equal(t, 1, l.Get("p1"))
	assert.NoError(t, l.Reserve("p1"))
	assert.Equal(t, 0, l.Get("p1"))

	// Reserve on zero fails and mutates nothing.
	assert.ErrorIs(t, l.Reserve("p1"), ErrOutOfStock)
	assert.Equal(t, 0, l.Get("p1"))

	l.Release("p1")
	assert.Equal(t, 1, l.Get("p1"))
}

func TestLedger_UnknownProductReadsZero(t *testing.T) {
	l := NewLedger(nil)
	assert.Equal(t, 0, l.Get("ghost"))
	assert.ErrorIs(t, l.Reserve("ghost"), ErrOutOfStock)
}

func TestLedger_ReleaseQuantity(t *testing.T) {
	l := NewLedger(map[string]int{"p1": 0})
	l.ReleaseQuantity("p1", 3)
	assert.Equal(t, 3, l.Get("p1"))

	l.ReleaseQuantity("p1", 0)
	l.ReleaseQuantity("p1", -4)
	assert.Equal(t, 3, l.Get("p1"))
}

func TestLedger_ClampsNegativeLevels(t *testing.T) {
	l := NewLedger(map[string]int{"bad": -7, "ok": 1})
	assert.Equal(t, 0, l.Get("bad"))
	assert.Equal(t, 1, l.Get("ok"))
}

func TestLedger_LevelsReturnsCopy(t *testing.T) {
	l := NewLedger(map[string]int{"p1": 2})
	levels := l.Levels()
	levels["p1"] = 99
	assert.Equal(t, 2, l.Get("p1"))
}
