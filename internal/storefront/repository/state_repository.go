package repository

import (
	"context"
	"errors"
)

var ErrStateNotFound = errors.New("state record not found")

// Record keys. Shared with previously persisted sessions; renaming one
// orphans its stored record.
const (
	KeyStock = "zv_stock"
	KeyCart  = "zv_cart"
	KeyWish  = "zv_wish"
)

// StateRepository is the persistence adapter: a named-record store holding
// the serialized stock map, cart, and wishlist. Load reports a missing record
// with ErrStateNotFound; callers fall back to derived defaults and never
// treat it as fatal.
type StateRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
