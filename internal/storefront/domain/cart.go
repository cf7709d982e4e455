package domain

import (
	"errors"

	catalogDomain "github.com/zivra/storefront/internal/catalog/domain"
)

var (
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrInvalidLineIndex = errors.New("cart line index does not exist")
	ErrUnknownProduct   = errors.New("product is not in the catalog")
)

// LineItem is one cart reservation. Name and UnitPrice are snapshots taken
// when the product was first added; later catalog changes do not touch them.
// Quantity is always positive: a line that would reach zero is removed.
//
// The JSON tags are the persisted wire format and must not change.
type LineItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"qty"`
}

func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// WishlistEntry is a product reference with snapshot data. Set semantics
// keyed by ProductID; no quantity and no stock interaction.
type WishlistEntry struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// ProductView is the read model handed to renderers: the catalog product plus
// its live availability.
type ProductView struct {
	catalogDomain.Product
	Available int  `json:"available"`
	SoldOut   bool `json:"sold_out"`
}
