package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	catalogDomain "github.com/zivra/storefront/internal/catalog/domain"
	"github.com/zivra/storefront/internal/platform/logger"
	"github.com/zivra/storefront/internal/platform/metrics"
	"github.com/zivra/storefront/internal/storefront/domain"
	"github.com/zivra/storefront/internal/storefront/repository"
)

// StorefrontService is the reconciliation engine: the only writer of the
// inventory ledger, the cart, and the wishlist. Every mutating operation runs
// to completion under the session lock and write-through persists all three
// state records before returning.
type StorefrontService interface {
	Hydrate(ctx context.Context)

	AddItem(ctx context.Context, productID string) error
	IncrementLine(ctx context.Context, index int) error
	DecrementLine(ctx context.Context, index int) error
	RemoveLine(ctx context.Context, index int) error
	ToggleWishlist(ctx context.Context, productID string) (bool, error)
	ResetState(ctx context.Context) error

	Total() int64
	InventoryOf(productID string) int
	CartLines() []domain.LineItem
	WishlistEntries() []domain.WishlistEntry
	ProductViews() []domain.ProductView
	OrderSummary() (string, int64)

	AuditStock(ctx context.Context) []StockMismatch
}

type storefrontServiceImpl struct {
	mu sync.Mutex

	catalog *catalogDomain.Catalog
	repo    repository.StateRepository

	ledger *domain.Ledger
	cart   []domain.LineItem
	wish   []domain.WishlistEntry
}

func NewStorefrontService(catalog *catalogDomain.Catalog, repo repository.StateRepository) StorefrontService {
	return &storefrontServiceImpl{
		catalog: catalog,
		repo:    repo,
		ledger:  domain.NewLedger(catalog.InitialStock()),
	}
}

// --- Hydration ---

// Hydrate replaces the in-memory state with whatever the store holds. Missing
// or corrupt records fall back to derived defaults (stock from the catalog's
// initial quantities, empty cart, empty wishlist); hydration never fails.
func (s *storefrontServiceImpl) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stock map[string]int
	if s.loadRecord(ctx, repository.KeyStock, &stock) {
		s.ledger = domain.NewLedger(stock)
	} else {
		s.ledger = domain.NewLedger(s.catalog.InitialStock())
	}

	var cart []domain.LineItem
	if s.loadRecord(ctx, repository.KeyCart, &cart) {
		s.cart = sanitizeCart(cart)
	} else {
		s.cart = nil
	}

	var wish []domain.WishlistEntry
	if s.loadRecord(ctx, repository.KeyWish, &wish) {
		s.wish = wish
	} else {
		s.wish = nil
	}

	logger.Info("Session hydrated: %d cart lines, %d wishlist entries", len(s.cart), len(s.wish))
}

// loadRecord reports whether the record existed and decoded cleanly.
func (s *storefrontServiceImpl) loadRecord(ctx context.Context, key string, out interface{}) bool {
	raw, err := s.repo.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrStateNotFound) {
			logger.Warn("Hydrate: load failed for %s, using defaults: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("Hydrate: corrupt record %s, using defaults: %v", key, err)
		return false
	}
	return true
}

// Zero and negative quantity lines never leave the engine, but a persisted
// record is still external input.
func sanitizeCart(cart []domain.LineItem) []domain.LineItem {
	out := cart[:0]
	for _, line := range cart {
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// --- Cart operations ---

func (s *storefrontServiceImpl) AddItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.Get(productID)
	if !ok {
		metrics.ReservationFailures.WithLabelValues("unknown_product").Inc()
		return domain.ErrUnknownProduct
	}
	if err := s.ledger.Reserve(productID); err != nil {
		metrics.ReservationFailures.WithLabelValues("out_of_stock").Inc()
		return err
	}

	if line := s.findLine(productID); line != nil {
		line.Quantity++
	} else {
		s.cart = append(s.cart, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
		})
	}

	metrics.Reservations.Inc()
	s.persistAll(ctx)
	return nil
}

func (s *storefrontServiceImpl) IncrementLine(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		metrics.ReservationFailures.WithLabelValues("invalid_index").Inc()
		return domain.ErrInvalidLineIndex
	}
	line := &s.cart[index]
	if err := s.ledger.Reserve(line.ProductID); err != nil {
		metrics.ReservationFailures.WithLabelValues("out_of_stock").Inc()
		return err
	}
	line.Quantity++

	metrics.Reservations.Inc()
	s.persistAll(ctx)
	return nil
}

func (s *storefrontServiceImpl) DecrementLine(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		return domain.ErrInvalidLineIndex
	}
	line := &s.cart[index]
	line.Quantity--
	s.ledger.Release(line.ProductID)
	if line.Quantity <= 0 {
		s.cart = append(s.cart[:index], s.cart[index+1:]...)
	}

	metrics.Releases.Inc()
	s.persistAll(ctx)
	return nil
}

func (s *storefrontServiceImpl) RemoveLine(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		return domain.ErrInvalidLineIndex
	}
	line := s.cart[index]
	// The whole quantity goes back in one step, not unit by unit.
	s.ledger.ReleaseQuantity(line.ProductID, line.Quantity)
	s.cart = append(s.cart[:index], s.cart[index+1:]...)

	metrics.Releases.Add(float64(line.Quantity))
	s.persistAll(ctx)
	return nil
}

// --- Wishlist ---

// ToggleWishlist reports the resulting membership. Applying it twice returns
// the wishlist to its prior state.
func (s *storefrontServiceImpl) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.Get(productID)
	if !ok {
		return false, domain.ErrUnknownProduct
	}

	for i, entry := range s.wish {
		if entry.ProductID == productID {
			s.wish = append(s.wish[:i], s.wish[i+1:]...)
			s.persistAll(ctx)
			return false, nil
		}
	}
	s.wish = append(s.wish, domain.WishlistEntry{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
	s.persistAll(ctx)
	return true, nil
}

// --- Reset ---

// ResetState drops the persisted records and re-derives stock from the
// catalog. Used when the operator replaces the catalog file.
func (s *storefrontServiceImpl) ResetState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{repository.KeyStock, repository.KeyCart, repository.KeyWish} {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete state record %s: %w", key, err)
		}
	}
	s.ledger = domain.NewLedger(s.catalog.InitialStock())
	s.cart = nil
	s.wish = nil
	logger.Info("Session state reset to catalog defaults")
	return nil
}

// --- Read models ---

func (s *storefrontServiceImpl) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *storefrontServiceImpl) totalLocked() int64 {
	var total int64
	for _, line := range s.cart {
		total += line.Subtotal()
	}
	return total
}

func (s *storefrontServiceImpl) InventoryOf(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(productID)
}

func (s *storefrontServiceImpl) CartLines() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *storefrontServiceImpl) WishlistEntries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WishlistEntry, len(s.wish))
	copy(out, s.wish)
	return out
}

func (s *storefrontServiceImpl) ProductViews() []domain.ProductView {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.catalog.Products()
	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		available := s.ledger.Get(p.ID)
		views = append(views, domain.ProductView{
			Product:   p,
			Available: available,
			SoldOut:   available == 0,
		})
	}
	return views
}

// OrderSummary renders the cart as the "<name> x<qty> = <subtotal>" lines the
// order form consumes, plus the grand total.
func (s *storefrontServiceImpl) OrderSummary() (string, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, 0, len(s.cart))
	for _, line := range s.cart {
		parts = append(parts, fmt.Sprintf("%s x%d = %d", line.Name, line.Quantity, line.Subtotal()))
	}
	return strings.Join(parts, ", "), s.totalLocked()
}

// --- Persistence ---

// persistAll is the write-through flush: all three records, every mutation,
// no batching. The in-memory mutation is already committed at this point, so
// a failed write is logged and counted rather than surfaced; the next
// successful mutation rewrites the records wholesale.
func (s *storefrontServiceImpl) persistAll(ctx context.Context) {
	s.saveRecord(ctx, repository.KeyStock, s.ledger.Levels())
	cart := s.cart
	if cart == nil {
		cart = []domain.LineItem{}
	}
	s.saveRecord(ctx, repository.KeyCart, cart)
	wish := s.wish
	if wish == nil {
		wish = []domain.WishlistEntry{}
	}
	s.saveRecord(ctx, repository.KeyWish, wish)
}

func (s *storefrontServiceImpl) saveRecord(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		metrics.PersistenceFailures.Inc()
		logger.Error("Persist: marshal failed for "+key, err, nil)
		return
	}
	if err := s.repo.Save(ctx, key, raw); err != nil {
		metrics.PersistenceFailures.Inc()
		logger.Error("Persist: save failed for "+key, err, nil)
		return
	}
	metrics.PersistenceWrites.Inc()
}

func (s *storefrontServiceImpl) findLine(productID string) *domain.LineItem {
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			return &s.cart[i]
		}
	}
	return nil
}
