package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/zivra/storefront/internal/platform/logger"
	"github.com/zivra/storefront/internal/platform/metrics"
)

// StockMismatch is one product whose conservation invariant
// (available + carted == catalog initial) does not hold. The usual cause is a
// stock record persisted against an older catalog.
type StockMismatch struct {
	ProductID string `json:"product_id"`
	Expected  int    `json:"expected"`
	Available int    `json:"available"`
	Carted    int    `json:"carted"`
}

// AuditStock checks every catalog product against the conservation invariant
// and reports the mismatches. Read-only; repair is the operator's call
// (ResetState).
func (s *storefrontServiceImpl) AuditStock(ctx context.Context) []StockMismatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	carted := make(map[string]int, len(s.cart))
	for _, line := range s.cart {
		carted[line.ProductID] += line.Quantity
	}

	var mismatches []StockMismatch
	for _, p := range s.catalog.Products() {
		available := s.ledger.Get(p.ID)
		if available+carted[p.ID] != p.InitialQty {
			mismatches = append(mismatches, StockMismatch{
				ProductID: p.ID,
				Expected:  p.InitialQty,
				Available: available,
				Carted:    carted[p.ID],
			})
		}
	}

	if len(mismatches) > 0 {
		metrics.AuditMismatches.Add(float64(len(mismatches)))
		for _, m := range mismatches {
			logger.Warn("Audit: stock mismatch for %s: available %d + carted %d != initial %d",
				m.ProductID, m.Available, m.Carted, m.Expected)
		}
	} else {
		logger.Debug("Audit: stock conserved for all %d products", s.catalog.Len())
	}
	return mismatches
}

// AuditScheduler runs AuditStock on a cron spec (with seconds field). Kept
// outside the service constructor so tests never start a background cron.
type AuditScheduler struct {
	scheduler *cron.Cron
}

func NewAuditScheduler(svc StorefrontService, spec string) (*AuditScheduler, error) {
	scheduler := cron.New(cron.WithSeconds())
	_, err := scheduler.AddFunc(spec, func() {
		svc.AuditStock(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid audit cron spec %q: %w", spec, err)
	}
	return &AuditScheduler{scheduler: scheduler}, nil
}

func (a *AuditScheduler) Start() {
	a.scheduler.Start()
	logger.Info("Stock audit scheduler started")
}

func (a *AuditScheduler) Stop() {
	a.scheduler.Stop()
}
