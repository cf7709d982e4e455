package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Reservations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_reservations_total",
		Help: "Stock units reserved into the cart.",
	})

	ReservationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_reservation_failures_total",
		Help: "Rejected cart mutations by reason.",
	}, []string{"reason"})

	Releases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_releases_total",
		Help: "Stock units released from the cart back to the ledger.",
	})

	PersistenceWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_persistence_writes_total",
		Help: "State records flushed to the store.",
	})

	PersistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_persistence_failures_total",
		Help: "State record flushes that failed.",
	})

	AuditMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_audit_mismatches_total",
		Help: "Stock conservation mismatches found by the audit sweep.",
	})
)
