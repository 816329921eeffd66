package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart activity
	CartItemsAdded   *prometheus.CounterVec
	CartItemsRemoved *prometheus.CounterVec
	CartRejections   *prometheus.CounterVec // reason: out_of_stock, max_quantity

	// Checkout funnel
	SalesCommitted     *prometheus.CounterVec // channel: pos, online
	SaleValue          *prometheus.HistogramVec
	SaleItemCount      *prometheus.HistogramVec
	CommitRejections   *prometheus.CounterVec // reason: empty_ticket, insufficient_stock, persistence

	// Inventory
	StockAdjustments  *prometheus.CounterVec // direction: up, down
	StockUnderflows   prometheus.Counter

	// Deliveries
	DeliveriesCreated   prometheus.Counter
	DeliveriesCompleted prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "shopinger"
	}

	subsystem := "business"

	return &BusinessMetrics{
		CartItemsAdded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total cart line additions and merges",
			},
			[]string{"product_id"},
		),
		CartItemsRemoved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_removed_total",
				Help:      "Total cart line removals",
			},
			[]string{"product_id"},
		),
		CartRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_rejections_total",
				Help:      "Cart mutations rejected by the advisory stock guard",
			},
			[]string{"reason"},
		),
		SalesCommitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sales_committed_total",
				Help:      "Successfully committed sales",
			},
			[]string{"channel"},
		),
		SaleValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sale_value_cents",
				Help:      "Committed sale totals in cents",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
			},
			[]string{"channel"},
		),
		SaleItemCount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sale_item_count",
				Help:      "Distinct lines per committed sale",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"channel"},
		),
		CommitRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commit_rejections_total",
				Help:      "Commit attempts rejected before or during the write",
			},
			[]string{"reason"},
		),
		StockAdjustments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_adjustments_total",
				Help:      "Admin stock adjustments by direction",
			},
			[]string{"direction"},
		),
		StockUnderflows: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_underflows_total",
				Help:      "Adjustments rejected for driving stock below zero",
			},
		),
		DeliveriesCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deliveries_created_total",
				Help:      "Delivery records seeded from committed sales",
			},
		),
		DeliveriesCompleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deliveries_completed_total",
				Help:      "Deliveries marked delivered",
			},
		),
	}
}
