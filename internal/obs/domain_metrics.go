package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteBuildTotal counts quotation builds by outcome.
	QuoteBuildTotal *prometheus.CounterVec
	// CartMutationTotal counts cart state transitions by action.
	CartMutationTotal *prometheus.CounterVec
	// CartPersistFailures counts cart snapshots that could not be written to storage.
	CartPersistFailures prometheus.Counter
	// CartRestoreFallbacks counts startups where the persisted cart was missing or corrupt.
	CartRestoreFallbacks prometheus.Counter
	// ExportTotal counts quotation exports by format.
	ExportTotal *prometheus.CounterVec
	// CatalogCacheTotal counts catalog list cache lookups by result.
	CatalogCacheTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteBuildTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_build_total",
			Help:      "Count of quotation build outcomes.",
		}, []string{"result"})
		CartMutationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutation_total",
			Help:      "Count of cart state transitions by action.",
		}, []string{"action"})
		CartPersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_persist_failures_total",
			Help:      "Number of cart snapshot writes that failed.",
		})
		CartRestoreFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_restore_fallbacks_total",
			Help:      "Number of times the persisted cart could not be restored and an empty state was used.",
		})
		ExportTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_export_total",
			Help:      "Count of quotation exports by format.",
		}, []string{"format"})
		CatalogCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog list cache lookups by result.",
		}, []string{"result"})

		mustRegisterCollector(reg, QuoteBuildTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteBuildTotal = v
			}
		})
		mustRegisterCollector(reg, CartMutationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartMutationTotal = v
			}
		})
		mustRegisterCollector(reg, CartPersistFailures, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CartPersistFailures = v
			}
		})
		mustRegisterCollector(reg, CartRestoreFallbacks, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CartRestoreFallbacks = v
			}
		})
		mustRegisterCollector(reg, ExportTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ExportTotal = v
			}
		})
		mustRegisterCollector(reg, CatalogCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogCacheTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
