// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mealplanner"

type Metrics struct {
	registry *prometheus.Registry

	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	planGenerations  *prometheus.CounterVec
	mealReplacements *prometheus.CounterVec
	partialImports   prometheus.Counter
	shoppingLists    prometheus.Counter
	quotaRejections  *prometheus.CounterVec
	domainEvents     *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		providerCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Outbound recipe provider requests by operation and status",
		}, []string{"op", "status"}),
		providerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Outbound recipe provider latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"op"}),
		planGenerations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mealplan",
			Name:      "generations_total",
			Help:      "Meal plan generation attempts by outcome",
		}, []string{"outcome"}),
		mealReplacements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mealplan",
			Name:      "replacements_total",
			Help:      "Meal replacement attempts by outcome",
		}, []string{"outcome"}),
		partialImports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "importer",
			Name:      "partial_failures_total",
			Help:      "Ingredients or detail fetches skipped during recipe import",
		}),
		shoppingLists: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shopping",
			Name:      "lists_built_total",
			Help:      "Shopping lists rebuilt",
		}),
		quotaRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quota",
			Name:      "rejections_total",
			Help:      "Requests refused by the daily provider quota",
		}, []string{"tier"}),
		domainEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "consumed_total",
			Help:      "Domain events consumed from the bus",
		}, []string{"type"}),
	}
}

func (m *Metrics) ObserveProviderCall(op string, status string, duration time.Duration) {
	m.providerCalls.WithLabelValues(op, status).Inc()
	m.providerDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *Metrics) PlanGeneration(outcome string) {
	m.planGenerations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) MealReplacement(outcome string) {
	m.mealReplacements.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PartialImportFailure() {
	m.partialImports.Inc()
}

func (m *Metrics) ShoppingListBuilt() {
	m.shoppingLists.Inc()
}

func (m *Metrics) QuotaRejected(tier string) {
	m.quotaRejections.WithLabelValues(tier).Inc()
}

func (m *Metrics) DomainEvent(eventType string) {
	m.domainEvents.WithLabelValues(eventType).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
