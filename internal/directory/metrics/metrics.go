package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module. Tracks aggregate
// lifecycle counts and critical path durations.
type Metrics struct {
	PersonsCreated      prometheus.Counter
	AdminPersonsCreated prometheus.Counter
	PersonsDeleted      prometheus.Counter
	CreateDuration      prometheus.Histogram
	DeleteDuration      prometheus.Histogram
	FindDuration        prometheus.Histogram
}

// New creates a Metrics instance with all directory metrics registered.
func New() *Metrics {
	return &Metrics{
		PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgdir_persons_created_total",
			Help: "Total number of persons created",
		}),
		AdminPersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgdir_admin_persons_created_total",
			Help: "Total number of persons created with principal and account",
		}),
		PersonsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgdir_persons_deleted_total",
			Help: "Total number of persons cascade-deleted",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "orgdir_person_create_duration_seconds",
			Help:    "Duration of person aggregate creation transactions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		DeleteDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "orgdir_person_delete_duration_seconds",
			Help:    "Duration of person cascade delete transactions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FindDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "orgdir_person_find_duration_seconds",
			Help:    "Duration of person reads including requested subgraphs",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveCreate records the duration of a create transaction.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

// ObserveDelete records the duration of a cascade delete transaction.
func (m *Metrics) ObserveDelete(start time.Time) {
	m.DeleteDuration.Observe(time.Since(start).Seconds())
}

// ObserveFind records the duration of a composed read.
func (m *Metrics) ObserveFind(start time.Time) {
	m.FindDuration.Observe(time.Since(start).Seconds())
}
