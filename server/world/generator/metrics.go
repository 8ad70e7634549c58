package generator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work done by a Generator per vein type. A nil *Metrics is valid and records nothing.
type Metrics struct {
	veins      *prometheus.CounterVec
	blocks     *prometheus.CounterVec
	indicators *prometheus.CounterVec
}

// NewMetrics creates Metrics and registers its collectors with the Registerer passed, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		veins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oreveins",
			Name:      "veins_created_total",
			Help:      "Veins created while generating chunks, counted once per chunk they reach into.",
		}, []string{"vein"}),
		blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oreveins",
			Name:      "blocks_placed_total",
			Help:      "Ore blocks placed by veins.",
		}, []string{"vein"}),
		indicators: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oreveins",
			Name:      "indicators_placed_total",
			Help:      "Indicator blocks placed above veins.",
		}, []string{"vein"}),
	}
	if reg != nil {
		reg.MustRegister(m.veins, m.blocks, m.indicators)
	}
	return m
}

// AddVeins increments the veins counter of a vein type.
func (m *Metrics) AddVeins(id string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.veins.WithLabelValues(id).Add(float64(n))
}

// AddBlocks increments the placed blocks counter of a vein type.
func (m *Metrics) AddBlocks(id string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.blocks.WithLabelValues(id).Add(float64(n))
}

// AddIndicators increments the placed indicators counter of a vein type.
func (m *Metrics) AddIndicators(id string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.indicators.WithLabelValues(id).Add(float64(n))
}
