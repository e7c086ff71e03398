package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	PlanLoads           *prometheus.CounterVec
	SlotSaves           *prometheus.CounterVec
	DefaultsSubstituted *prometheus.CounterVec
	AutosaveFlushes     *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		PlanLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retireplan_plan_loads_total",
			Help: "Total number of plan loads by result",
		}, []string{"result"}),
		SlotSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retireplan_slot_saves_total",
			Help: "Total number of slot writes by slot and result",
		}, []string{"slot", "result"}),
		DefaultsSubstituted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retireplan_defaults_substituted_total",
			Help: "Total number of empty slots answered with default values",
		}, []string{"slot"}),
		AutosaveFlushes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retireplan_autosave_flushes_total",
			Help: "Total number of debounced autosave flushes by result",
		}, []string{"result"}),
	}
}

// NewNoop returns metrics registered with a throwaway registry, for tests and tools
func NewNoop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveLoad counts one plan load
func (m *Metrics) ObserveLoad(err error) {
	if m == nil {
		return
	}
	m.PlanLoads.WithLabelValues(result(err)).Inc()
}

// ObserveSave counts one slot write
func (m *Metrics) ObserveSave(slot string, err error) {
	if m == nil {
		return
	}
	m.SlotSaves.WithLabelValues(slot, result(err)).Inc()
}

// ObserveDefault counts one default substitution
func (m *Metrics) ObserveDefault(slot string) {
	if m == nil {
		return
	}
	m.DefaultsSubstituted.WithLabelValues(slot).Inc()
}

// ObserveFlush counts one autosave flush
func (m *Metrics) ObserveFlush(err error) {
	if m == nil {
		return
	}
	m.AutosaveFlushes.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
