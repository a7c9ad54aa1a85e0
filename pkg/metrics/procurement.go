package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ProcurementMetrics counts lifecycle operations on purchase orders, awards and wizard drafts.
// A nil *ProcurementMetrics is valid and records nothing.
type ProcurementMetrics struct {
	draftsCreated  prometheus.Counter
	draftsDeleted  prometheus.Counter
	poTransitions  *prometheus.CounterVec
	awardDecisions *prometheus.CounterVec
	lineOutcomes   *prometheus.CounterVec
	draftStoreOps  *prometheus.CounterVec
}

// NewProcurementMetrics registers the procurement metrics on the provided registerer.
func NewProcurementMetrics(reg prometheus.Registerer) *ProcurementMetrics {
	if reg == nil {
		return &ProcurementMetrics{}
	}
	draftsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "procureflow_draft_pos_created_total",
		Help: "Draft purchase orders created from order item selections.",
	})
	draftsDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "procureflow_draft_pos_deleted_total",
		Help: "Draft purchase orders deleted with their items reverted.",
	})
	poTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "procureflow_po_status_transitions_total",
		Help: "Purchase order status transitions applied.",
	}, []string{"from", "to"})
	awardDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "procureflow_award_decisions_total",
		Help: "Supplier award decisions by resulting status.",
	}, []string{"outcome"})
	lineOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "procureflow_po_line_outcomes_total",
		Help: "Award outcomes recorded onto purchase order lines.",
	}, []string{"result"})
	draftStoreOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "procureflow_wizard_draft_operations_total",
		Help: "Award wizard draft store operations by result.",
	}, []string{"op", "result"})
	reg.MustRegister(draftsCreated, draftsDeleted, poTransitions, awardDecisions, lineOutcomes, draftStoreOps)
	return &ProcurementMetrics{
		draftsCreated:  draftsCreated,
		draftsDeleted:  draftsDeleted,
		poTransitions:  poTransitions,
		awardDecisions: awardDecisions,
		lineOutcomes:   lineOutcomes,
		draftStoreOps:  draftStoreOps,
	}
}

func (m *ProcurementMetrics) AddDraftsCreated(n int) {
	if m == nil || m.draftsCreated == nil || n <= 0 {
		return
	}
	m.draftsCreated.Add(float64(n))
}

func (m *ProcurementMetrics) IncDraftDeleted() {
	if m == nil || m.draftsDeleted == nil {
		return
	}
	m.draftsDeleted.Inc()
}

// IncPOTransition counts one purchase order moving from one status to another.
func (m *ProcurementMetrics) IncPOTransition(from, to string) {
	if m == nil || m.poTransitions == nil {
		return
	}
	m.poTransitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

func (m *ProcurementMetrics) IncAwardDecision(outcome string) {
	if m == nil || m.awardDecisions == nil {
		return
	}
	m.awardDecisions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncLineOutcome counts an award outcome landing on a PO line ("matched") or finding none ("unmatched").
func (m *ProcurementMetrics) IncLineOutcome(result string) {
	if m == nil || m.lineOutcomes == nil {
		return
	}
	m.lineOutcomes.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncDraftStoreOp counts a wizard draft save/load/delete by result (ok, miss, error, corrupt).
func (m *ProcurementMetrics) IncDraftStoreOp(op, result string) {
	if m == nil || m.draftStoreOps == nil {
		return
	}
	m.draftStoreOps.WithLabelValues(normalizeLabel(op), normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
