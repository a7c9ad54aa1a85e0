package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestProcurementMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewProcurementMetrics(reg)

	m.AddDraftsCreated(3)
	m.AddDraftsCreated(0)
	m.IncDraftDeleted()
	m.IncPOTransition("draft", "cleared_by_commercial")
	m.IncPOTransition("draft", "cleared_by_commercial")
	m.IncAwardDecision("confirmed")
	m.IncLineOutcome("matched")
	m.IncDraftStoreOp("load", "")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := fetchPlainCounter(t, mfs, "procureflow_draft_pos_created_total"); got != 3 {
		t.Fatalf("expected drafts created=3, got %f", got)
	}
	if got := fetchPlainCounter(t, mfs, "procureflow_draft_pos_deleted_total"); got != 1 {
		t.Fatalf("expected drafts deleted=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "procureflow_po_status_transitions_total", "to", "cleared_by_commercial"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 2 {
		t.Fatalf("expected transitions=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "procureflow_award_decisions_total", "outcome", "confirmed"); err != nil {
		t.Fatalf("fetch decisions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected decisions=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "procureflow_po_line_outcomes_total", "result", "matched"); err != nil {
		t.Fatalf("fetch line outcomes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected line outcomes=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "procureflow_wizard_draft_operations_total", "result", "unknown"); err != nil {
		t.Fatalf("fetch draft ops: %v", err)
	} else if got != 1 {
		t.Fatalf("expected normalized label, got %f", got)
	}
}

func TestProcurementMetricsNilSafe(t *testing.T) {
	var m *ProcurementMetrics
	m.AddDraftsCreated(1)
	m.IncDraftDeleted()
	m.IncPOTransition("a", "b")
	m.IncAwardDecision("x")
	m.IncLineOutcome("x")
	m.IncDraftStoreOp("save", "ok")

	unregistered := NewProcurementMetrics(nil)
	unregistered.AddDraftsCreated(1)
	unregistered.IncPOTransition("a", "b")
}

func fetchPlainCounter(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatalf("metric %q not found", name)
	}
	return mf.GetMetric()[0].GetCounter().GetValue()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
