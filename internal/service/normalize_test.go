package service

import (
	"testing"

	"github.com/checkout-sre/backend/internal/model"
)

func TestNewIncidentDefaults(t *testing.T) {
	incident := newIncident(model.RawAlert{}, "id-1", 1700000000)

	if incident.AlertName != "UnknownAlert" {
		t.Fatalf("alertName = %q, want UnknownAlert", incident.AlertName)
	}
	if incident.Severity != "ticket" {
		t.Fatalf("severity = %q, want ticket", incident.Severity)
	}
	if incident.Service != "unknown" {
		t.Fatalf("service = %q, want unknown", incident.Service)
	}
	if incident.Status != "firing" {
		t.Fatalf("status = %q, want firing", incident.Status)
	}
	if incident.IncidentID != "id-1" || incident.Timestamp != 1700000000 {
		t.Fatalf("id/timestamp not carried through")
	}
	if incident.Labels == nil || incident.Annotations == nil {
		t.Fatalf("labels/annotations must be non-nil maps")
	}
}

func TestNewIncidentCopiesPopulatedFields(t *testing.T) {
	raw := model.RawAlert{
		Labels: map[string]string{
			"alertname": "CheckoutDown",
			"severity":  "page",
			"service":   "checkout",
			"region":    "us-east-1",
		},
		Annotations: map[string]string{
			"runbook_action": "scale",
		},
		Status: "resolved",
	}

	incident := newIncident(raw, "id-2", 42)

	if incident.AlertName != "CheckoutDown" || incident.Severity != "page" ||
		incident.Service != "checkout" || incident.Status != "resolved" {
		t.Fatalf("populated fields must be copied without defaulting: %+v", incident)
	}
	if incident.Labels["region"] != "us-east-1" {
		t.Fatalf("labels not copied verbatim")
	}
	if incident.ActionOverride() != "scale" {
		t.Fatalf("ActionOverride() = %q, want scale", incident.ActionOverride())
	}

	// 원본 map 변경이 Incident에 영향을 주지 않아야 함
	raw.Labels["alertname"] = "mutated"
	if incident.Labels["alertname"] != "CheckoutDown" {
		t.Fatalf("labels must be a copy, not a reference")
	}
}

func TestNormalizeAlertFreshIDs(t *testing.T) {
	raw := model.RawAlert{Labels: map[string]string{"alertname": "CheckoutDown"}}

	first := NormalizeAlert(raw)
	second := NormalizeAlert(raw)

	if first.IncidentID == "" || second.IncidentID == "" {
		t.Fatalf("incident id must be generated")
	}
	if first.IncidentID == second.IncidentID {
		t.Fatalf("same raw alert must never yield colliding incident ids")
	}
	if first.AlertName != second.AlertName || first.Severity != second.Severity {
		t.Fatalf("non-id fields must be deterministic")
	}
}
