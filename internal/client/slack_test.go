package client

import (
	"strings"
	"testing"

	"github.com/checkout-sre/backend/internal/model"
)

func TestFormatSubject(t *testing.T) {
	incident := model.Incident{
		Severity:  "page",
		Service:   "checkout",
		AlertName: "CheckoutHighErrorRate",
		Status:    "firing",
	}

	got := formatSubject(incident)
	want := "[PAGE] checkout - CheckoutHighErrorRate (firing)"
	if got != want {
		t.Fatalf("formatSubject() = %q, want %q", got, want)
	}
}

func TestFormatBodyTruncation(t *testing.T) {
	incident := model.Incident{
		IncidentID: "inc-1",
		Annotations: map[string]string{
			"description": strings.Repeat("a", maxNotificationChars+1000),
		},
	}

	body := formatBody(incident)
	if len(body) != maxNotificationChars {
		t.Fatalf("body length = %d, want truncated to %d", len(body), maxNotificationChars)
	}
}

func TestFormatBodyPrettyPrinted(t *testing.T) {
	incident := model.Incident{IncidentID: "inc-1", AlertName: "CheckoutDown"}

	body := formatBody(incident)
	if !strings.Contains(body, "\n  \"incident_id\": \"inc-1\"") {
		t.Fatalf("body must be pretty-printed JSON: %s", body)
	}
}
