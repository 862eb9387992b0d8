package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/quote/domain/events"
)

func TestQuoteEvent_JSONFieldNames(t *testing.T) {
	reason := "fora do orçamento"
	evt := events.NewQuoteEvent("budget", uuid.New(), uuid.New(), "REJECTED", events.ActorClient, time.Now())
	evt.PreviousStatus = "PENDING"
	evt.Reason = &reason

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "kind", "quote_id", "professional_id", "status", "previous_status", "reason", "actor", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestQuoteEvent_OmitsEmptyOptionalFields(t *testing.T) {
	evt := events.NewQuoteEvent("material_list", uuid.New(), uuid.New(), "PENDING", events.ActorProfessional, time.Now())

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)

	for _, field := range []string{"previous_status", "reason"} {
		if _, ok := raw[field]; ok {
			t.Errorf("field %q should be omitted when empty: %s", field, data)
		}
	}
}

func TestNewQuoteEvent(t *testing.T) {
	local := time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	a := events.NewQuoteEvent("budget", uuid.New(), uuid.New(), "PENDING", events.ActorSystem, local)
	b := events.NewQuoteEvent("budget", uuid.New(), uuid.New(), "PENDING", events.ActorSystem, local)

	if a.EventID == b.EventID {
		t.Error("event ids must be unique")
	}
	if a.Version != events.CurrentVersion {
		t.Errorf("expected version %d, got %d", events.CurrentVersion, a.Version)
	}
	if a.OccurredAt.Location() != time.UTC || !a.OccurredAt.Equal(local) {
		t.Errorf("expected UTC instant equal to input, got %v", a.OccurredAt)
	}
}

func TestTopics(t *testing.T) {
	if len(events.Topics) != 4 {
		t.Fatalf("expected 4 topics, got %d", len(events.Topics))
	}
	if events.TopicQuoteStatusChanged != "quote.status_changed" {
		t.Errorf("unexpected topic %q", events.TopicQuoteStatusChanged)
	}
}
