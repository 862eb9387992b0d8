package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProfessionalRegisteredEvent_JSONFieldNames(t *testing.T) {
	evt := ProfessionalRegisteredEvent{
		EventID:        uuid.New(),
		Version:        1,
		ProfessionalID: uuid.New(),
		Email:          "ana@example.com",
		OccurredAt:     time.Now().UTC(),
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_id", "version", "professional_id", "email", "occurred_at"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
	if strings.Contains(string(raw), "password") {
		t.Fatal("event must not carry password material")
	}
}
