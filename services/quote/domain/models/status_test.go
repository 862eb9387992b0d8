package models

import (
	"errors"
	"testing"
	"time"

	"github.com/ghuser/voltdesk/services/quote/domain"
)

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"PENDING": StatusPending, "approved": StatusApproved, " Rejected ": StatusRejected, "EXPIRED": StatusExpired,
	} {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStatus("CANCELLED"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestLifecycle_Transition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reason := "  preço acima do orçado  "

	t.Run("approve clears rejection", func(t *testing.T) {
		l := NewLifecycle()
		l.Transition(StatusRejected, &reason, now)
		l.Transition(StatusApproved, nil, now.Add(time.Hour))

		if l.Status != StatusApproved || l.ApprovedAt == nil || !l.ApprovedAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("unexpected lifecycle: %+v", l)
		}
		if l.RejectedAt != nil || l.RejectionReason != nil {
			t.Fatalf("rejection fields must be cleared: %+v", l)
		}
	})

	t.Run("reject keeps trimmed reason and clears approval", func(t *testing.T) {
		l := NewLifecycle()
		l.Transition(StatusApproved, nil, now)
		l.Transition(StatusRejected, &reason, now)

		if l.ApprovedAt != nil || l.RejectedAt == nil {
			t.Fatalf("unexpected timestamps: %+v", l)
		}
		if l.RejectionReason == nil || *l.RejectionReason != "preço acima do orçado" {
			t.Fatalf("unexpected reason: %v", l.RejectionReason)
		}
	})

	for _, to := range []Status{StatusPending, StatusExpired} {
		t.Run("to "+to.String()+" clears all", func(t *testing.T) {
			l := NewLifecycle()
			l.Transition(StatusRejected, &reason, now)
			l.Transition(to, nil, now)
			if l.Status != to || l.ApprovedAt != nil || l.RejectedAt != nil || l.RejectionReason != nil {
				t.Fatalf("unexpected lifecycle: %+v", l)
			}
		})
	}

	t.Run("same status is allowed", func(t *testing.T) {
		l := NewLifecycle()
		l.Transition(StatusApproved, nil, now)
		l.Transition(StatusApproved, nil, now.Add(time.Minute))
		if !l.ApprovedAt.Equal(now.Add(time.Minute)) {
			t.Fatalf("expected refreshed approvedAt, got %v", l.ApprovedAt)
		}
	})
}

func TestLifecycle_Editable(t *testing.T) {
	if !NewLifecycle().Editable() {
		t.Fatal("PENDING must be editable")
	}
	l := NewLifecycle()
	l.Transition(StatusExpired, nil, time.Now())
	if l.Editable() {
		t.Fatal("EXPIRED must not be editable")
	}
}
