package models

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain"
)

func TestNameLengthCountsCharacters(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"multi-byte within limit", strings.Repeat("ç", 150), false},
		{"multi-byte at limit", strings.Repeat("é", MaxNameLength), false},
		{"multi-byte over limit", strings.Repeat("é", MaxNameLength+1), true},
		{"ascii over limit", strings.Repeat("a", MaxNameLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuote(KindBudget, uuid.New(), uuid.New(), tt.input, now)
			if got := errors.Is(err, domain.ErrInvalidName); got != tt.wantErr {
				t.Fatalf("NewQuote: wantErr=%v, got %v", tt.wantErr, err)
			}

			q := &Quote{Name: "x"}
			if got := errors.Is(q.Rename(tt.input), domain.ErrInvalidName); got != tt.wantErr {
				t.Fatalf("Rename: wantErr=%v", tt.wantErr)
			}

			_, err = NewItem(uuid.New(), ItemSpec{Name: tt.input, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.Zero}, now)
			if got := errors.Is(err, domain.ErrInvalidName); got != tt.wantErr {
				t.Fatalf("NewItem: wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTruncateName(t *testing.T) {
	short := strings.Repeat("é", 139)
	if got := TruncateName(short); got != short {
		t.Fatalf("short name changed: %d runes", utf8.RuneCountInString(got))
	}

	long := strings.Repeat("ç", MaxNameLength+20)
	got := TruncateName(long)
	if n := utf8.RuneCountInString(got); n != MaxNameLength {
		t.Fatalf("want %d runes, got %d", MaxNameLength, n)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated name is not valid UTF-8")
	}
}
