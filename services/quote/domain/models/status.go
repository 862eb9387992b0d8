package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghuser/voltdesk/services/quote/domain"
)

// Status is the lifecycle state of a budget or material list.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

// ParseStatus accepts any casing of the four statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
}

func (s Status) String() string { return string(s) }

// Lifecycle holds the status and decision timestamps. ApprovedAt and
// RejectedAt are never both set.
type Lifecycle struct {
	Status          Status
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason *string
}

// NewLifecycle returns the initial PENDING lifecycle.
func NewLifecycle() Lifecycle {
	return Lifecycle{Status: StatusPending}
}

// Editable reports whether items, discount and descriptive fields may change.
func (l Lifecycle) Editable() bool {
	return l.Status == StatusPending
}

// Transition moves to status `to` regardless of the current status. reason is
// kept only when rejecting.
func (l *Lifecycle) Transition(to Status, reason *string, now time.Time) {
	l.Status = to
	switch to {
	case StatusApproved:
		l.ApprovedAt = &now
		l.RejectedAt = nil
		l.RejectionReason = nil
	case StatusRejected:
		l.RejectedAt = &now
		l.ApprovedAt = nil
		l.RejectionReason = nonEmpty(reason)
	default:
		l.ApprovedAt = nil
		l.RejectedAt = nil
		l.RejectionReason = nil
	}
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
