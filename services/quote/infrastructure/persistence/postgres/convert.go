package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	return &id.UUID
}

func nullStatus(s *models.Status) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: s.String(), Valid: true}
}

// discountColumns splits a discount into its three nullable columns.
func discountColumns(d *models.Discount) (decimal.NullDecimal, sql.NullString, sql.NullString) {
	if d == nil {
		return decimal.NullDecimal{}, sql.NullString{}, sql.NullString{}
	}
	return decimal.NullDecimal{Decimal: d.Value, Valid: true},
		sql.NullString{String: string(d.Type), Valid: true},
		nullString(d.Reason)
}

func fromDiscountColumns(value decimal.NullDecimal, typ, reason sql.NullString) *models.Discount {
	if !value.Valid || !typ.Valid {
		return nil
	}
	return &models.Discount{Value: value.Decimal, Type: models.DiscountType(typ.String), Reason: fromNullString(reason)}
}

func lifecycle(status string, approvedAt, rejectedAt sql.NullTime, reason sql.NullString) models.Lifecycle {
	return models.Lifecycle{
		Status:          models.Status(status),
		ApprovedAt:      fromNullTime(approvedAt),
		RejectedAt:      fromNullTime(rejectedAt),
		RejectionReason: fromNullString(reason),
	}
}
