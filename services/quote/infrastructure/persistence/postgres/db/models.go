package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID              uuid.UUID
	ProfessionalID  uuid.UUID
	ClientID        uuid.UUID
	Name            string
	Notes           sql.NullString
	ValidUntil      sql.NullTime
	Subtotal        decimal.Decimal
	TotalValue      decimal.Decimal
	Discount        decimal.NullDecimal
	DiscountType    sql.NullString
	DiscountReason  sql.NullString
	Status          string
	ApprovedAt      sql.NullTime
	RejectedAt      sql.NullTime
	RejectionReason sql.NullString
	AccessLink      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type BudgetItem struct {
	ID          uuid.UUID
	BudgetID    uuid.UUID
	Name        string
	Description sql.NullString
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Unit        string
	ServiceID   uuid.NullUUID
	MaterialID  uuid.NullUUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MaterialList struct {
	ID              uuid.UUID
	ProfessionalID  uuid.UUID
	ClientID        uuid.UUID
	BudgetID        uuid.NullUUID
	Name            string
	Notes           sql.NullString
	Subtotal        decimal.Decimal
	TotalValue      decimal.Decimal
	Status          string
	ApprovedAt      sql.NullTime
	RejectedAt      sql.NullTime
	RejectionReason sql.NullString
	AccessLink      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type MaterialListItem struct {
	ID             uuid.UUID
	MaterialListID uuid.UUID
	Name           string
	Description    sql.NullString
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	Unit           string
	MaterialID     uuid.NullUUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CatalogEntry struct {
	ID          uuid.UUID
	Name        string
	Description sql.NullString
	Price       decimal.Decimal
	Unit        string
}
