package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID             int64
	OperationID    uuid.UUID
	Amount         decimal.Decimal
	PayerID        int64
	PayerINN       string
	DocumentNumber string
	DocumentDate   time.Time
	CreatedAt      time.Time
}

type BalanceLog struct {
	ID             int64
	OrganizationID int64
	PaymentID      int64
	OperationID    uuid.UUID
	AmountChanged  decimal.Decimal
	Timestamp      time.Time
}

// WebhookRequest is a bank notification exactly as received. Fields are
// kept as text so every field can be reported when invalid.
type WebhookRequest struct {
	OperationID    string
	Amount         string
	PayerINN       string
	DocumentNumber string
	DocumentDate   string
}

// Webhook is a validated bank notification.
type Webhook struct {
	OperationID    uuid.UUID
	Amount         decimal.Decimal
	PayerINN       string
	DocumentNumber string
	DocumentDate   time.Time
}

type ProcessStatus string

const (
	ProcessStatusCreated   ProcessStatus = "CREATED"
	ProcessStatusDuplicate ProcessStatus = "DUPLICATE"
)

type ProcessResult struct {
	Status    ProcessStatus
	PaymentID int64
	Balance   decimal.Decimal
}

// CreditParams is what the storage layer needs to record one credit.
type CreditParams struct {
	OrganizationID int64
	OperationID    uuid.UUID
	Amount         decimal.Decimal
	DocumentNumber string
	DocumentDate   time.Time
}

type CreditResult struct {
	PaymentID int64
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// BalanceCredited is published after a credit is committed.
type BalanceCredited struct {
	EventID        uuid.UUID
	OperationID    uuid.UUID
	INN            string
	Amount         decimal.Decimal
	Balance        decimal.Decimal
	DocumentNumber string
	DocumentDate   time.Time
	CreditedAt     time.Time
}
