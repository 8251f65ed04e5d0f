package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus — статус платежа.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentType — назначение платежа.
type PaymentType string

const (
	PaymentSignup     PaymentType = "signup"
	PaymentPremium    PaymentType = "premium"
	PaymentSuccessFee PaymentType = "success_fee"
)

// Valid сообщает, входит ли значение в перечисление.
func (t PaymentType) Valid() bool {
	return t == PaymentSignup || t == PaymentPremium || t == PaymentSuccessFee
}

// Payment — запись в платёжной ведомости.
// Amount указан в валюте Currency; суммировать разные валюты можно только
// после пересчёта по таблице курсов (query.Revenue).
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	ProfileID uuid.UUID       `json:"profile_id"`
	PayerName string          `json:"payer_name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    string          `json:"method"`
	Status    PaymentStatus   `json:"status"`
	Type      PaymentType     `json:"type"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
