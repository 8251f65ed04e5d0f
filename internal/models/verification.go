package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType — вид документа, удостоверяющего личность.
type DocumentType string

const (
	DocumentNationalID DocumentType = "national_id"
	DocumentPassport   DocumentType = "passport"
)

// Valid сообщает, входит ли значение в перечисление.
func (d DocumentType) Valid() bool {
	return d == DocumentNationalID || d == DocumentPassport
}

// VerificationStatus — статус заявки на проверку.
type VerificationStatus string

const (
	VerificationRequestPending  VerificationStatus = "pending"
	VerificationRequestApproved VerificationStatus = "approved"
	VerificationRequestRejected VerificationStatus = "rejected"
)

// Verification — заявка на проверку личности одного профиля.
// На профиль допускается не более одной заявки в статусе pending.
type Verification struct {
	ID           uuid.UUID          `json:"id"`
	ProfileID    uuid.UUID          `json:"profile_id"`
	DocumentType DocumentType       `json:"document_type"`
	Status       VerificationStatus `json:"status"`
	ReviewerNote string             `json:"reviewer_note,omitempty"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty"`
}
