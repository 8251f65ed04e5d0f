package models

import (
	"time"

	"github.com/google/uuid"
)

// IntroductionStatus — жизненный цикл знакомства (отдельный от статуса пары).
type IntroductionStatus string

const (
	IntroductionPending      IntroductionStatus = "pending"
	IntroductionSent         IntroductionStatus = "sent"
	IntroductionAcceptedOne  IntroductionStatus = "accepted_one"
	IntroductionAcceptedBoth IntroductionStatus = "accepted_both"
	IntroductionDeclined     IntroductionStatus = "declined"
	IntroductionCompleted    IntroductionStatus = "completed"
)

// Response — ответ одной стороны на знакомство.
type Response string

const (
	ResponseNone     Response = ""
	ResponseAccepted Response = "accepted"
	ResponseDeclined Response = "declined"
)

// Introduction — знакомство, составленное сватом на основе пары.
type Introduction struct {
	ID               uuid.UUID          `json:"id"`
	MatchID          uuid.UUID          `json:"match_id"`
	Profile1ID       uuid.UUID          `json:"profile1_id"`
	Profile2ID       uuid.UUID          `json:"profile2_id"`
	Status           IntroductionStatus `json:"status"`
	Message          string             `json:"message"`
	Profile1Response Response           `json:"profile1_response,omitempty"`
	Profile2Response Response           `json:"profile2_response,omitempty"`
	Outcome          string             `json:"outcome,omitempty"`
	Version          int64              `json:"version"`
	CreatedAt        time.Time          `json:"created_at"`
	SentAt           *time.Time         `json:"sent_at,omitempty"`
	RespondedAt      *time.Time         `json:"responded_at,omitempty"`
}

// Pair возвращает неупорядоченный ключ пары профилей знакомства.
func (i Introduction) Pair() PairKey {
	return NewPairKey(i.Profile1ID, i.Profile2ID)
}

// NextStatus вычисляет статус знакомства по ответам сторон.
// Отказ любой стороны -> declined; оба согласия -> accepted_both; одно -> accepted_one.
func (i Introduction) NextStatus() IntroductionStatus {
	switch {
	case i.Profile1Response == ResponseDeclined || i.Profile2Response == ResponseDeclined:
		return IntroductionDeclined
	case i.Profile1Response == ResponseAccepted && i.Profile2Response == ResponseAccepted:
		return IntroductionAcceptedBoth
	case i.Profile1Response == ResponseAccepted || i.Profile2Response == ResponseAccepted:
		return IntroductionAcceptedOne
	default:
		return i.Status
	}
}
