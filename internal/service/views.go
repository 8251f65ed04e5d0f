package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/pribylovaa/go-matrimony/internal/compatibility"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
)

// Выходные структуры сервисного слоя для списков и карточек.

// ProfileSummary — краткие сведения о стороне пары/знакомства.
type ProfileSummary struct {
	ID                 uuid.UUID                `json:"id"`
	Name               string                   `json:"name"`
	Age                int                      `json:"age"`
	Occupation         string                   `json:"occupation"`
	Location           string                   `json:"location"`
	VerificationStatus models.VerificationState `json:"verification_status"`
}

func summarize(p models.Profile) ProfileSummary {
	return ProfileSummary{
		ID:                 p.ID,
		Name:               p.Name,
		Age:                p.Age,
		Occupation:         p.Occupation,
		Location:           p.Location,
		VerificationStatus: p.VerificationStatus,
	}
}

// MatchView — пара с данными обеих сторон и диапазоном оценки.
type MatchView struct {
	models.Match
	Band     compatibility.Band `json:"band"`
	Profile1 ProfileSummary     `json:"profile1"`
	Profile2 ProfileSummary     `json:"profile2"`
}

// IntroductionView — знакомство с данными обеих сторон.
type IntroductionView struct {
	models.Introduction
	Profile1 ProfileSummary `json:"profile1"`
	Profile2 ProfileSummary `json:"profile2"`
}

// VerificationView — заявка в очереди вместе с профилем.
type VerificationView struct {
	models.Verification
	Profile ProfileSummary `json:"profile"`
}

// PaymentView — платёж с суммой в базовой валюте.
type PaymentView struct {
	models.Payment
	BaseAmount decimal.Decimal `json:"base_amount"`
}

// schemas — описания полей для запросов к коллекциям.
type schemas struct {
	profiles      *query.Schema[models.Profile]
	matches       *query.Schema[MatchView]
	introductions *query.Schema[IntroductionView]
	verifications *query.Schema[VerificationView]
	payments      *query.Schema[PaymentView]
	conversations *query.Schema[models.Conversation]
}

func newSchemas(lang language.Tag) schemas {
	return schemas{
		profiles: query.NewSchema[models.Profile](lang).
			Sortable("name", query.StringField(func(p models.Profile) string { return p.Name })).
			Sortable("age", query.IntField(func(p models.Profile) int { return p.Age })).
			Sortable("location", query.StringField(func(p models.Profile) string { return p.Location })).
			Sortable("signup_at", query.TimeField(func(p models.Profile) time.Time { return p.SignupAt })).
			Sortable("views", query.IntField(func(p models.Profile) int { return p.Counters.Views })).
			Searchable(
				func(p models.Profile) string { return p.Name },
				func(p models.Profile) string { return p.Email },
				func(p models.Profile) string { return p.Location },
				func(p models.Profile) string { return p.Occupation },
			).
			Enum("status", func(p models.Profile) string { return string(p.Status) }).
			Enum("verification_status", func(p models.Profile) string { return string(p.VerificationStatus) }).
			Enum("gender", func(p models.Profile) string { return string(p.Gender) }).
			Enum("religion", func(p models.Profile) string { return p.Religion }).
			Enum("family_type", func(p models.Profile) string { return string(p.FamilyType) }),

		matches: query.NewSchema[MatchView](lang).
			Sortable("score", query.IntField(func(m MatchView) int { return m.CompatibilityScore })).
			Sortable("created_at", query.TimeField(func(m MatchView) time.Time { return m.CreatedAt })).
			Sortable("updated_at", query.TimeField(func(m MatchView) time.Time { return m.UpdatedAt })).
			Sortable("name", query.StringField(func(m MatchView) string { return m.Profile1.Name })).
			Searchable(
				func(m MatchView) string { return m.Profile1.Name },
				func(m MatchView) string { return m.Profile2.Name },
				func(m MatchView) string { return m.Notes },
			).
			Enum("status", func(m MatchView) string { return string(m.Status) }).
			Enum("band", func(m MatchView) string { return string(m.Band) }),

		introductions: query.NewSchema[IntroductionView](lang).
			Sortable("created_at", query.TimeField(func(i IntroductionView) time.Time { return i.CreatedAt })).
			Sortable("sent_at", query.TimeField(func(i IntroductionView) time.Time { return deref(i.SentAt) })).
			Sortable("status", query.StringField(func(i IntroductionView) string { return string(i.Status) })).
			Searchable(
				func(i IntroductionView) string { return i.Profile1.Name },
				func(i IntroductionView) string { return i.Profile2.Name },
				func(i IntroductionView) string { return i.Message },
			).
			Enum("status", func(i IntroductionView) string { return string(i.Status) }),

		verifications: query.NewSchema[VerificationView](lang).
			Sortable("submitted_at", query.TimeField(func(v VerificationView) time.Time { return v.SubmittedAt })).
			Sortable("name", query.StringField(func(v VerificationView) string { return v.Profile.Name })).
			Searchable(func(v VerificationView) string { return v.Profile.Name }).
			Enum("document_type", func(v VerificationView) string { return string(v.DocumentType) }),

		payments: query.NewSchema[PaymentView](lang).
			Sortable("amount", query.NumberField(func(p PaymentView) float64 { return p.BaseAmount.InexactFloat64() })).
			Sortable("created_at", query.TimeField(func(p PaymentView) time.Time { return p.CreatedAt })).
			Sortable("payer_name", query.StringField(func(p PaymentView) string { return p.PayerName })).
			Searchable(
				func(p PaymentView) string { return p.PayerName },
				func(p PaymentView) string { return p.Reference },
				func(p PaymentView) string { return p.Method },
			).
			Enum("status", func(p PaymentView) string { return string(p.Status) }).
			Enum("type", func(p PaymentView) string { return string(p.Type) }).
			Enum("currency", func(p PaymentView) string { return p.Currency }).
			Enum("method", func(p PaymentView) string { return p.Method }),

		conversations: query.NewSchema[models.Conversation](lang).
			Sortable("last_message_at", query.TimeField(func(c models.Conversation) time.Time { return deref(c.LastMessageAt) })).
			Sortable("unread", query.IntField(func(c models.Conversation) int { return c.UnreadCount })).
			Sortable("title", query.StringField(func(c models.Conversation) string { return c.Title })).
			Searchable(
				func(c models.Conversation) string { return c.Title },
				func(c models.Conversation) string { return c.LastMessage },
			),
	}
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// profileIndex — профили по идентификатору для сборки представлений.
type profileIndex map[uuid.UUID]models.Profile

func indexProfiles(ps []models.Profile) profileIndex {
	out := make(profileIndex, len(ps))
	for _, p := range ps {
		out[p.ID] = p
	}
	return out
}

func (idx profileIndex) summary(id uuid.UUID) ProfileSummary {
	if p, ok := idx[id]; ok {
		return summarize(p)
	}
	return ProfileSummary{ID: id}
}

func (idx profileIndex) matchView(m models.Match) MatchView {
	return MatchView{
		Match:    m,
		Band:     compatibility.BandOf(m.CompatibilityScore),
		Profile1: idx.summary(m.Profile1ID),
		Profile2: idx.summary(m.Profile2ID),
	}
}

func (idx profileIndex) introductionView(i models.Introduction) IntroductionView {
	return IntroductionView{
		Introduction: i,
		Profile1:     idx.summary(i.Profile1ID),
		Profile2:     idx.summary(i.Profile2ID),
	}
}
