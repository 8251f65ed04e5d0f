package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// Dashboard — сводка для панели свата.
type Dashboard struct {
	Profiles              int             `json:"profiles"`
	ProfilesByStatus      map[string]int  `json:"profiles_by_status"`
	PendingVerifications  int             `json:"pending_verifications"`
	MatchesByStatus       map[string]int  `json:"matches_by_status"`
	IntroductionsByStatus map[string]int  `json:"introductions_by_status"`
	UnreadMessages        int             `json:"unread_messages"`
	Revenue               decimal.Decimal `json:"revenue"`
	Currency              string          `json:"currency"`
}

// Dashboard собирает сводку по одному согласованному снимку хранилища.
// Выручка — только завершённые платежи, пересчитанные в базовую валюту.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	const op = "service/dashboard/Dashboard"

	lg := log.From(ctx).With("op", op)

	var (
		profiles      []models.Profile
		verifications []models.Verification
		matches       []models.Match
		introductions []models.Introduction
		conversations []models.Conversation
		payments      []models.Payment
	)
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		profiles = tx.Profiles()
		verifications = tx.Verifications()
		matches = tx.Matches()
		introductions = tx.Introductions()
		conversations = tx.Conversations()
		payments = tx.Payments()
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	revenue, err := s.Revenue(payments)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	d := &Dashboard{
		Profiles:              len(profiles),
		ProfilesByStatus:      query.CountBy(profiles, func(p models.Profile) string { return string(p.Status) }),
		MatchesByStatus:       query.CountBy(matches, func(m models.Match) string { return string(m.Status) }),
		IntroductionsByStatus: query.CountBy(introductions, func(i models.Introduction) string { return string(i.Status) }),
		Revenue:               revenue,
		Currency:              s.cfg.Currency.Base,
	}

	for _, v := range verifications {
		if v.Status == models.VerificationRequestPending {
			d.PendingVerifications++
		}
	}

	for _, c := range conversations {
		d.UnreadMessages += c.UnreadCount
	}

	return d, nil
}
