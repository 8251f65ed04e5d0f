package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/compatibility"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// SuggestMatchInput — предложение пары (результат подбора).
type SuggestMatchInput struct {
	Profile1ID uuid.UUID
	Profile2ID uuid.UUID
	Score      int
	Breakdown  map[string]int
	Notes      string
}

// DecideMatchInput — решение свата по паре.
// ExpectedVersion — версия, которую видел сват; 0 — без проверки.
type DecideMatchInput struct {
	ID              uuid.UUID
	Decision        Decision
	Note            string
	ExpectedVersion int64
}

// UpdateMatchNotesInput — правка заметок свата.
type UpdateMatchNotesInput struct {
	ID              uuid.UUID
	Notes           string
	ExpectedVersion int64
}

// MatchFilter — параметры списка пар.
// ProfileID ограничивает пары, в которых участвует профиль.
type MatchFilter struct {
	PageParams
	Status    string
	Band      string
	ProfileID uuid.UUID
}

// MatchPage — страница пар.
type MatchPage struct {
	Items []MatchView `json:"items"`
	Page  query.Page  `json:"page"`
}

// SuggestMatch создаёт пару в статусе suggested.
//
// Валидация:
//   - два разных существующих профиля;
//   - Score в [0, 100]; Breakdown — полный набор измерений (участника или администратора);
//   - для пары не должно быть другой не отклонённой пары -> ErrAlreadyExists.
func (s *Service) SuggestMatch(ctx context.Context, in SuggestMatchInput) (*MatchView, error) {
	const op = "service/matches/SuggestMatch"

	lg := log.From(ctx).With("op", op,
		"profile1_id", in.Profile1ID.String(),
		"profile2_id", in.Profile2ID.String(),
	)

	if in.Profile1ID == uuid.Nil || in.Profile2ID == uuid.Nil || in.Profile1ID == in.Profile2ID {
		return nil, fail(lg, op, invalid("match needs two distinct profiles"))
	}

	if err := compatibility.ValidateScore(in.Score); err != nil {
		return nil, fail(lg, op, invalid("%v", err))
	}

	b := compatibility.FromMap(in.Breakdown)
	if err := compatibility.Validate(b, compatibility.SetFor(b)); err != nil {
		return nil, fail(lg, op, invalid("%v", err))
	}

	now := s.clock()
	m := models.Match{
		ID:                 uuid.New(),
		Profile1ID:         in.Profile1ID,
		Profile2ID:         in.Profile2ID,
		CompatibilityScore: in.Score,
		Breakdown:          b.ToMap(),
		Status:             models.MatchSuggested,
		Notes:              strings.TrimSpace(in.Notes),
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var view MatchView
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		p1, err := tx.Profile(in.Profile1ID)
		if err != nil {
			return err
		}
		p2, err := tx.Profile(in.Profile2ID)
		if err != nil {
			return err
		}

		key := models.NewPairKey(m.Profile1ID, m.Profile2ID)
		for _, existing := range tx.Matches() {
			if existing.Status != models.MatchDeclined &&
				models.NewPairKey(existing.Profile1ID, existing.Profile2ID) == key {
				return fmt.Errorf("%w: match %s for this pair", ErrAlreadyExists, existing.ID)
			}
		}

		if err := tx.InsertMatch(m); err != nil {
			return err
		}

		view = indexProfiles([]models.Profile{p1, p2}).matchView(m)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("match suggested", "match_id", m.ID.String(), "score", m.CompatibilityScore)

	return &view, nil
}

// GetMatch возвращает пару с данными обеих сторон.
func (s *Service) GetMatch(ctx context.Context, id uuid.UUID) (*MatchView, error) {
	const op = "service/matches/GetMatch"

	lg := log.From(ctx).With("op", op, "match_id", id.String())

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty match id"))
	}

	var view MatchView
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		m, err := tx.Match(id)
		if err != nil {
			return err
		}
		view = indexProfiles(tx.Profiles()).matchView(m)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &view, nil
}

// ListMatches возвращает страницу пар по фильтру (status, band, profile_id, поиск по именам).
func (s *Service) ListMatches(ctx context.Context, f MatchFilter) (*MatchPage, error) {
	const op = "service/matches/ListMatches"

	lg := log.From(ctx).With("op", op)

	params, err := s.params(f.PageParams, map[string]string{
		"status": f.Status,
		"band":   f.Band,
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	var views []MatchView
	err = s.storage.View(ctx, func(tx storage.Tx) error {
		idx := indexProfiles(tx.Profiles())
		for _, m := range tx.Matches() {
			if f.ProfileID != uuid.Nil && !m.Involves(f.ProfileID) {
				continue
			}
			views = append(views, idx.matchView(m))
		}
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.schemas.matches.Run(views, params)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &MatchPage{Items: res.Items, Page: res.Page}, nil
}

// DecideMatch — одобрение или отклонение пары.
//
// Поведение:
//   - approve: suggested -> approved;
//   - reject: suggested|approved|sent -> declined (терминальный статус);
//   - Note, если задан, заменяет заметки свата;
//   - при reject незавершённые знакомства пары (pending|sent|accepted_one)
//     закрываются как declined в той же транзакции;
//   - недопустимый переход (в том числе повторное решение) -> ErrInvalidStateTransition;
//   - ExpectedVersion не совпал -> ErrConflict.
func (s *Service) DecideMatch(ctx context.Context, in DecideMatchInput) (*MatchView, error) {
	const op = "service/matches/DecideMatch"

	lg := log.From(ctx).With("op", op, "match_id", in.ID.String(), "decision", string(in.Decision))

	if in.ID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty match id"))
	}

	if !in.Decision.Valid() {
		return nil, fail(lg, op, invalid("decision %q", in.Decision))
	}

	to := models.MatchApproved
	if in.Decision == DecisionReject {
		to = models.MatchDeclined
	}

	var (
		view   MatchView
		from   models.MatchStatus
		closed []models.Introduction
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		closed = closed[:0]

		m, err := tx.Match(in.ID)
		if err != nil {
			return err
		}

		if err := checkVersion(in.ExpectedVersion, m.Version); err != nil {
			return err
		}

		from = m.Status
		if !from.CanTransitionTo(to) {
			return badTransition("match", from, to)
		}

		m.Status = to
		if note := strings.TrimSpace(in.Note); note != "" {
			m.Notes = note
		}
		m.UpdatedAt = s.clock()

		saved, err := tx.SaveMatch(m)
		if err != nil {
			return err
		}

		if to == models.MatchDeclined {
			for _, intro := range tx.Introductions() {
				if intro.MatchID != saved.ID || !introductionOpen(intro.Status) {
					continue
				}
				prev := intro.Status
				intro.Status = models.IntroductionDeclined
				closedAt := saved.UpdatedAt
				intro.RespondedAt = &closedAt
				if _, err := tx.SaveIntroduction(intro); err != nil {
					return err
				}
				intro.Status = prev
				closed = append(closed, intro)
			}
		}

		view = indexProfiles(tx.Profiles()).matchView(saved)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("match", string(from), string(to))
	for _, intro := range closed {
		s.metrics.Transition("introduction", string(intro.Status), string(models.IntroductionDeclined))
		if intro.Status != models.IntroductionPending {
			s.notify(ctx, lg, pairNotifications(&IntroductionView{Introduction: intro}, models.NotificationIntroduction,
				"Introduction closed", "The matchmaker has closed this introduction.")...)
		}
	}
	lg.Info("match decided", "from", string(from), "to", string(to), "introductions_closed", len(closed))

	return &view, nil
}

// introductionOpen — знакомство ещё не получило итогового ответа.
func introductionOpen(st models.IntroductionStatus) bool {
	switch st {
	case models.IntroductionPending, models.IntroductionSent, models.IntroductionAcceptedOne:
		return true
	}
	return false
}

// UpdateMatchNotes меняет заметки свата; разрешено в любом статусе.
func (s *Service) UpdateMatchNotes(ctx context.Context, in UpdateMatchNotesInput) (*MatchView, error) {
	const op = "service/matches/UpdateMatchNotes"

	lg := log.From(ctx).With("op", op, "match_id", in.ID.String())

	if in.ID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty match id"))
	}

	var view MatchView
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		m, err := tx.Match(in.ID)
		if err != nil {
			return err
		}

		if err := checkVersion(in.ExpectedVersion, m.Version); err != nil {
			return err
		}

		m.Notes = strings.TrimSpace(in.Notes)
		m.UpdatedAt = s.clock()

		saved, err := tx.SaveMatch(m)
		if err != nil {
			return err
		}

		view = indexProfiles(tx.Profiles()).matchView(saved)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("match notes updated")

	return &view, nil
}
