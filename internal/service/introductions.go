package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// SendIntroductionInput — отправка знакомства по паре.
// Пустой Message -> используется составленный черновик.
type SendIntroductionInput struct {
	MatchID         uuid.UUID
	Message         string
	ExpectedVersion int64
}

// RespondIntroductionInput — ответ одной из сторон знакомства.
type RespondIntroductionInput struct {
	ID              uuid.UUID
	ProfileID       uuid.UUID
	Response        models.Response
	ExpectedVersion int64
}

// CompleteIntroductionInput — закрытие знакомства с итогом.
type CompleteIntroductionInput struct {
	ID              uuid.UUID
	Outcome         string
	ExpectedVersion int64
}

// IntroductionFilter — параметры списка знакомств.
type IntroductionFilter struct {
	PageParams
	Status    string
	ProfileID uuid.UUID
}

// IntroductionPage — страница знакомств.
type IntroductionPage struct {
	Items []IntroductionView `json:"items"`
	Page  query.Page         `json:"page"`
}

// ComposeIntroduction составляет черновик знакомства по паре в статусе approved или mutual.
// Текст содержит имена, возраст, профессии и города обеих сторон, оценку "NN%"
// и сильные стороны пары. Хранилище не меняется.
func (s *Service) ComposeIntroduction(ctx context.Context, matchID uuid.UUID) (*IntroductionDraft, error) {
	const op = "service/introductions/ComposeIntroduction"

	lg := log.From(ctx).With("op", op, "match_id", matchID.String())

	if matchID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty match id"))
	}

	var draft IntroductionDraft
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		m, p1, p2, err := loadPair(tx, matchID)
		if err != nil {
			return err
		}

		if !models.IntroducibleMatch(m.Status) {
			return badTransition("match", m.Status, "introduction")
		}

		draft, err = s.compose(m, p1, p2)
		return err
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &draft, nil
}

// SendIntroduction создаёт знакомство в статусе sent и переводит пару approved -> sent
// (пара mutual остаётся mutual). Обе стороны получают уведомление.
//
// Ошибки:
//   - для пары профилей уже есть знакомство -> ErrDuplicatePairing;
//   - пара не approved/mutual -> ErrInvalidStateTransition;
//   - ExpectedVersion пары не совпал -> ErrConflict.
func (s *Service) SendIntroduction(ctx context.Context, in SendIntroductionInput) (*IntroductionView, error) {
	const op = "service/introductions/SendIntroduction"

	lg := log.From(ctx).With("op", op, "match_id", in.MatchID.String())

	view, matchFrom, matchTo, err := s.createIntroduction(ctx, in, models.IntroductionSent)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	if matchFrom != matchTo {
		s.metrics.Transition("match", string(matchFrom), string(matchTo))
	}
	lg.Info("introduction sent", "introduction_id", view.ID.String())

	s.notify(ctx, lg, introductionNotifications(view)...)

	return view, nil
}

// QueueIntroduction сохраняет знакомство в статусе pending без отправки.
// Пара профилей резервируется сразу: второе знакомство для неё невозможно.
func (s *Service) QueueIntroduction(ctx context.Context, in SendIntroductionInput) (*IntroductionView, error) {
	const op = "service/introductions/QueueIntroduction"

	lg := log.From(ctx).With("op", op, "match_id", in.MatchID.String())

	view, _, _, err := s.createIntroduction(ctx, in, models.IntroductionPending)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("introduction queued", "introduction_id", view.ID.String())

	return view, nil
}

func (s *Service) createIntroduction(
	ctx context.Context,
	in SendIntroductionInput,
	status models.IntroductionStatus,
) (*IntroductionView, models.MatchStatus, models.MatchStatus, error) {
	if in.MatchID == uuid.Nil {
		return nil, "", "", invalid("empty match id")
	}

	var (
		view     IntroductionView
		from, to models.MatchStatus
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		m, p1, p2, err := loadPair(tx, in.MatchID)
		if err != nil {
			return err
		}

		if err := checkVersion(in.ExpectedVersion, m.Version); err != nil {
			return err
		}

		// Дубликат пары проверяется раньше статуса: после первой отправки пара
		// уже в sent, но клиенту важнее узнать о существующем знакомстве.
		if existing, err := tx.IntroductionByPair(models.NewPairKey(m.Profile1ID, m.Profile2ID)); err == nil {
			return fmt.Errorf("%w: introduction %s", ErrDuplicatePairing, existing.ID)
		}

		if !models.IntroducibleMatch(m.Status) {
			return badTransition("match", m.Status, "introduction")
		}

		message := strings.TrimSpace(in.Message)
		if message == "" {
			draft, err := s.compose(m, p1, p2)
			if err != nil {
				return err
			}
			message = draft.Message
		}

		now := s.clock()
		intro := models.Introduction{
			ID:         uuid.New(),
			MatchID:    m.ID,
			Profile1ID: m.Profile1ID,
			Profile2ID: m.Profile2ID,
			Status:     status,
			Message:    message,
			CreatedAt:  now,
		}

		from, to = m.Status, m.Status
		if status == models.IntroductionSent {
			intro.SentAt = &now
			if m, err = advanceMatch(tx, m, models.MatchSent, now); err != nil {
				return err
			}
			to = m.Status
		}

		if err := tx.InsertIntroduction(intro); err != nil {
			return err
		}

		// InsertIntroduction выставляет начальную версию.
		intro, err = tx.Introduction(intro.ID)
		if err != nil {
			return err
		}

		view = indexProfiles([]models.Profile{p1, p2}).introductionView(intro)
		return nil
	})
	if err != nil {
		return nil, "", "", err
	}

	return &view, from, to, nil
}

// DispatchIntroduction отправляет знакомство из очереди: pending -> sent,
// пара approved -> sent. Побочные эффекты те же, что у SendIntroduction.
func (s *Service) DispatchIntroduction(ctx context.Context, id uuid.UUID, expectedVersion int64) (*IntroductionView, error) {
	const op = "service/introductions/DispatchIntroduction"

	lg := log.From(ctx).With("op", op, "introduction_id", id.String())

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty introduction id"))
	}

	var (
		view               IntroductionView
		matchFrom, matchTo models.MatchStatus
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		intro, err := tx.Introduction(id)
		if err != nil {
			return err
		}

		if err := checkVersion(expectedVersion, intro.Version); err != nil {
			return err
		}

		if !intro.Status.CanTransitionTo(models.IntroductionSent) {
			return badTransition("introduction", intro.Status, models.IntroductionSent)
		}

		m, p1, p2, err := loadPair(tx, intro.MatchID)
		if err != nil {
			return err
		}

		if !models.IntroducibleMatch(m.Status) {
			return badTransition("match", m.Status, models.MatchSent)
		}

		now := s.clock()

		matchFrom = m.Status
		if m, err = advanceMatch(tx, m, models.MatchSent, now); err != nil {
			return err
		}
		matchTo = m.Status

		intro.Status = models.IntroductionSent
		intro.SentAt = &now

		saved, err := tx.SaveIntroduction(intro)
		if err != nil {
			return err
		}

		view = indexProfiles([]models.Profile{p1, p2}).introductionView(saved)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("introduction", string(models.IntroductionPending), string(models.IntroductionSent))
	if matchFrom != matchTo {
		s.metrics.Transition("match", string(matchFrom), string(matchTo))
	}
	lg.Info("introduction dispatched")

	s.notify(ctx, lg, introductionNotifications(&view)...)

	return &view, nil
}

// RespondIntroduction записывает ответ одной стороны.
//
// Поведение:
//   - отвечать можно только на sent/accepted_one и только один раз;
//   - отказ любой стороны -> declined, пара -> declined (если не mutual);
//   - согласие обеих -> accepted_both, пара sent -> mutual;
//   - ProfileID не участник знакомства -> ErrValidation.
func (s *Service) RespondIntroduction(ctx context.Context, in RespondIntroductionInput) (*IntroductionView, error) {
	const op = "service/introductions/RespondIntroduction"

	lg := log.From(ctx).With("op", op,
		"introduction_id", in.ID.String(),
		"profile_id", in.ProfileID.String(),
		"response", string(in.Response),
	)

	if in.ID == uuid.Nil || in.ProfileID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty introduction or profile id"))
	}

	if in.Response != models.ResponseAccepted && in.Response != models.ResponseDeclined {
		return nil, fail(lg, op, invalid("response %q", in.Response))
	}

	var (
		view               IntroductionView
		from               models.IntroductionStatus
		matchFrom, matchTo models.MatchStatus
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		intro, err := tx.Introduction(in.ID)
		if err != nil {
			return err
		}

		if err := checkVersion(in.ExpectedVersion, intro.Version); err != nil {
			return err
		}

		var slot *models.Response
		switch in.ProfileID {
		case intro.Profile1ID:
			slot = &intro.Profile1Response
		case intro.Profile2ID:
			slot = &intro.Profile2Response
		default:
			return invalid("profile %s is not part of introduction", in.ProfileID)
		}

		if *slot != models.ResponseNone {
			return badTransition("introduction response", *slot, in.Response)
		}
		*slot = in.Response

		from = intro.Status
		to := intro.NextStatus()
		if !from.CanTransitionTo(to) {
			return badTransition("introduction", from, to)
		}

		now := s.clock()
		intro.Status = to
		intro.RespondedAt = &now

		saved, err := tx.SaveIntroduction(intro)
		if err != nil {
			return err
		}

		m, err := tx.Match(intro.MatchID)
		if err != nil {
			return err
		}

		matchFrom = m.Status
		switch to {
		case models.IntroductionAcceptedBoth:
			if m, err = advanceMatch(tx, m, models.MatchMutual, now); err != nil {
				return err
			}
		case models.IntroductionDeclined:
			if m, err = advanceMatch(tx, m, models.MatchDeclined, now); err != nil {
				return err
			}
		}
		matchTo = m.Status

		view = indexProfiles(tx.Profiles()).introductionView(saved)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("introduction", string(from), string(view.Status))
	if matchFrom != matchTo {
		s.metrics.Transition("match", string(matchFrom), string(matchTo))
	}
	lg.Info("introduction response recorded", "status", string(view.Status))

	switch view.Status {
	case models.IntroductionAcceptedBoth:
		s.notify(ctx, lg, pairNotifications(&view, models.NotificationMatch,
			"It's mutual!", "Both of you accepted the introduction.")...)
	case models.IntroductionDeclined:
		s.notify(ctx, lg, pairNotifications(&view, models.NotificationIntroduction,
			"Introduction closed", "The introduction was declined.")...)
	}

	return &view, nil
}

// CompleteIntroduction закрывает знакомство accepted_both -> completed с итогом.
func (s *Service) CompleteIntroduction(ctx context.Context, in CompleteIntroductionInput) (*IntroductionView, error) {
	const op = "service/introductions/CompleteIntroduction"

	lg := log.From(ctx).With("op", op, "introduction_id", in.ID.String())

	if in.ID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty introduction id"))
	}

	var view IntroductionView
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		intro, err := tx.Introduction(in.ID)
		if err != nil {
			return err
		}

		if err := checkVersion(in.ExpectedVersion, intro.Version); err != nil {
			return err
		}

		if !intro.Status.CanTransitionTo(models.IntroductionCompleted) {
			return badTransition("introduction", intro.Status, models.IntroductionCompleted)
		}

		intro.Status = models.IntroductionCompleted
		intro.Outcome = strings.TrimSpace(in.Outcome)

		saved, err := tx.SaveIntroduction(intro)
		if err != nil {
			return err
		}

		view = indexProfiles(tx.Profiles()).introductionView(saved)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("introduction", string(models.IntroductionAcceptedBoth), string(models.IntroductionCompleted))
	lg.Info("introduction completed")

	return &view, nil
}

// GetIntroduction возвращает знакомство по идентификатору.
func (s *Service) GetIntroduction(ctx context.Context, id uuid.UUID) (*IntroductionView, error) {
	const op = "service/introductions/GetIntroduction"

	lg := log.From(ctx).With("op", op, "introduction_id", id.String())

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty introduction id"))
	}

	var view IntroductionView
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		intro, err := tx.Introduction(id)
		if err != nil {
			return err
		}
		view = indexProfiles(tx.Profiles()).introductionView(intro)
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &view, nil
}

// ListIntroductions возвращает страницу знакомств по фильтру.
func (s *Service) ListIntroductions(ctx context.Context, f IntroductionFilter) (*IntroductionPage, error) {
	const op = "service/introductions/ListIntroductions"

	lg := log.From(ctx).With("op", op)

	params, err := s.params(f.PageParams, map[string]string{"status": f.Status})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	var views []IntroductionView
	err = s.storage.View(ctx, func(tx storage.Tx) error {
		idx := indexProfiles(tx.Profiles())
		for _, intro := range tx.Introductions() {
			if f.ProfileID != uuid.Nil && intro.Profile1ID != f.ProfileID && intro.Profile2ID != f.ProfileID {
				continue
			}
			views = append(views, idx.introductionView(intro))
		}
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.schemas.introductions.Run(views, params)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &IntroductionPage{Items: res.Items, Page: res.Page}, nil
}

// loadPair читает пару и оба профиля.
func loadPair(tx storage.Tx, matchID uuid.UUID) (models.Match, models.Profile, models.Profile, error) {
	m, err := tx.Match(matchID)
	if err != nil {
		return models.Match{}, models.Profile{}, models.Profile{}, err
	}

	p1, err := tx.Profile(m.Profile1ID)
	if err != nil {
		return models.Match{}, models.Profile{}, models.Profile{}, err
	}

	p2, err := tx.Profile(m.Profile2ID)
	if err != nil {
		return models.Match{}, models.Profile{}, models.Profile{}, err
	}

	return m, p1, p2, nil
}

// advanceMatch переводит пару в to, если переход допустим; иначе оставляет как есть.
// Используется для каскадов от знакомства: терминальные статусы пары не меняются.
func advanceMatch(tx storage.Tx, m models.Match, to models.MatchStatus, now time.Time) (models.Match, error) {
	if !m.Status.CanTransitionTo(to) {
		return m, nil
	}

	m.Status = to
	m.UpdatedAt = now

	return tx.SaveMatch(m)
}

func introductionNotifications(v *IntroductionView) []models.Notification {
	return []models.Notification{
		{
			ProfileID:   v.Profile1ID,
			Type:        models.NotificationIntroduction,
			Title:       "New introduction",
			Description: "Your matchmaker introduced you to " + v.Profile2.Name + ".",
			Link:        "/introductions/" + v.ID.String(),
		},
		{
			ProfileID:   v.Profile2ID,
			Type:        models.NotificationIntroduction,
			Title:       "New introduction",
			Description: "Your matchmaker introduced you to " + v.Profile1.Name + ".",
			Link:        "/introductions/" + v.ID.String(),
		},
	}
}

func pairNotifications(v *IntroductionView, kind models.NotificationType, title, description string) []models.Notification {
	out := make([]models.Notification, 0, 2)
	for _, id := range []uuid.UUID{v.Profile1ID, v.Profile2ID} {
		out = append(out, models.Notification{
			ProfileID:   id,
			Type:        kind,
			Title:       title,
			Description: description,
			Link:        "/introductions/" + v.ID.String(),
		})
	}
	return out
}
