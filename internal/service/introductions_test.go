package service

import (
	"context"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/fixtures"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/mocks"
)

// Сценарий: одобрить пару -> составить текст -> отправить -> повторная отправка отклонена.
func TestIntroduction_ApproveComposeSend(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mn := mocks.NewMockNotifier(ctrl)

	var (
		mu       sync.Mutex
		notified []uuid.UUID
	)
	mn.EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.Notification) error {
			mu.Lock()
			defer mu.Unlock()
			require.Equal(t, models.NotificationIntroduction, n.Type)
			notified = append(notified, n.ProfileID)
			return nil
		}).
		Times(2)

	s, _ := newSeededService(t, WithNotifier(mn))
	ctx := context.Background()
	matchID := fixtures.ID("match-ayesha-rahim")

	// Черновик для пары suggested недоступен.
	_, err := s.ComposeIntroduction(ctx, matchID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	approved, err := s.DecideMatch(ctx, DecideMatchInput{ID: matchID, Decision: DecisionApprove})
	require.NoError(t, err)
	require.Equal(t, models.MatchApproved, approved.Status)
	require.EqualValues(t, 2, approved.Version)

	draft, err := s.ComposeIntroduction(ctx, matchID)
	require.NoError(t, err)
	require.Equal(t, 87, draft.Score)
	require.Equal(t, "great", draft.Band)
	require.Contains(t, draft.Message, "87%")
	require.Contains(t, draft.Message, "Ayesha Rahman")
	require.Contains(t, draft.Message, "Rahim Chowdhury")
	require.Contains(t, draft.Message, "a Software Engineer based in Dhaka")
	require.Contains(t, draft.Message, "shared values, aligned family outlook and compatible lifestyles")
	require.Equal(t, []string{"shared values", "aligned family outlook", "compatible lifestyles"}, draft.Highlights)

	intro, err := s.SendIntroduction(ctx, SendIntroductionInput{MatchID: matchID, ExpectedVersion: approved.Version})
	require.NoError(t, err)
	require.Equal(t, models.IntroductionSent, intro.Status)
	require.Equal(t, draft.Message, intro.Message)
	require.NotNil(t, intro.SentAt)
	require.Equal(t, testNow, *intro.SentAt)
	require.EqualValues(t, 1, intro.Version)

	m, err := s.GetMatch(ctx, matchID)
	require.NoError(t, err)
	require.Equal(t, models.MatchSent, m.Status)

	mu.Lock()
	require.ElementsMatch(t, []uuid.UUID{fixtures.ID("ayesha"), fixtures.ID("rahim")}, notified)
	mu.Unlock()

	// Повторная отправка для той же пары.
	_, err = s.SendIntroduction(ctx, SendIntroductionInput{MatchID: matchID})
	require.ErrorIs(t, err, ErrDuplicatePairing)

	page, err := s.ListIntroductions(ctx, IntroductionFilter{Status: string(models.IntroductionSent)})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page.Total)
	require.Equal(t, intro.ID, page.Items[0].ID)
}

func TestIntroduction_SendRequiresApprovedMatch(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()

	_, err := s.SendIntroduction(ctx, SendIntroductionInput{MatchID: fixtures.ID("match-ayesha-rahim")})
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	_, err = s.SendIntroduction(ctx, SendIntroductionInput{MatchID: fixtures.ID("match-ayesha-farhan")})
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	_, err = s.SendIntroduction(ctx, SendIntroductionInput{MatchID: uuid.New()})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.SendIntroduction(ctx, SendIntroductionInput{})
	require.ErrorIs(t, err, ErrValidation)
}

// Устаревшая версия пары -> ErrConflict, состояние не меняется.
func TestIntroduction_StaleVersion(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	matchID := fixtures.ID("match-nusrat-karim")

	_, err := s.SendIntroduction(ctx, SendIntroductionInput{MatchID: matchID, ExpectedVersion: 7})
	require.ErrorIs(t, err, ErrConflict)

	m, err := s.GetMatch(ctx, matchID)
	require.NoError(t, err)
	require.Equal(t, models.MatchApproved, m.Status)

	page, err := s.ListIntroductions(ctx, IntroductionFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page.Total)
}

// Второе согласие: accepted_one -> accepted_both, пара sent -> mutual; затем completed.
func TestIntroduction_MutualAcceptanceAndCompletion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mn := mocks.NewMockNotifier(ctrl)
	mn.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	s, _ := newSeededService(t, WithNotifier(mn))
	ctx := context.Background()
	introID := fixtures.ID("intro-tasnim-karim")

	// Tasnim уже ответила.
	_, err := s.RespondIntroduction(ctx, RespondIntroductionInput{
		ID: introID, ProfileID: fixtures.ID("tasnim"), Response: models.ResponseDeclined,
	})
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	// Посторонний профиль.
	_, err = s.RespondIntroduction(ctx, RespondIntroductionInput{
		ID: introID, ProfileID: fixtures.ID("ayesha"), Response: models.ResponseAccepted,
	})
	require.ErrorIs(t, err, ErrValidation)

	view, err := s.RespondIntroduction(ctx, RespondIntroductionInput{
		ID: introID, ProfileID: fixtures.ID("karim"), Response: models.ResponseAccepted,
	})
	require.NoError(t, err)
	require.Equal(t, models.IntroductionAcceptedBoth, view.Status)
	require.Equal(t, models.ResponseAccepted, view.Profile2Response)

	m, err := s.GetMatch(ctx, fixtures.ID("match-tasnim-karim"))
	require.NoError(t, err)
	require.Equal(t, models.MatchMutual, m.Status)

	// Знакомство закрыто для ответов.
	_, err = s.RespondIntroduction(ctx, RespondIntroductionInput{
		ID: introID, ProfileID: fixtures.ID("karim"), Response: models.ResponseDeclined,
	})
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	done, err := s.CompleteIntroduction(ctx, CompleteIntroductionInput{ID: introID, Outcome: " engaged "})
	require.NoError(t, err)
	require.Equal(t, models.IntroductionCompleted, done.Status)
	require.Equal(t, "engaged", done.Outcome)

	_, err = s.CompleteIntroduction(ctx, CompleteIntroductionInput{ID: introID})
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

// Отказ любой стороны закрывает знакомство и пару.
func TestIntroduction_DeclineCascades(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	matchID := fixtures.ID("match-nusrat-karim")

	intro, err := s.SendIntroduction(ctx, SendIntroductionInput{MatchID: matchID, Message: "  Please meet.  "})
	require.NoError(t, err)
	require.Equal(t, "Please meet.", intro.Message)

	view, err := s.RespondIntroduction(ctx, RespondIntroductionInput{
		ID:              intro.ID,
		ProfileID:       fixtures.ID("karim"),
		Response:        models.ResponseDeclined,
		ExpectedVersion: intro.Version,
	})
	require.NoError(t, err)
	require.Equal(t, models.IntroductionDeclined, view.Status)
	require.Equal(t, intro.Version+1, view.Version)

	m, err := s.GetMatch(ctx, matchID)
	require.NoError(t, err)
	require.Equal(t, models.MatchDeclined, m.Status)

	// declined — терминальный статус пары.
	_, err = s.DecideMatch(ctx, DecideMatchInput{ID: matchID, Decision: DecisionApprove})
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

// Очередь: pending резервирует пару, dispatch отправляет.
func TestIntroduction_QueueAndDispatch(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	matchID := fixtures.ID("match-nusrat-karim")

	queued, err := s.QueueIntroduction(ctx, SendIntroductionInput{MatchID: matchID})
	require.NoError(t, err)
	require.Equal(t, models.IntroductionPending, queued.Status)
	require.Nil(t, queued.SentAt)

	m, err := s.GetMatch(ctx, matchID)
	require.NoError(t, err)
	require.Equal(t, models.MatchApproved, m.Status)

	_, err = s.QueueIntroduction(ctx, SendIntroductionInput{MatchID: matchID})
	require.ErrorIs(t, err, ErrDuplicatePairing)

	_, err = s.DispatchIntroduction(ctx, queued.ID, queued.Version+1)
	require.ErrorIs(t, err, ErrConflict)

	sent, err := s.DispatchIntroduction(ctx, queued.ID, queued.Version)
	require.NoError(t, err)
	require.Equal(t, models.IntroductionSent, sent.Status)
	require.NotNil(t, sent.SentAt)

	m, err = s.GetMatch(ctx, matchID)
	require.NoError(t, err)
	require.Equal(t, models.MatchSent, m.Status)

	_, err = s.DispatchIntroduction(ctx, queued.ID, 0)
	require.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestIntroduction_GetAndFilterByProfile(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()

	view, err := s.GetIntroduction(ctx, fixtures.ID("intro-tasnim-karim"))
	require.NoError(t, err)
	require.Equal(t, "Tasnim Akter", view.Profile1.Name)
	require.Equal(t, "Karim Hossain", view.Profile2.Name)

	_, err = s.GetIntroduction(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	page, err := s.ListIntroductions(ctx, IntroductionFilter{ProfileID: fixtures.ID("ayesha")})
	require.NoError(t, err)
	require.Zero(t, page.Page.Total)
	require.Empty(t, page.Items)

	page, err = s.ListIntroductions(ctx, IntroductionFilter{PageParams: PageParams{Search: "tasnim"}})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page.Total)
}
