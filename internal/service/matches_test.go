package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/compatibility"
	"github.com/pribylovaa/go-matrimony/internal/fixtures"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
)

func adminBreakdown() map[string]int {
	return map[string]int{"values": 90, "lifestyle": 80, "family": 85, "personality": 75, "practical": 70}
}

func TestSuggestMatch(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()

	m, err := s.SuggestMatch(ctx, SuggestMatchInput{
		Profile1ID: fixtures.ID("nusrat"),
		Profile2ID: fixtures.ID("rahim"),
		Score:      91,
		Breakdown:  adminBreakdown(),
		Notes:      " same city soon ",
	})
	require.NoError(t, err)
	require.Equal(t, models.MatchSuggested, m.Status)
	require.Equal(t, compatibility.BandExcellent, m.Band)
	require.Equal(t, "same city soon", m.Notes)
	require.Equal(t, "Nusrat Jahan", m.Profile1.Name)
	require.EqualValues(t, 1, m.Version)

	// Для пары уже есть открытая пара (в обратном порядке тоже).
	_, err = s.SuggestMatch(ctx, SuggestMatchInput{
		Profile1ID: fixtures.ID("rahim"),
		Profile2ID: fixtures.ID("nusrat"),
		Score:      50,
		Breakdown:  adminBreakdown(),
	})
	require.ErrorIs(t, err, ErrAlreadyExists)

	// Отклонённая пара не мешает новому предложению.
	_, err = s.SuggestMatch(ctx, SuggestMatchInput{
		Profile1ID: fixtures.ID("farhan"),
		Profile2ID: fixtures.ID("ayesha"),
		Score:      70,
		Breakdown:  adminBreakdown(),
	})
	require.NoError(t, err)
}

func TestSuggestMatch_Validation(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	a, b := fixtures.ID("nusrat"), fixtures.ID("rahim")

	_, err := s.SuggestMatch(ctx, SuggestMatchInput{Profile1ID: a, Profile2ID: a, Score: 80, Breakdown: adminBreakdown()})
	require.ErrorIs(t, err, ErrValidation)

	_, err = s.SuggestMatch(ctx, SuggestMatchInput{Profile1ID: a, Profile2ID: b, Score: 101, Breakdown: adminBreakdown()})
	require.ErrorIs(t, err, ErrValidation)

	partial := adminBreakdown()
	delete(partial, "family")
	_, err = s.SuggestMatch(ctx, SuggestMatchInput{Profile1ID: a, Profile2ID: b, Score: 80, Breakdown: partial})
	require.ErrorIs(t, err, ErrValidation)

	_, err = s.SuggestMatch(ctx, SuggestMatchInput{Profile1ID: a, Profile2ID: uuid.New(), Score: 80, Breakdown: adminBreakdown()})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecideMatch(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	id := fixtures.ID("match-ayesha-rahim")

	_, err := s.DecideMatch(ctx, DecideMatchInput{ID: id, Decision: DecisionApprove, ExpectedVersion: 5})
	require.ErrorIs(t, err, ErrConflict)

	m, err := s.DecideMatch(ctx, DecideMatchInput{ID: id, Decision: DecisionReject, Note: "different plans", ExpectedVersion: 1})
	require.NoError(t, err)
	require.Equal(t, models.MatchDeclined, m.Status)
	require.Equal(t, "different plans", m.Notes)
	require.EqualValues(t, 2, m.Version)

	// Повторное решение по терминальной паре.
	_, err = s.DecideMatch(ctx, DecideMatchInput{ID: id, Decision: DecisionReject})
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	_, err = s.DecideMatch(ctx, DecideMatchInput{ID: uuid.New(), Decision: DecisionApprove})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMatchNotes(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	id := fixtures.ID("match-ayesha-farhan")

	m, err := s.UpdateMatchNotes(ctx, UpdateMatchNotesInput{ID: id, Notes: " revisit in spring "})
	require.NoError(t, err)
	require.Equal(t, "revisit in spring", m.Notes)
	require.Equal(t, models.MatchDeclined, m.Status)

	_, err = s.UpdateMatchNotes(ctx, UpdateMatchNotesInput{ID: id, Notes: "x", ExpectedVersion: 1})
	require.ErrorIs(t, err, ErrConflict)
}

func TestListMatches(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()

	t.Run("by score desc", func(t *testing.T) {
		page, err := s.ListMatches(ctx, MatchFilter{PageParams: PageParams{Sort: query.Sort{Field: "score", Desc: true}}})
		require.NoError(t, err)
		require.Equal(t, 4, page.Page.Total)
		scores := make([]int, 0, len(page.Items))
		for _, m := range page.Items {
			scores = append(scores, m.CompatibilityScore)
		}
		require.Equal(t, []int{87, 81, 72, 64}, scores)
	})

	t.Run("by band", func(t *testing.T) {
		page, err := s.ListMatches(ctx, MatchFilter{Band: string(compatibility.BandGreat)})
		require.NoError(t, err)
		require.Equal(t, 2, page.Page.Total)
	})

	t.Run("by profile", func(t *testing.T) {
		page, err := s.ListMatches(ctx, MatchFilter{ProfileID: fixtures.ID("karim")})
		require.NoError(t, err)
		require.Equal(t, 2, page.Page.Total)
	})

	t.Run("search by second name", func(t *testing.T) {
		page, err := s.ListMatches(ctx, MatchFilter{PageParams: PageParams{Search: "farhan"}})
		require.NoError(t, err)
		require.Equal(t, 1, page.Page.Total)
		require.Equal(t, fixtures.ID("match-ayesha-farhan"), page.Items[0].ID)
	})

	t.Run("unknown status gives empty page", func(t *testing.T) {
		page, err := s.ListMatches(ctx, MatchFilter{Status: "archived"})
		require.NoError(t, err)
		require.Zero(t, page.Page.Total)
	})
}

// Отказ по паре закрывает её незавершённые знакомства.
func TestDecideMatch_RejectClosesIntroductions(t *testing.T) {
	t.Parallel()

	t.Run("sent", func(t *testing.T) {
		t.Parallel()

		s, _ := newSeededService(t)
		ctx := context.Background()
		matchID := fixtures.ID("match-nusrat-karim")

		intro, err := s.SendIntroduction(ctx, SendIntroductionInput{MatchID: matchID})
		require.NoError(t, err)

		m, err := s.DecideMatch(ctx, DecideMatchInput{ID: matchID, Decision: DecisionReject})
		require.NoError(t, err)
		require.Equal(t, models.MatchDeclined, m.Status)

		got, err := s.GetIntroduction(ctx, intro.ID)
		require.NoError(t, err)
		require.Equal(t, models.IntroductionDeclined, got.Status)
		require.Equal(t, intro.Version+1, got.Version)
		require.NotNil(t, got.RespondedAt)

		_, err = s.RespondIntroduction(ctx, RespondIntroductionInput{
			ID:        intro.ID,
			ProfileID: fixtures.ID("karim"),
			Response:  models.ResponseAccepted,
		})
		require.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("pending", func(t *testing.T) {
		t.Parallel()

		s, _ := newSeededService(t)
		ctx := context.Background()
		matchID := fixtures.ID("match-nusrat-karim")

		queued, err := s.QueueIntroduction(ctx, SendIntroductionInput{MatchID: matchID})
		require.NoError(t, err)

		_, err = s.DecideMatch(ctx, DecideMatchInput{ID: matchID, Decision: DecisionReject})
		require.NoError(t, err)

		got, err := s.GetIntroduction(ctx, queued.ID)
		require.NoError(t, err)
		require.Equal(t, models.IntroductionDeclined, got.Status)

		_, err = s.DispatchIntroduction(ctx, queued.ID, 0)
		require.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("accepted by one side", func(t *testing.T) {
		t.Parallel()

		s, _ := newSeededService(t)
		ctx := context.Background()

		_, err := s.DecideMatch(ctx, DecideMatchInput{ID: fixtures.ID("match-tasnim-karim"), Decision: DecisionReject})
		require.NoError(t, err)

		got, err := s.GetIntroduction(ctx, fixtures.ID("intro-tasnim-karim"))
		require.NoError(t, err)
		require.Equal(t, models.IntroductionDeclined, got.Status)
	})

	t.Run("approve leaves introductions alone", func(t *testing.T) {
		t.Parallel()

		s, _ := newSeededService(t)
		ctx := context.Background()

		_, err := s.DecideMatch(ctx, DecideMatchInput{ID: fixtures.ID("match-ayesha-rahim"), Decision: DecisionApprove})
		require.NoError(t, err)

		got, err := s.GetIntroduction(ctx, fixtures.ID("intro-tasnim-karim"))
		require.NoError(t, err)
		require.Equal(t, models.IntroductionAcceptedOne, got.Status)
	})
}
