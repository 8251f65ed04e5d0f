package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
)

func newMatch(p1, p2 uuid.UUID) models.Match {
	return models.Match{
		ID:                 uuid.New(),
		Profile1ID:         p1,
		Profile2ID:         p2,
		CompatibilityScore: 87,
		Breakdown:          map[string]int{"values": 92},
		Status:             models.MatchSuggested,
		CreatedAt:          time.Now(),
	}
}

func TestUpdate_CommitsOnSuccess(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	p := models.Profile{ID: uuid.New(), Name: "Ayesha"}

	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error {
		return tx.InsertProfile(p)
	}))

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		got, err := tx.Profile(p.ID)
		require.NoError(t, err)
		require.Equal(t, "Ayesha", got.Name)
		return nil
	}))
}

// При ошибке fn ни одно изменение не фиксируется.
func TestUpdate_RollsBackOnError(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	p := models.Profile{ID: uuid.New(), Name: "Ayesha"}

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx storage.Tx) error {
		require.NoError(t, tx.InsertProfile(p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		_, err := tx.Profile(p.ID)
		require.ErrorIs(t, err, storage.ErrNotFound)
		require.Empty(t, tx.Profiles())
		return nil
	}))
}

func TestView_ReadOnly(t *testing.T) {
	t.Parallel()

	s := New()
	err := s.View(context.Background(), func(tx storage.Tx) error {
		return tx.InsertProfile(models.Profile{ID: uuid.New()})
	})
	require.Error(t, err)
}

func TestInsert_Duplicates(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	p := models.Profile{ID: uuid.New()}

	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error { return tx.InsertProfile(p) }))

	err := s.Update(ctx, func(tx storage.Tx) error { return tx.InsertProfile(p) })
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	err = s.Update(ctx, func(tx storage.Tx) error { return tx.SaveProfile(models.Profile{ID: uuid.New()}) })
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInsertVerification_OnePendingPerProfile(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	profileID := uuid.New()

	first := models.Verification{ID: uuid.New(), ProfileID: profileID, Status: models.VerificationRequestPending}
	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error { return tx.InsertVerification(first) }))

	second := models.Verification{ID: uuid.New(), ProfileID: profileID, Status: models.VerificationRequestPending}
	err := s.Update(ctx, func(tx storage.Tx) error { return tx.InsertVerification(second) })
	require.ErrorIs(t, err, storage.ErrPendingVerification)

	// После решения по первой можно подать новую.
	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error {
		v, err := tx.Verification(first.ID)
		if err != nil {
			return err
		}
		v.Status = models.VerificationRequestRejected
		if err := tx.SaveVerification(v); err != nil {
			return err
		}
		return tx.InsertVerification(second)
	}))
}

func TestSaveMatch_Versioning(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	m := newMatch(uuid.New(), uuid.New())

	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error { return tx.InsertMatch(m) }))

	var stale models.Match
	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error {
		cur, err := tx.Match(m.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, cur.Version)
		stale = cur

		cur.Status = models.MatchApproved
		saved, err := tx.SaveMatch(cur)
		require.NoError(t, err)
		require.EqualValues(t, 2, saved.Version)
		return nil
	}))

	err := s.Update(ctx, func(tx storage.Tx) error {
		stale.Notes = "late write"
		_, err := tx.SaveMatch(stale)
		return err
	})
	require.ErrorIs(t, err, storage.ErrConflict)
}

// Изменение прочитанной копии не меняет хранилище.
func TestReads_ReturnCopies(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	m := newMatch(uuid.New(), uuid.New())

	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error { return tx.InsertMatch(m) }))

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		got, err := tx.Match(m.ID)
		require.NoError(t, err)
		got.Breakdown["values"] = 1
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		got, err := tx.Match(m.ID)
		require.NoError(t, err)
		require.Equal(t, 92, got.Breakdown["values"])
		return nil
	}))
}

func TestInsertIntroduction_DuplicatePairUnordered(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	first := models.Introduction{ID: uuid.New(), MatchID: uuid.New(), Profile1ID: a, Profile2ID: b, Status: models.IntroductionSent}
	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error { return tx.InsertIntroduction(first) }))

	reversed := models.Introduction{ID: uuid.New(), MatchID: uuid.New(), Profile1ID: b, Profile2ID: a, Status: models.IntroductionPending}
	err := s.Update(ctx, func(tx storage.Tx) error { return tx.InsertIntroduction(reversed) })
	require.ErrorIs(t, err, storage.ErrDuplicatePair)

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		got, err := tx.IntroductionByPair(models.NewPairKey(b, a))
		require.NoError(t, err)
		require.Equal(t, first.ID, got.ID)
		return nil
	}))
}

func TestNotificationsFor_NewestFirst(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	profileID := uuid.New()

	n1 := models.Notification{ID: uuid.New(), ProfileID: profileID, Title: "first"}
	n2 := models.Notification{ID: uuid.New(), ProfileID: uuid.New(), Title: "other"}
	n3 := models.Notification{ID: uuid.New(), ProfileID: profileID, Title: "second"}

	require.NoError(t, s.Update(ctx, func(tx storage.Tx) error {
		for _, n := range []models.Notification{n1, n2, n3} {
			if err := tx.InsertNotification(n); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		got := tx.NotificationsFor(profileID)
		require.Len(t, got, 2)
		require.Equal(t, "second", got[0].Title)
		require.Equal(t, "first", got[1].Title)
		return nil
	}))
}

func TestContextAndClose(t *testing.T) {
	t.Parallel()

	s := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.View(ctx, func(storage.Tx) error { return nil })
	require.ErrorIs(t, err, context.Canceled)

	s.Close()
	err = s.Update(context.Background(), func(storage.Tx) error { return nil })
	require.ErrorIs(t, err, ErrClosed)
}

// Параллельные Update не теряют изменения (запуск под -race).
func TestUpdate_Concurrent(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, func(tx storage.Tx) error {
				return tx.InsertPayment(models.Payment{ID: uuid.New()})
			})
		}()
	}
	wg.Wait()

	require.NoError(t, s.View(ctx, func(tx storage.Tx) error {
		require.Len(t, tx.Payments(), n)
		return nil
	}))
}
