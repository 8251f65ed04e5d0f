package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/internal/storage/memory"
)

func TestStore_Notify(t *testing.T) {
	t.Parallel()

	st := memory.New()
	ctx := context.Background()
	profileID := uuid.New()

	require.NoError(t, st.Update(ctx, func(tx storage.Tx) error {
		return tx.InsertProfile(models.Profile{ID: profileID})
	}))

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := NewStore(st)
	n.now = func() time.Time { return fixed }

	require.NoError(t, n.Notify(ctx, models.Notification{
		ProfileID: profileID,
		Type:      models.NotificationIntroduction,
		Title:     "New introduction",
		IsRead:    true,
	}))

	require.NoError(t, st.View(ctx, func(tx storage.Tx) error {
		got := tx.NotificationsFor(profileID)
		require.Len(t, got, 1)
		require.NotEqual(t, uuid.Nil, got[0].ID)
		require.Equal(t, fixed, got[0].CreatedAt)
		require.False(t, got[0].IsRead)
		return nil
	}))
}

func TestStore_Notify_UnknownProfile(t *testing.T) {
	t.Parallel()

	err := NewStore(memory.New()).Notify(context.Background(), models.Notification{ProfileID: uuid.New()})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNop(t *testing.T) {
	t.Parallel()

	require.NoError(t, Nop{}.Notify(context.Background(), models.Notification{}))
}
