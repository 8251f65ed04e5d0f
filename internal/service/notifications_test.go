package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/fixtures"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/notify"
)

func TestNotifications_MarkRead(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	karim := fixtures.ID("karim")

	list, err := s.ListNotifications(ctx, karim)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, 1, list.Unread)

	n, err := s.MarkNotificationRead(ctx, list.Items[0].ID)
	require.NoError(t, err)
	require.True(t, n.IsRead)

	// Повторная отметка ничего не меняет.
	n, err = s.MarkNotificationRead(ctx, list.Items[0].ID)
	require.NoError(t, err)
	require.True(t, n.IsRead)

	list, err = s.ListNotifications(ctx, karim)
	require.NoError(t, err)
	require.Zero(t, list.Unread)

	_, err = s.MarkNotificationRead(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.ListNotifications(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	t.Parallel()

	s, st := newSeededService(t)
	s.notifier = notify.NewStore(st)
	ctx := context.Background()
	matchID := fixtures.ID("match-nusrat-karim")

	// Отправка знакомства добавляет уведомление обеим сторонам.
	_, err := s.SendIntroduction(ctx, SendIntroductionInput{MatchID: matchID})
	require.NoError(t, err)

	list, err := s.ListNotifications(ctx, fixtures.ID("karim"))
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	require.Equal(t, 2, list.Unread)
	require.Equal(t, "Your matchmaker introduced you to Nusrat Jahan.", list.Items[0].Description)

	marked, err := s.MarkAllNotificationsRead(ctx, fixtures.ID("karim"))
	require.NoError(t, err)
	require.Equal(t, 2, marked)

	marked, err = s.MarkAllNotificationsRead(ctx, fixtures.ID("karim"))
	require.NoError(t, err)
	require.Zero(t, marked)

	// Чужие уведомления не затронуты.
	list, err = s.ListNotifications(ctx, fixtures.ID("nusrat"))
	require.NoError(t, err)
	require.Equal(t, 1, list.Unread)
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)

	require.Equal(t, 6, d.Profiles)
	require.Equal(t, map[string]int{"active": 3, "pending": 2, "suspended": 1}, d.ProfilesByStatus)
	require.Equal(t, 2, d.PendingVerifications)
	require.Equal(t, map[string]int{"suggested": 1, "approved": 1, "sent": 1, "declined": 1}, d.MatchesByStatus)
	require.Equal(t, map[string]int{string(models.IntroductionAcceptedOne): 1}, d.IntroductionsByStatus)
	require.Equal(t, 1, d.UnreadMessages)
	require.Equal(t, "BDT", d.Currency)
	requireAmount(t, "16000", d.Revenue)
}
