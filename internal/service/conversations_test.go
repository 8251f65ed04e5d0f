package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/fixtures"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/notify"
)

func TestListConversations_NewestFirst(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)

	page, err := s.ListConversations(context.Background(), PageParams{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Page.Total)
	require.Equal(t, fixtures.ID("conversation-karim"), page.Items[0].ID)
	require.Equal(t, fixtures.ID("conversation-ayesha"), page.Items[1].ID)

	// Список отдаётся без тел сообщений.
	for _, c := range page.Items {
		require.Empty(t, c.Messages)
		require.NotEmpty(t, c.LastMessage)
	}
}

func TestGetConversation_ResetsUnread(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	id := fixtures.ID("conversation-ayesha")

	c, err := s.GetConversation(ctx, id)
	require.NoError(t, err)
	require.Len(t, c.Messages, 2)
	require.Zero(t, c.UnreadCount)

	d, err := s.Dashboard(ctx)
	require.NoError(t, err)
	require.Zero(t, d.UnreadMessages)

	_, err = s.GetConversation(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSendMessage(t *testing.T) {
	t.Parallel()

	s, st := newSeededService(t)
	s.notifier = notify.NewStore(st)
	ctx := context.Background()
	id := fixtures.ID("conversation-ayesha")

	// Сообщение участника увеличивает счётчик непрочитанных.
	msg, err := s.SendMessage(ctx, SendMessageInput{
		ConversationID: id,
		SenderID:       fixtures.ID("ayesha"),
		Content:        "  Could we talk on Friday?  ",
	})
	require.NoError(t, err)
	require.Equal(t, "Could we talk on Friday?", msg.Content)
	require.Equal(t, "Ayesha Rahman", msg.SenderName)
	require.False(t, msg.IsFromMatchmaker)

	page, err := s.ListConversations(ctx, PageParams{})
	require.NoError(t, err)
	require.Equal(t, id, page.Items[0].ID)
	require.Equal(t, 2, page.Items[0].UnreadCount)
	require.Equal(t, "Could we talk on Friday?", page.Items[0].LastMessage)

	// Ответ свата уведомляет участника.
	reply, err := s.SendMessage(ctx, SendMessageInput{ConversationID: id, FromMatchmaker: true, Content: "Sure."})
	require.NoError(t, err)
	require.Equal(t, models.MatchmakerName, reply.SenderName)

	list, err := s.ListNotifications(ctx, fixtures.ID("ayesha"))
	require.NoError(t, err)
	require.Equal(t, models.NotificationMessage, list.Items[0].Type)
	require.Equal(t, "/conversations/"+id.String(), list.Items[0].Link)
	require.Equal(t, 1, list.Unread)

	c, err := s.GetConversation(ctx, id)
	require.NoError(t, err)
	require.Len(t, c.Messages, 4)
}

func TestSendMessage_Validation(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()
	id := fixtures.ID("conversation-ayesha")

	_, err := s.SendMessage(ctx, SendMessageInput{ConversationID: id, SenderID: fixtures.ID("ayesha"), Content: "   "})
	require.ErrorIs(t, err, ErrValidation)

	long := strings.Repeat("я", MaxMessageLength+1)
	_, err = s.SendMessage(ctx, SendMessageInput{ConversationID: id, FromMatchmaker: true, Content: long})
	require.ErrorIs(t, err, ErrValidation)

	// Чужая переписка.
	_, err = s.SendMessage(ctx, SendMessageInput{ConversationID: id, SenderID: fixtures.ID("rahim"), Content: "hi"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = s.SendMessage(ctx, SendMessageInput{ConversationID: uuid.New(), FromMatchmaker: true, Content: "hi"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStartConversation(t *testing.T) {
	t.Parallel()

	s, _ := newSeededService(t)
	ctx := context.Background()

	c, err := s.StartConversation(ctx, StartConversationInput{ProfileID: fixtures.ID("rahim")})
	require.NoError(t, err)
	require.Equal(t, "Your matchmaker", c.Title)
	require.Zero(t, c.UnreadCount)

	_, err = s.StartConversation(ctx, StartConversationInput{ProfileID: fixtures.ID("rahim")})
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = s.StartConversation(ctx, StartConversationInput{ProfileID: uuid.New()})
	require.ErrorIs(t, err, ErrNotFound)
}
