package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// MaxMessageLength — предел длины сообщения (в рунах).
const MaxMessageLength = 4000

// SendMessageInput — новое сообщение в переписке.
// FromMatchmaker=false -> автор участник (SenderID должен совпадать с владельцем переписки).
type SendMessageInput struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	FromMatchmaker bool
	Content        string
}

// StartConversationInput — новая переписка участника со службой.
type StartConversationInput struct {
	ProfileID uuid.UUID
	Title     string
}

// ConversationPage — страница переписок (без тел сообщений).
type ConversationPage struct {
	Items []models.Conversation `json:"items"`
	Page  query.Page            `json:"page"`
}

// StartConversation создаёт переписку для профиля.
// У профиля может быть только одна переписка -> иначе ErrAlreadyExists.
func (s *Service) StartConversation(ctx context.Context, in StartConversationInput) (*models.Conversation, error) {
	const op = "service/conversations/StartConversation"

	lg := log.From(ctx).With("op", op, "profile_id", in.ProfileID.String())

	if in.ProfileID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Your matchmaker"
	}

	c := models.Conversation{
		ID:        uuid.New(),
		ProfileID: in.ProfileID,
		Title:     title,
	}

	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		if _, err := tx.Profile(in.ProfileID); err != nil {
			return err
		}

		for _, existing := range tx.Conversations() {
			if existing.ProfileID == in.ProfileID {
				return fmt.Errorf("%w: conversation %s", ErrAlreadyExists, existing.ID)
			}
		}

		return tx.InsertConversation(c)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("conversation started", "conversation_id", c.ID.String())

	return &c, nil
}

// ListConversations возвращает переписки без сообщений; по умолчанию новые сверху.
func (s *Service) ListConversations(ctx context.Context, p PageParams) (*ConversationPage, error) {
	const op = "service/conversations/ListConversations"

	lg := log.From(ctx).With("op", op)

	if p.Sort.Field == "" {
		p.Sort = query.Sort{Field: "last_message_at", Desc: true}
	}

	params, err := s.params(p, nil)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	var items []models.Conversation
	if err := s.storage.View(ctx, func(tx storage.Tx) error {
		for _, c := range tx.Conversations() {
			items = append(items, c.Summary())
		}
		return nil
	}); err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.schemas.conversations.Run(items, params)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &ConversationPage{Items: res.Items, Page: res.Page}, nil
}

// GetConversation открывает переписку: возвращает сообщения и обнуляет UnreadCount.
func (s *Service) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	const op = "service/conversations/GetConversation"

	lg := log.From(ctx).With("op", op, "conversation_id", id.String())

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty conversation id"))
	}

	var out models.Conversation
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		c, err := tx.Conversation(id)
		if err != nil {
			return err
		}

		if c.UnreadCount != 0 {
			c.UnreadCount = 0
			if err := tx.SaveConversation(c); err != nil {
				return err
			}
		}

		out = c
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &out, nil
}

// SendMessage добавляет сообщение и обновляет LastMessage/LastMessageAt.
//
// Поведение:
//   - сообщение участника увеличивает UnreadCount (непрочитанное сватом);
//   - сообщение свата уведомляет участника;
//   - пустой текст или длиннее MaxMessageLength -> ErrValidation.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	const op = "service/conversations/SendMessage"

	lg := log.From(ctx).With("op", op,
		"conversation_id", in.ConversationID.String(),
		"from_matchmaker", in.FromMatchmaker,
	)

	if in.ConversationID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty conversation id"))
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, fail(lg, op, invalid("empty content"))
	}

	if len([]rune(in.Content)) > MaxMessageLength {
		return nil, fail(lg, op, invalid("content longer than %d characters", MaxMessageLength))
	}

	var (
		msg       models.Message
		recipient uuid.UUID
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		c, err := tx.Conversation(in.ConversationID)
		if err != nil {
			return err
		}

		msg = models.Message{
			ID:               uuid.New(),
			ConversationID:   c.ID,
			Content:          in.Content,
			IsFromMatchmaker: in.FromMatchmaker,
			SentAt:           s.clock(),
		}

		if in.FromMatchmaker {
			msg.SenderName = models.MatchmakerName
			recipient = c.ProfileID
		} else {
			if in.SenderID != c.ProfileID {
				return invalid("sender %s is not the conversation member", in.SenderID)
			}

			p, err := tx.Profile(c.ProfileID)
			if err != nil {
				return err
			}

			msg.SenderID = p.ID
			msg.SenderName = p.Name
			c.UnreadCount++
		}

		c.Append(msg)
		return tx.SaveConversation(c)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("message sent", "message_id", msg.ID.String())

	if recipient != uuid.Nil {
		s.notify(ctx, lg, models.Notification{
			ProfileID:   recipient,
			Type:        models.NotificationMessage,
			Title:       "New message",
			Description: "Your matchmaker sent you a message.",
			Link:        "/conversations/" + msg.ConversationID.String(),
		})
	}

	return &msg, nil
}
