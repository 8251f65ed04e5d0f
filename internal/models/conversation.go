package models

import (
	"time"

	"github.com/google/uuid"
)

// Message — одно сообщение переписки участника со службой сватовства.
type Message struct {
	ID               uuid.UUID `json:"id"`
	ConversationID   uuid.UUID `json:"conversation_id"`
	SenderID         uuid.UUID `json:"sender_id"`
	SenderName       string    `json:"sender_name"`
	Content          string    `json:"content"`
	IsFromMatchmaker bool      `json:"is_from_matchmaker"`
	SentAt           time.Time `json:"sent_at"`
}

// Conversation — переписка одного участника (ProfileID) со службой.
// UnreadCount — непрочитанные сватом сообщения участника; обнуляется при открытии.
type Conversation struct {
	ID            uuid.UUID  `json:"id"`
	ProfileID     uuid.UUID  `json:"profile_id"`
	Title         string     `json:"title"`
	Messages      []Message  `json:"messages,omitempty"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int        `json:"unread_count"`
}

// Clone возвращает копию без общего слайса сообщений.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}

// Summary — копия без тела переписки (для списков).
func (c Conversation) Summary() Conversation {
	out := c
	out.Messages = nil
	return out
}

// MatchmakerName — имя отправителя для сообщений службы сватовства.
const MatchmakerName = "Matchmaker"

// Append добавляет сообщение в конец переписки и обновляет LastMessage/LastMessageAt.
// UnreadCount не меняется.
func (c *Conversation) Append(m Message) {
	c.Messages = append(c.Messages, m)
	c.LastMessage = m.Content
	at := m.SentAt
	c.LastMessageAt = &at
}
