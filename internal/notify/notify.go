// notify — доставка уведомлений участникам.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// Store сохраняет уведомления в хранилище: участник увидит их в своей ленте.
type Store struct {
	storage storage.Storage
	now     func() time.Time
}

// NewStore создаёт notifier поверх хранилища.
func NewStore(st storage.Storage) *Store {
	return &Store{storage: st, now: time.Now}
}

// Notify сохраняет уведомление; пустые ID и CreatedAt заполняются.
func (s *Store) Notify(ctx context.Context, n models.Notification) error {
	const op = "notify/Store/Notify"

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}
	n.IsRead = false

	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		if _, err := tx.Profile(n.ProfileID); err != nil {
			return err
		}
		return tx.InsertNotification(n)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Debug("notification stored",
		"op", op,
		"notification_id", n.ID.String(),
		"profile_id", n.ProfileID.String(),
		"type", string(n.Type),
	)

	return nil
}

// Nop ничего не доставляет.
type Nop struct{}

// Notify ничего не делает.
func (Nop) Notify(context.Context, models.Notification) error { return nil }
