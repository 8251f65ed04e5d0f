package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// NotificationList — лента уведомлений профиля.
type NotificationList struct {
	Items  []models.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

// ListNotifications возвращает уведомления профиля (новые первыми) и число непрочитанных.
func (s *Service) ListNotifications(ctx context.Context, profileID uuid.UUID) (*NotificationList, error) {
	const op = "service/notifications/ListNotifications"

	lg := log.From(ctx).With("op", op, "profile_id", profileID.String())

	if profileID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	out := &NotificationList{}
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		if _, err := tx.Profile(profileID); err != nil {
			return err
		}

		out.Items = tx.NotificationsFor(profileID)
		for _, n := range out.Items {
			if !n.IsRead {
				out.Unread++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	if out.Items == nil {
		out.Items = []models.Notification{}
	}

	return out, nil
}

// MarkNotificationRead отмечает уведомление прочитанным.
// Повторный вызов ничего не меняет; обратного перехода нет.
func (s *Service) MarkNotificationRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	const op = "service/notifications/MarkNotificationRead"

	lg := log.From(ctx).With("op", op, "notification_id", id.String())

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty notification id"))
	}

	var n models.Notification
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		var err error
		n, err = tx.Notification(id)
		if err != nil {
			return err
		}

		if n.IsRead {
			return nil
		}

		n.IsRead = true
		return tx.SaveNotification(n)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &n, nil
}

// MarkAllNotificationsRead отмечает прочитанными все уведомления профиля
// и возвращает, сколько из них было непрочитано.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, profileID uuid.UUID) (int, error) {
	const op = "service/notifications/MarkAllNotificationsRead"

	lg := log.From(ctx).With("op", op, "profile_id", profileID.String())

	if profileID == uuid.Nil {
		return 0, fail(lg, op, invalid("empty profile id"))
	}

	var marked int
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		if _, err := tx.Profile(profileID); err != nil {
			return err
		}

		for _, n := range tx.NotificationsFor(profileID) {
			if n.IsRead {
				continue
			}

			n.IsRead = true
			if err := tx.SaveNotification(n); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, fail(lg, op, err)
	}

	lg.Debug("notifications marked read", "count", marked)

	return marked, nil
}
