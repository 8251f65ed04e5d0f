package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// RecordPaymentInput — запись платежа в ведомость.
// Status: пусто -> pending; допускается сразу completed (платёж подтверждён шлюзом).
type RecordPaymentInput struct {
	ProfileID uuid.UUID
	Amount    decimal.Decimal
	Currency  string
	Method    string
	Type      models.PaymentType
	Status    models.PaymentStatus
	Reference string
}

// PaymentFilter — параметры ведомости.
type PaymentFilter struct {
	PageParams
	Status   string
	Type     string
	Currency string
	Method   string
}

// PaymentStats — агрегаты по отфильтрованной ведомости.
// Суммы пересчитаны в базовую валюту (Currency) по таблице курсов.
type PaymentStats struct {
	Currency string          `json:"currency"`
	Revenue  decimal.Decimal `json:"revenue"`
	Pending  decimal.Decimal `json:"pending"`
	Refunded decimal.Decimal `json:"refunded"`
	Count    int             `json:"count"`
	ByStatus map[string]int  `json:"by_status"`
	ByType   map[string]int  `json:"by_type"`
}

// PaymentPage — страница ведомости и агрегаты.
type PaymentPage struct {
	Items []PaymentView `json:"items"`
	Page  query.Page    `json:"page"`
	Stats PaymentStats  `json:"stats"`
}

// RecordPayment добавляет платёж.
//
// Валидация:
//   - существующий профиль; Amount > 0; валюта есть в таблице курсов;
//   - Type — signup/premium/success_fee; Status — пусто/pending/completed.
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentView, error) {
	const op = "service/payments/RecordPayment"

	lg := log.From(ctx).With("op", op, "profile_id", in.ProfileID.String())

	if in.ProfileID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	if !in.Amount.IsPositive() {
		return nil, fail(lg, op, invalid("amount must be > 0"))
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	base, err := s.rates.Convert(in.Amount, in.Currency)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	if !in.Type.Valid() {
		return nil, fail(lg, op, invalid("payment type %q", in.Type))
	}

	switch in.Status {
	case "":
		in.Status = models.PaymentPending
	case models.PaymentPending, models.PaymentCompleted:
	default:
		return nil, fail(lg, op, invalid("initial payment status %q", in.Status))
	}

	now := s.clock()
	pay := models.Payment{
		ID:        uuid.New(),
		ProfileID: in.ProfileID,
		Amount:    in.Amount,
		Currency:  in.Currency,
		Method:    strings.TrimSpace(in.Method),
		Status:    in.Status,
		Type:      in.Type,
		Reference: strings.TrimSpace(in.Reference),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.storage.Update(ctx, func(tx storage.Tx) error {
		p, err := tx.Profile(in.ProfileID)
		if err != nil {
			return err
		}

		pay.PayerName = p.Name
		return tx.InsertPayment(pay)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("payment recorded", "payment_id", pay.ID.String(), "status", string(pay.Status))

	if pay.Status == models.PaymentCompleted {
		s.notify(ctx, lg, paymentNotification(pay))
	}

	return &PaymentView{Payment: pay, BaseAmount: base}, nil
}

// TransitionPayment меняет статус платежа:
// pending -> completed|failed; completed -> refunded.
// Непустой note заменяет заметки по платежу.
func (s *Service) TransitionPayment(ctx context.Context, id uuid.UUID, to models.PaymentStatus, note string) (*PaymentView, error) {
	const op = "service/payments/TransitionPayment"

	lg := log.From(ctx).With("op", op, "payment_id", id.String(), "to", string(to))

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty payment id"))
	}

	if !to.Known() {
		return nil, fail(lg, op, invalid("unknown payment status %q", to))
	}

	var (
		pay  models.Payment
		from models.PaymentStatus
		base decimal.Decimal
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		var err error
		pay, err = tx.Payment(id)
		if err != nil {
			return err
		}

		from = pay.Status
		if !from.CanTransitionTo(to) {
			return badTransition("payment", from, to)
		}

		// Курс валюты проверяется до сохранения.
		if base, err = s.rates.Convert(pay.Amount, pay.Currency); err != nil {
			return err
		}

		pay.Status = to
		if note = strings.TrimSpace(note); note != "" {
			pay.Notes = note
		}
		pay.UpdatedAt = s.clock()
		return tx.SavePayment(pay)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("payment", string(from), string(to))
	lg.Info("payment status changed", "from", string(from))

	if to == models.PaymentCompleted || to == models.PaymentRefunded {
		s.notify(ctx, lg, paymentNotification(pay))
	}

	return &PaymentView{Payment: pay, BaseAmount: base}, nil
}

// ListPayments возвращает страницу ведомости и агрегаты по всей отфильтрованной выборке
// (а не только по текущей странице).
func (s *Service) ListPayments(ctx context.Context, f PaymentFilter) (*PaymentPage, error) {
	const op = "service/payments/ListPayments"

	lg := log.From(ctx).With("op", op)

	params, err := s.params(f.PageParams, map[string]string{
		"status":   f.Status,
		"type":     f.Type,
		"currency": strings.ToUpper(strings.TrimSpace(f.Currency)),
		"method":   f.Method,
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	var payments []models.Payment
	if err := s.storage.View(ctx, func(tx storage.Tx) error {
		payments = tx.Payments()
		return nil
	}); err != nil {
		return nil, fail(lg, op, err)
	}

	views, err := s.paymentViews(payments)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	filtered, err := s.schemas.payments.Filter(views, params.Search, params.Equals)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	stats := s.paymentStats(filtered)

	sorted, err := s.schemas.payments.Sorted(filtered, params.Sort)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	items, page, err := query.Paginate(sorted, params.Page, params.PageSize)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &PaymentPage{Items: items, Page: page, Stats: stats}, nil
}

// Revenue — выручка по завершённым платежам в базовой валюте.
func (s *Service) Revenue(payments []models.Payment) (decimal.Decimal, error) {
	completed := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			completed = append(completed, p)
		}
	}

	return query.SumConverted(completed, s.rates, func(p models.Payment) (decimal.Decimal, string) {
		return p.Amount, p.Currency
	})
}

func (s *Service) paymentViews(payments []models.Payment) ([]PaymentView, error) {
	out := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		base, err := s.rates.Convert(p.Amount, p.Currency)
		if err != nil {
			return nil, err
		}
		out = append(out, PaymentView{Payment: p, BaseAmount: base})
	}
	return out, nil
}

func (s *Service) paymentStats(views []PaymentView) PaymentStats {
	stats := PaymentStats{
		Currency: s.cfg.Currency.Base,
		Revenue:  decimal.Zero,
		Pending:  decimal.Zero,
		Refunded: decimal.Zero,
		Count:    len(views),
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}

	for _, v := range views {
		switch v.Status {
		case models.PaymentCompleted:
			stats.Revenue = stats.Revenue.Add(v.BaseAmount)
		case models.PaymentPending:
			stats.Pending = stats.Pending.Add(v.BaseAmount)
		case models.PaymentRefunded:
			stats.Refunded = stats.Refunded.Add(v.BaseAmount)
		}
	}

	for k, n := range query.CountBy(views, func(v PaymentView) string { return string(v.Status) }) {
		stats.ByStatus[k] = n
	}
	for k, n := range query.CountBy(views, func(v PaymentView) string { return string(v.Type) }) {
		stats.ByType[k] = n
	}

	return stats
}

func paymentNotification(pay models.Payment) models.Notification {
	title := "Payment received"
	if pay.Status == models.PaymentRefunded {
		title = "Payment refunded"
	}

	return models.Notification{
		ProfileID:   pay.ProfileID,
		Type:        models.NotificationPayment,
		Title:       title,
		Description: fmt.Sprintf("%s %s (%s)", pay.Amount.StringFixed(2), pay.Currency, pay.Type),
		Link:        "/payments/" + pay.ID.String(),
	}
}
