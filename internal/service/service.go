// service содержит бизнес-логику matchmaking-сервиса:
//   - профили, проверка личности, предложенные пары и знакомства;
//   - переписка участников со сватом, платежи, уведомления;
//   - запросы к коллекциям (фильтр/сортировка/страницы) и агрегаты для панели.
//
// Каждая мутация выполняется одной атомарной операцией хранилища (storage.Update):
// при любой ошибке состояние не меняется. Уведомления отправляются после фиксации.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/pribylovaa/go-matrimony/internal/config"
	"github.com/pribylovaa/go-matrimony/internal/metrics"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
)

var (
	// ErrNotFound — сущность с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrValidation — неверные входные данные: поля, фильтры, сортировка, страница, оценки.
	ErrValidation = errors.New("validation error")
	// ErrInvalidStateTransition — действие недопустимо из текущего статуса.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrDuplicatePairing — знакомство для этой пары профилей уже существует.
	ErrDuplicatePairing = errors.New("duplicate pairing")
	// ErrAlreadyExists — дубликат (например, вторая необработанная заявка на проверку).
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict — запись изменилась с момента чтения (ExpectedVersion не совпал).
	ErrConflict = errors.New("conflict")
	// ErrInternal — внутренняя ошибка (хранилище/прочее).
	ErrInternal = errors.New("internal")
)

// Notifier — доставка уведомлений участникам.
// Вызывается после фиксации изменений; ошибка доставки не отменяет операцию.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Service — бизнес-логика matchmaking-service.
type Service struct {
	storage  storage.Storage
	cfg      config.Config
	notifier Notifier
	metrics  *metrics.Metrics
	rates    query.Rates
	lang     language.Tag
	now      func() time.Time

	schemas schemas
}

// Option — необязательная зависимость сервиса.
type Option func(*Service)

// WithNotifier задаёт доставку уведомлений (по умолчанию уведомления не отправляются).
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithMetrics включает учёт переходов статусов и уведомлений.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New создает новый экземпляр Service.
// Таблица курсов и локаль берутся из конфигурации.
func New(st storage.Storage, cfg config.Config, opts ...Option) (*Service, error) {
	const op = "service/New"

	rates, err := cfg.Currency.DecimalRates()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lang, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%s: locale: %w", op, err)
	}

	s := &Service{
		storage: st,
		cfg:     cfg,
		rates:   query.Rates(rates),
		lang:    lang,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.schemas = newSchemas(lang)

	return s, nil
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// fail логирует ошибку и приводит её к сервисной.
// Ошибки клиента логируются как Warn, внутренние — как Error.
func fail(lg *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		lg.Warn("request aborted", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		lg.Warn("not found", "err", err)
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, ErrValidation), errors.Is(err, query.ErrInvalidQuery):
		lg.Warn("validation failed", "err", err)
		return fmt.Errorf("%s: %w", op, ErrValidation)
	case errors.Is(err, ErrInvalidStateTransition):
		lg.Warn("invalid state transition", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInvalidStateTransition)
	case errors.Is(err, ErrDuplicatePairing), errors.Is(err, storage.ErrDuplicatePair):
		lg.Warn("duplicate pairing", "err", err)
		return fmt.Errorf("%s: %w", op, ErrDuplicatePairing)
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, storage.ErrPendingVerification):
		lg.Warn("already exists", "err", err)
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	case errors.Is(err, ErrConflict), errors.Is(err, storage.ErrConflict):
		lg.Warn("version conflict", "err", err)
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		lg.Error("storage error", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}

// invalid формирует ошибку валидации с пояснением.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// badTransition формирует ошибку недопустимого перехода.
func badTransition(entity string, from, to any) error {
	return fmt.Errorf("%w: %s %v -> %v", ErrInvalidStateTransition, entity, from, to)
}

// checkVersion сверяет ожидаемую версию; 0 — без проверки.
func checkVersion(expected, actual int64) error {
	if expected != 0 && expected != actual {
		return fmt.Errorf("%w: expected version %d, got %d", ErrConflict, expected, actual)
	}
	return nil
}

// notify доставляет уведомления; ошибки только логируются.
func (s *Service) notify(ctx context.Context, lg *slog.Logger, ns ...models.Notification) {
	if s.notifier == nil {
		return
	}

	for _, n := range ns {
		err := s.notifier.Notify(ctx, n)
		s.metrics.Notification(string(n.Type), err)
		if err != nil {
			lg.Warn("notification delivery failed",
				"profile_id", n.ProfileID.String(),
				"type", string(n.Type),
				"err", err,
			)
		}
	}
}

// PageParams — общие параметры списка.
type PageParams struct {
	Search   string
	Sort     query.Sort
	Page     int
	PageSize int
}

// params собирает query.Params и применяет лимиты страницы из конфигурации:
// 0 -> DefaultPageSize; больше MaxPageSize или меньше 0 -> ErrValidation.
func (s *Service) params(p PageParams, equals map[string]string) (query.Params, error) {
	size := p.PageSize
	switch {
	case size == 0:
		size = s.cfg.Limits.DefaultPageSize
	case size < 0 || size > s.cfg.Limits.MaxPageSize:
		return query.Params{}, invalid("page_size must be within [1, %d]", s.cfg.Limits.MaxPageSize)
	}

	if p.Page < 0 {
		return query.Params{}, invalid("page must be >= 1")
	}

	return query.Params{
		Search:   p.Search,
		Equals:   equals,
		Sort:     p.Sort,
		Page:     p.Page,
		PageSize: size,
	}, nil
}
