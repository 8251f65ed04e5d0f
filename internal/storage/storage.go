package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — запись с таким идентификатором уже есть.
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict — запись изменилась с момента чтения (версия не совпала).
	ErrConflict = errors.New("conflict")
	// ErrDuplicatePair — знакомство для этой пары профилей уже существует.
	ErrDuplicatePair = errors.New("duplicate pair")
	// ErrPendingVerification — у профиля уже есть необработанная заявка на проверку.
	ErrPendingVerification = errors.New("pending verification exists")
)

// Storage — хранилище доменных сущностей.
//
// Любое изменение выполняется внутри Update: fn получает рабочую копию состояния,
// и изменения фиксируются целиком, только если fn вернула nil. При ошибке состояние
// остаётся прежним (частичных изменений не бывает).
type Storage interface {
	// View выполняет fn над согласованным снимком только для чтения.
	View(ctx context.Context, fn func(tx Tx) error) error

	// Update выполняет fn атомарно относительно других View/Update.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// Close освобождает ресурсы хранилища.
	Close()
}

// Tx — операции над состоянием внутри View/Update.
// Чтения возвращают копии: изменение результата не влияет на хранилище до Save*.
// Списки возвращаются в порядке вставки.
type Tx interface {
	Profile(id uuid.UUID) (models.Profile, error)
	Profiles() []models.Profile
	// InsertProfile — ErrAlreadyExists при совпадении ID.
	InsertProfile(p models.Profile) error
	// SaveProfile — ErrNotFound, если профиля нет.
	SaveProfile(p models.Profile) error

	Verification(id uuid.UUID) (models.Verification, error)
	Verifications() []models.Verification
	// InsertVerification — ErrAlreadyExists при совпадении ID,
	// ErrPendingVerification, если у профиля уже есть заявка в статусе pending.
	InsertVerification(v models.Verification) error
	SaveVerification(v models.Verification) error

	Match(id uuid.UUID) (models.Match, error)
	Matches() []models.Match
	InsertMatch(m models.Match) error
	// SaveMatch сохраняет пару, если m.Version совпадает с сохранённой версией
	// (иначе ErrConflict), и увеличивает версию.
	SaveMatch(m models.Match) (models.Match, error)

	Introduction(id uuid.UUID) (models.Introduction, error)
	Introductions() []models.Introduction
	// IntroductionByPair ищет знакомство по неупорядоченной паре профилей.
	IntroductionByPair(key models.PairKey) (models.Introduction, error)
	// InsertIntroduction — ErrDuplicatePair, если для пары уже есть знакомство.
	InsertIntroduction(i models.Introduction) error
	// SaveIntroduction — как SaveMatch: проверка и увеличение Version.
	SaveIntroduction(i models.Introduction) (models.Introduction, error)

	Conversation(id uuid.UUID) (models.Conversation, error)
	Conversations() []models.Conversation
	InsertConversation(c models.Conversation) error
	SaveConversation(c models.Conversation) error

	Payment(id uuid.UUID) (models.Payment, error)
	Payments() []models.Payment
	InsertPayment(p models.Payment) error
	SavePayment(p models.Payment) error

	Notification(id uuid.UUID) (models.Notification, error)
	// NotificationsFor возвращает уведомления профиля, новые первыми.
	NotificationsFor(profileID uuid.UUID) []models.Notification
	InsertNotification(n models.Notification) error
	SaveNotification(n models.Notification) error
}
