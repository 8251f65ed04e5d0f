// memory — реализация storage.Storage в памяти процесса.
//
// Состояние хранится целиком за одним мьютексом. Update работает с копией
// состояния и подменяет его только при успешном завершении fn, поэтому
// каждая операция сервиса видна другим либо целиком, либо никак.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
)

var (
	// ErrClosed — хранилище закрыто.
	ErrClosed = errors.New("storage closed")

	errReadOnly = errors.New("write in read-only transaction")
)

type state struct {
	profiles      *table[models.Profile]
	verifications *table[models.Verification]
	matches       *table[models.Match]
	introductions *table[models.Introduction]
	conversations *table[models.Conversation]
	payments      *table[models.Payment]
	notifications *table[models.Notification]
}

func newState() *state {
	return &state{
		profiles:      newTable[models.Profile](nil),
		verifications: newTable[models.Verification](nil),
		matches:       newTable(models.Match.Clone),
		introductions: newTable[models.Introduction](nil),
		conversations: newTable(models.Conversation.Clone),
		payments:      newTable[models.Payment](nil),
		notifications: newTable[models.Notification](nil),
	}
}

func (s *state) clone() *state {
	return &state{
		profiles:      s.profiles.clone(),
		verifications: s.verifications.clone(),
		matches:       s.matches.clone(),
		introductions: s.introductions.clone(),
		conversations: s.conversations.clone(),
		payments:      s.payments.clone(),
		notifications: s.notifications.clone(),
	}
}

// Storage — хранилище в памяти.
type Storage struct {
	mu     sync.RWMutex
	st     *state
	closed bool
}

var _ storage.Storage = (*Storage)(nil)

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{st: newState()}
}

// View выполняет fn под разделяемой блокировкой; запись внутри fn запрещена.
func (s *Storage) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	return fn(&tx{st: s.st, readOnly: true})
}

// Update выполняет fn над копией состояния и фиксирует её, если fn вернула nil.
func (s *Storage) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	work := s.st.clone()
	if err := fn(&tx{st: work}); err != nil {
		return err
	}

	s.st = work

	return nil
}

// Close помечает хранилище закрытым; последующие вызовы вернут ErrClosed.
func (s *Storage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

type tx struct {
	st       *state
	readOnly bool
}

func (t *tx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}

// Profiles.

func (t *tx) Profile(id uuid.UUID) (models.Profile, error) { return t.st.profiles.get(id) }

func (t *tx) Profiles() []models.Profile { return t.st.profiles.list() }

func (t *tx) InsertProfile(p models.Profile) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.profiles.insert(p.ID, p)
}

func (t *tx) SaveProfile(p models.Profile) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.profiles.save(p.ID, p)
}

// Verifications.

func (t *tx) Verification(id uuid.UUID) (models.Verification, error) {
	return t.st.verifications.get(id)
}

func (t *tx) Verifications() []models.Verification { return t.st.verifications.list() }

func (t *tx) InsertVerification(v models.Verification) error {
	if err := t.writable(); err != nil {
		return err
	}

	if v.Status == models.VerificationRequestPending {
		for _, existing := range t.st.verifications.rows {
			if existing.ProfileID == v.ProfileID && existing.Status == models.VerificationRequestPending {
				return storage.ErrPendingVerification
			}
		}
	}

	return t.st.verifications.insert(v.ID, v)
}

func (t *tx) SaveVerification(v models.Verification) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.verifications.save(v.ID, v)
}

// Matches.

func (t *tx) Match(id uuid.UUID) (models.Match, error) { return t.st.matches.get(id) }

func (t *tx) Matches() []models.Match { return t.st.matches.list() }

func (t *tx) InsertMatch(m models.Match) error {
	if err := t.writable(); err != nil {
		return err
	}

	if m.Version == 0 {
		m.Version = 1
	}

	return t.st.matches.insert(m.ID, m)
}

func (t *tx) SaveMatch(m models.Match) (models.Match, error) {
	if err := t.writable(); err != nil {
		return models.Match{}, err
	}

	cur, err := t.st.matches.get(m.ID)
	if err != nil {
		return models.Match{}, err
	}

	if cur.Version != m.Version {
		return models.Match{}, storage.ErrConflict
	}

	m.Version++
	if err := t.st.matches.save(m.ID, m); err != nil {
		return models.Match{}, err
	}

	return m.Clone(), nil
}

// Introductions.

func (t *tx) Introduction(id uuid.UUID) (models.Introduction, error) {
	return t.st.introductions.get(id)
}

func (t *tx) Introductions() []models.Introduction { return t.st.introductions.list() }

func (t *tx) IntroductionByPair(key models.PairKey) (models.Introduction, error) {
	for _, id := range t.st.introductions.order {
		in := t.st.introductions.rows[id]
		if in.Pair() == key {
			return in, nil
		}
	}
	return models.Introduction{}, storage.ErrNotFound
}

func (t *tx) InsertIntroduction(i models.Introduction) error {
	if err := t.writable(); err != nil {
		return err
	}

	if _, err := t.IntroductionByPair(i.Pair()); err == nil {
		return storage.ErrDuplicatePair
	}

	if i.Version == 0 {
		i.Version = 1
	}

	return t.st.introductions.insert(i.ID, i)
}

func (t *tx) SaveIntroduction(i models.Introduction) (models.Introduction, error) {
	if err := t.writable(); err != nil {
		return models.Introduction{}, err
	}

	cur, err := t.st.introductions.get(i.ID)
	if err != nil {
		return models.Introduction{}, err
	}

	if cur.Version != i.Version {
		return models.Introduction{}, storage.ErrConflict
	}

	i.Version++
	if err := t.st.introductions.save(i.ID, i); err != nil {
		return models.Introduction{}, err
	}

	return i, nil
}

// Conversations.

func (t *tx) Conversation(id uuid.UUID) (models.Conversation, error) {
	return t.st.conversations.get(id)
}

func (t *tx) Conversations() []models.Conversation { return t.st.conversations.list() }

func (t *tx) InsertConversation(c models.Conversation) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.conversations.insert(c.ID, c)
}

func (t *tx) SaveConversation(c models.Conversation) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.conversations.save(c.ID, c)
}

// Payments.

func (t *tx) Payment(id uuid.UUID) (models.Payment, error) { return t.st.payments.get(id) }

func (t *tx) Payments() []models.Payment { return t.st.payments.list() }

func (t *tx) InsertPayment(p models.Payment) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.payments.insert(p.ID, p)
}

func (t *tx) SavePayment(p models.Payment) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.payments.save(p.ID, p)
}

// Notifications.

func (t *tx) Notification(id uuid.UUID) (models.Notification, error) {
	return t.st.notifications.get(id)
}

func (t *tx) NotificationsFor(profileID uuid.UUID) []models.Notification {
	all := t.st.notifications.list()

	out := make([]models.Notification, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ProfileID == profileID {
			out = append(out, all[i])
		}
	}

	return out
}

func (t *tx) InsertNotification(n models.Notification) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.notifications.insert(n.ID, n)
}

func (t *tx) SaveNotification(n models.Notification) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.st.notifications.save(n.ID, n)
}
