package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus — жизненный цикл предложенной пары.
type MatchStatus string

const (
	MatchSuggested MatchStatus = "suggested"
	MatchApproved  MatchStatus = "approved"
	MatchDeclined  MatchStatus = "declined"
	MatchSent      MatchStatus = "sent"
	MatchMutual    MatchStatus = "mutual"
)

// Match — пара из двух профилей с оценкой совместимости.
//
// Особенности:
//   - CompatibilityScore хранится отдельно и не выводится из Breakdown;
//   - Breakdown — оценки по измерениям (ключи — compatibility.Dimension);
//   - после declined/mutual меняются только Notes;
//   - Version растёт на каждой записи (оптимистичная блокировка).
type Match struct {
	ID                 uuid.UUID      `json:"id"`
	Profile1ID         uuid.UUID      `json:"profile1_id"`
	Profile2ID         uuid.UUID      `json:"profile2_id"`
	CompatibilityScore int            `json:"compatibility_score"`
	Breakdown          map[string]int `json:"breakdown"`
	Status             MatchStatus    `json:"status"`
	Notes              string         `json:"notes,omitempty"`
	Version            int64          `json:"version"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Involves сообщает, входит ли профиль в пару.
func (m Match) Involves(profileID uuid.UUID) bool {
	return m.Profile1ID == profileID || m.Profile2ID == profileID
}

// Clone возвращает копию без общих ссылок на Breakdown.
func (m Match) Clone() Match {
	out := m
	if m.Breakdown != nil {
		out.Breakdown = make(map[string]int, len(m.Breakdown))
		for k, v := range m.Breakdown {
			out.Breakdown[k] = v
		}
	}
	return out
}

// PairKey — неупорядоченный ключ пары профилей: (A,B) и (B,A) совпадают.
type PairKey struct {
	Low  uuid.UUID
	High uuid.UUID
}

// NewPairKey строит ключ пары независимо от порядка аргументов.
func NewPairKey(a, b uuid.UUID) PairKey {
	if a.String() > b.String() {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}
