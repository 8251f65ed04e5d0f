// compatibility описывает модель совместимости пары: измерения, проверку
// разбивки по измерениям, диапазоны оценок и «сильные стороны» для текста знакомства.
//
// Итоговая оценка пары хранится на Match независимо от разбивки и здесь
// не вычисляется: совпадение со средним значением не гарантируется.
package compatibility

import (
	"errors"
	"fmt"
	"sort"
)

// Dimension — измерение совместимости.
type Dimension string

const (
	Values      Dimension = "values"
	Lifestyle   Dimension = "lifestyle"
	Family      Dimension = "family"
	Personality Dimension = "personality"
	Practical   Dimension = "practical"
)

// Set — фиксированный набор измерений для конкретного контекста.
type Set []Dimension

var (
	// MemberSet — набор для пар, которые видит участник.
	MemberSet = Set{Values, Lifestyle, Family, Personality}
	// AdminSet — набор для предложений, которые проверяет сват.
	AdminSet = Set{Values, Lifestyle, Family, Personality, Practical}
)

// canonical — порядок измерений при равных оценках.
var canonical = map[Dimension]int{
	Values:      0,
	Lifestyle:   1,
	Family:      2,
	Personality: 3,
	Practical:   4,
}

var labels = map[Dimension]string{
	Values:      "shared values",
	Lifestyle:   "compatible lifestyles",
	Family:      "aligned family outlook",
	Personality: "complementary personalities",
	Practical:   "practical fit",
}

const (
	MinScore = 0
	MaxScore = 100
)

var (
	// ErrScoreOutOfRange — оценка вне диапазона [0, 100].
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrInvalidBreakdown — неполная разбивка или неизвестное измерение.
	ErrInvalidBreakdown = errors.New("invalid breakdown")
)

// Breakdown — оценки по измерениям.
type Breakdown map[Dimension]int

// FromMap приводит map[string]int из модели к Breakdown.
func FromMap(m map[string]int) Breakdown {
	out := make(Breakdown, len(m))
	for k, v := range m {
		out[Dimension(k)] = v
	}
	return out
}

// ToMap возвращает представление для модели/транспорта.
func (b Breakdown) ToMap() map[string]int {
	out := make(map[string]int, len(b))
	for k, v := range b {
		out[string(k)] = v
	}
	return out
}

// Contains сообщает, входит ли измерение в набор.
func (s Set) Contains(d Dimension) bool {
	_, ok := s.index(d)
	return ok
}

func (s Set) index(d Dimension) (int, bool) {
	for i, v := range s {
		if v == d {
			return i, true
		}
	}
	return 0, false
}

// ValidateScore проверяет диапазон итоговой оценки.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}
	return nil
}

// Validate проверяет, что разбивка содержит ровно измерения набора
// и каждая оценка лежит в [0, 100].
func Validate(b Breakdown, set Set) error {
	for d, v := range b {
		if !set.Contains(d) {
			return fmt.Errorf("%w: unknown dimension %q", ErrInvalidBreakdown, d)
		}
		if err := ValidateScore(v); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
	}

	for _, d := range set {
		if _, ok := b[d]; !ok {
			return fmt.Errorf("%w: missing dimension %q", ErrInvalidBreakdown, d)
		}
	}

	return nil
}

// SetFor подбирает набор по составу разбивки: с practical — AdminSet, иначе MemberSet.
func SetFor(b Breakdown) Set {
	if _, ok := b[Practical]; ok {
		return AdminSet
	}
	return MemberSet
}

// Label — человекочитаемое описание измерения для текста знакомства.
func Label(d Dimension) string {
	if l, ok := labels[d]; ok {
		return l
	}
	return string(d)
}

// Highlights возвращает измерения с оценкой не ниже threshold:
// по убыванию оценки, при равенстве — в каноническом порядке; не больше limit.
// limit <= 0 — без ограничения.
func Highlights(b Breakdown, threshold, limit int) []Dimension {
	out := make([]Dimension, 0, len(b))
	for d, v := range b {
		if v >= threshold {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if b[out[i]] != b[out[j]] {
			return b[out[i]] > b[out[j]]
		}
		ci, iok := canonical[out[i]]
		cj, jok := canonical[out[j]]
		if iok != jok {
			return iok
		}
		if ci != cj {
			return ci < cj
		}
		return out[i] < out[j]
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
