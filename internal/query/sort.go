package query

import (
	"fmt"
	"strings"
)

// Направления сортировки в транспортном представлении.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort — поле и направление сортировки.
type Sort struct {
	Field string
	Desc  bool
}

// Toggle — поведение клика по заголовку колонки: то же поле меняет направление,
// новое поле сортируется по возрастанию.
func (s Sort) Toggle(field string) Sort {
	if s.Field == field {
		return Sort{Field: field, Desc: !s.Desc}
	}
	return Sort{Field: field}
}

// Order возвращает направление в транспортном представлении.
func (s Sort) Order() string {
	if s.Desc {
		return OrderDesc
	}
	return OrderAsc
}

// ParseSort собирает Sort из параметров запроса; пустой order — asc.
func ParseSort(field, order string) (Sort, error) {
	field = strings.TrimSpace(field)

	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", OrderAsc:
		return Sort{Field: field}, nil
	case OrderDesc:
		return Sort{Field: field, Desc: true}, nil
	default:
		return Sort{}, fmt.Errorf("%w: unknown order %q", ErrInvalidQuery, order)
	}
}
