package query

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CountBy считает записи по ключу (например, по статусу).
func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

// Rates — курсы пересчёта валют в базовую: amount * rate.
type Rates map[string]decimal.Decimal

// Convert пересчитывает сумму в базовую валюту.
// Валюта без курса -> ErrInvalidQuery: суммировать «сырые» суммы разных валют нельзя.
func (r Rates) Convert(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rate, ok := r[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no conversion rate for currency %q", ErrInvalidQuery, currency)
	}
	return amount.Mul(rate), nil
}

// SumConverted суммирует суммы записей после пересчёта в базовую валюту.
func SumConverted[T any](items []T, rates Rates, amount func(T) (decimal.Decimal, string)) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		a, cur := amount(it)
		v, err := rates.Convert(a, cur)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}
