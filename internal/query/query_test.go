package query

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type person struct {
	Name   string
	Age    int
	Status string
	Joined time.Time
}

func personSchema() *Schema[person] {
	return NewSchema[person](language.English).
		Sortable("name", StringField(func(p person) string { return p.Name })).
		Sortable("age", IntField(func(p person) int { return p.Age })).
		Sortable("joined", TimeField(func(p person) time.Time { return p.Joined })).
		Searchable(func(p person) string { return p.Name }).
		Enum("status", func(p person) string { return p.Status })
}

func people() []person {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []person{
		{Name: "Rahim", Age: 30, Status: "active", Joined: base.Add(72 * time.Hour)},
		{Name: "ayesha", Age: 27, Status: "pending", Joined: base},
		{Name: "Karim", Age: 30, Status: "active", Joined: base.Add(24 * time.Hour)},
		{Name: "Nusrat", Age: 25, Status: "active", Joined: base.Add(48 * time.Hour)},
		{Name: "Tanvir", Age: 30, Status: "suspended", Joined: base.Add(96 * time.Hour)},
	}
}

func names(ps []person) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_SearchAndEnum(t *testing.T) {
	t.Parallel()

	s := personSchema()

	got, err := s.Filter(people(), "KAR", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Karim"}, names(got))

	got, err = s.Filter(people(), "", map[string]string{"status": "active"})
	require.NoError(t, err)
	require.Equal(t, []string{"Rahim", "Karim", "Nusrat"}, names(got))

	got, err = s.Filter(people(), "a", map[string]string{"status": "all"})
	require.NoError(t, err)
	require.Len(t, got, 5)

	got, err = s.Filter(people(), "i", map[string]string{"status": "active"})
	require.NoError(t, err)
	require.Equal(t, []string{"Rahim", "Karim"}, names(got))
}

func TestFilter_MissingValueIsEmptyNotError(t *testing.T) {
	t.Parallel()

	res, err := personSchema().Run(people(), Params{
		Equals:   map[string]string{"status": "inactive"},
		PageSize: 10,
	})
	require.NoError(t, err)
	require.Empty(t, res.Items)
	require.Equal(t, 0, res.Page.Total)
	require.Equal(t, 0, res.Page.From)
	require.Equal(t, 0, res.Page.To)
}

func TestFilter_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := personSchema().Filter(people(), "", map[string]string{"planet": "earth"})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSorted_AgeAscDescReversedWithoutTies(t *testing.T) {
	t.Parallel()

	s := personSchema()
	in := []person{{Name: "a", Age: 40}, {Name: "b", Age: 22}, {Name: "c", Age: 31}}

	asc, err := s.Sorted(in, Sort{Field: "age"})
	require.NoError(t, err)
	desc, err := s.Sorted(in, Sort{Field: "age", Desc: true})
	require.NoError(t, err)

	reversed := slices.Clone(desc)
	slices.Reverse(reversed)
	require.Equal(t, asc, reversed)
	require.Equal(t, []string{"b", "c", "a"}, names(asc))
}

// Равные ключи сохраняют исходный порядок в обоих направлениях.
func TestSorted_Stable(t *testing.T) {
	t.Parallel()

	s := personSchema()

	asc, err := s.Sorted(people(), Sort{Field: "age"})
	require.NoError(t, err)
	require.Equal(t, []string{"Nusrat", "ayesha", "Rahim", "Karim", "Tanvir"}, names(asc))

	desc, err := s.Sorted(people(), Sort{Field: "age", Desc: true})
	require.NoError(t, err)
	require.Equal(t, []string{"Rahim", "Karim", "Tanvir", "ayesha", "Nusrat"}, names(desc))
}

func TestSorted_StringsCollated(t *testing.T) {
	t.Parallel()

	got, err := personSchema().Sorted(people(), Sort{Field: "name"})
	require.NoError(t, err)
	// Без учёта регистра "ayesha" идёт первой, а не после заглавных.
	require.Equal(t, []string{"ayesha", "Karim", "Nusrat", "Rahim", "Tanvir"}, names(got))
}

func TestSorted_Time(t *testing.T) {
	t.Parallel()

	got, err := personSchema().Sorted(people(), Sort{Field: "joined", Desc: true})
	require.NoError(t, err)
	require.Equal(t, []string{"Tanvir", "Rahim", "Nusrat", "Karim", "ayesha"}, names(got))
}

func TestSorted_EmptyAndUnknownField(t *testing.T) {
	t.Parallel()

	s := personSchema()
	in := people()

	got, err := s.Sorted(in, Sort{})
	require.NoError(t, err)
	require.Equal(t, in, got)

	_, err = s.Sorted(in, Sort{Field: "height"})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSorted_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := people()
	before := slices.Clone(in)

	_, err := personSchema().Sorted(in, Sort{Field: "age", Desc: true})
	require.NoError(t, err)
	require.Equal(t, before, in)
}

func TestSort_Toggle(t *testing.T) {
	t.Parallel()

	s := Sort{}.Toggle("age")
	require.Equal(t, Sort{Field: "age"}, s)

	s = s.Toggle("age")
	require.Equal(t, Sort{Field: "age", Desc: true}, s)

	s = s.Toggle("age")
	require.Equal(t, Sort{Field: "age"}, s)

	s = s.Toggle("age").Toggle("name")
	require.Equal(t, Sort{Field: "name"}, s)
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	s, err := ParseSort("age", "")
	require.NoError(t, err)
	require.Equal(t, Sort{Field: "age"}, s)

	s, err = ParseSort(" age ", "DESC")
	require.NoError(t, err)
	require.Equal(t, Sort{Field: "age", Desc: true}, s)
	require.Equal(t, OrderDesc, s.Order())

	_, err = ParseSort("age", "sideways")
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestPaginate_Bounds(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}

	got, p, err := Paginate(items, 3, 10)
	require.NoError(t, err)
	require.Equal(t, []int{21, 22, 23}, got)
	require.Equal(t, Page{Number: 3, Size: 10, Total: 23, Pages: 3, From: 21, To: 23}, p)

	got, p, err = Paginate(items, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 10)
	require.Equal(t, 1, p.Number)
	require.Equal(t, 1, p.From)
	require.Equal(t, 10, p.To)

	got, p, err = Paginate(items, 4, 10)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, 23, p.Total)
	require.Zero(t, p.From)

	_, _, err = Paginate(items, -1, 10)
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, _, err = Paginate(items, 1, 0)
	require.ErrorIs(t, err, ErrInvalidQuery)
}

// Склейка всех страниц воспроизводит исходную последовательность без дублей и пропусков.
func TestPaginate_ConcatReproducesSequence(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 25; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		for size := 1; size <= 7; size++ {
			var all []int
			for page := 1; ; page++ {
				got, p, err := Paginate(items, page, size)
				require.NoError(t, err)
				if len(got) == 0 {
					require.Equal(t, n, p.Total)
					break
				}
				all = append(all, got...)
			}

			if n == 0 {
				require.Empty(t, all)
				continue
			}
			require.Equal(t, items, all, "n=%d size=%d", n, size)
		}
	}
}

func TestCountBy(t *testing.T) {
	t.Parallel()

	got := CountBy(people(), func(p person) string { return p.Status })
	require.Equal(t, map[string]int{"active": 3, "pending": 1, "suspended": 1}, got)
}

func TestSumConverted_MixedCurrencies(t *testing.T) {
	t.Parallel()

	type pay struct {
		amount   decimal.Decimal
		currency string
	}

	rates := Rates{
		"BDT": decimal.NewFromInt(1),
		"USD": decimal.NewFromInt(110),
		"GBP": decimal.NewFromInt(140),
	}

	items := []pay{
		{amount: decimal.NewFromInt(5000), currency: "BDT"},
		{amount: decimal.NewFromInt(100), currency: "usd"},
	}

	total, err := SumConverted(items, rates, func(p pay) (decimal.Decimal, string) { return p.amount, p.currency })
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(16000).Equal(total), total.String())

	_, err = SumConverted([]pay{{amount: decimal.NewFromInt(1), currency: "EUR"}}, rates,
		func(p pay) (decimal.Decimal, string) { return p.amount, p.currency })
	require.ErrorIs(t, err, ErrInvalidQuery)
}
