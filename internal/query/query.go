// query реализует общие операции над коллекциями доменных сущностей:
// фильтрацию (поиск + равенство по перечислениям), устойчивую сортировку,
// постраничную выдачу и агрегаты. Поля сущности описываются схемой Schema[T],
// поэтому одна реализация обслуживает профили, пары, знакомства и платежи.
//
// Операции не меняют входной слайс: результат — новая коллекция.
package query

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidQuery — неизвестное поле фильтра/сортировки или неверные параметры страницы.
var ErrInvalidQuery = errors.New("invalid query")

// All — значение фильтра по перечислению, означающее «без ограничения».
const All = "all"

// Kind — тип значения поля для сортировки.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
)

// Field — способ извлечь сортируемое значение из записи.
type Field[T any] struct {
	kind   Kind
	str    func(T) string
	number func(T) float64
	time   func(T) time.Time
}

// StringField — строковое поле; сравнение с учётом локали.
func StringField[T any](fn func(T) string) Field[T] {
	return Field[T]{kind: KindString, str: fn}
}

// NumberField — числовое поле.
func NumberField[T any](fn func(T) float64) Field[T] {
	return Field[T]{kind: KindNumber, number: fn}
}

// IntField — целочисленное поле.
func IntField[T any](fn func(T) int) Field[T] {
	return Field[T]{kind: KindNumber, number: func(v T) float64 { return float64(fn(v)) }}
}

// TimeField — поле даты/времени; сравнение хронологическое.
func TimeField[T any](fn func(T) time.Time) Field[T] {
	return Field[T]{kind: KindTime, time: fn}
}

// Kind возвращает тип поля.
func (f Field[T]) Kind() Kind { return f.kind }

// Schema — описание запрашиваемых полей сущности T.
type Schema[T any] struct {
	lang     language.Tag
	sortable map[string]Field[T]
	search   []func(T) string
	enums    map[string]func(T) string
}

// NewSchema создаёт пустую схему; lang задаёт правила сравнения строк.
func NewSchema[T any](lang language.Tag) *Schema[T] {
	return &Schema[T]{
		lang:     lang,
		sortable: make(map[string]Field[T]),
		enums:    make(map[string]func(T) string),
	}
}

// Sortable регистрирует поле сортировки.
func (s *Schema[T]) Sortable(name string, f Field[T]) *Schema[T] {
	s.sortable[name] = f
	return s
}

// Searchable регистрирует строковые поля, по которым идёт текстовый поиск.
func (s *Schema[T]) Searchable(fns ...func(T) string) *Schema[T] {
	s.search = append(s.search, fns...)
	return s
}

// Enum регистрирует поле фильтрации по равенству.
func (s *Schema[T]) Enum(name string, fn func(T) string) *Schema[T] {
	s.enums[name] = fn
	return s
}

// Filter оставляет записи, удовлетворяющие одновременно поиску и всем фильтрам по равенству.
//
// Правила:
//   - search сравнивается как подстрока без учёта регистра (Unicode case folding)
//     хотя бы с одним searchable-полем; пустой search — без ограничения;
//   - equals: имя enum-поля -> значение; "" и "all" — без ограничения;
//   - неизвестное имя поля -> ErrInvalidQuery;
//   - значение, которого нет в коллекции, даёт пустой результат, а не ошибку.
func (s *Schema[T]) Filter(items []T, search string, equals map[string]string) ([]T, error) {
	type eq struct {
		get  func(T) string
		want string
	}

	active := make([]eq, 0, len(equals))
	for name, want := range equals {
		get, ok := s.enums[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown filter field %q", ErrInvalidQuery, name)
		}

		want = strings.TrimSpace(want)
		if want == "" || strings.EqualFold(want, All) {
			continue
		}

		active = append(active, eq{get: get, want: want})
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	out := make([]T, 0, len(items))
	for _, it := range items {
		matched := true
		for _, e := range active {
			if e.get(it) != e.want {
				matched = false
				break
			}
		}

		if !matched {
			continue
		}

		if needle != "" && !s.matchesSearch(fold, it, needle) {
			continue
		}

		out = append(out, it)
	}

	return out, nil
}

func (s *Schema[T]) matchesSearch(fold cases.Caser, it T, needle string) bool {
	for _, get := range s.search {
		if strings.Contains(fold.String(get(it)), needle) {
			return true
		}
	}
	return false
}

// Sorted возвращает устойчиво отсортированную копию items.
// Пустое имя поля — исходный порядок; неизвестное — ErrInvalidQuery.
// Равные ключи сохраняют взаимный порядок в обоих направлениях.
func (s *Schema[T]) Sorted(items []T, by Sort) ([]T, error) {
	out := slices.Clone(items)
	if by.Field == "" {
		return out, nil
	}

	f, ok := s.sortable[by.Field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, by.Field)
	}

	var compare func(a, b T) int
	switch f.kind {
	case KindString:
		col := collate.New(s.lang)
		compare = func(a, b T) int { return col.CompareString(f.str(a), f.str(b)) }
	case KindNumber:
		compare = func(a, b T) int { return cmp.Compare(f.number(a), f.number(b)) }
	case KindTime:
		compare = func(a, b T) int { return f.time(a).Compare(f.time(b)) }
	}

	if by.Desc {
		asc := compare
		compare = func(a, b T) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)

	return out, nil
}

// Params — полный запрос к коллекции.
type Params struct {
	Search   string
	Equals   map[string]string
	Sort     Sort
	Page     int
	PageSize int
}

// Result — страница результата и её границы.
type Result[T any] struct {
	Items []T
	Page  Page
}

// Run применяет Filter -> Sorted -> Paginate.
func (s *Schema[T]) Run(items []T, p Params) (Result[T], error) {
	filtered, err := s.Filter(items, p.Search, p.Equals)
	if err != nil {
		return Result[T]{}, err
	}

	sorted, err := s.Sorted(filtered, p.Sort)
	if err != nil {
		return Result[T]{}, err
	}

	pageItems, page, err := Paginate(sorted, p.Page, p.PageSize)
	if err != nil {
		return Result[T]{}, err
	}

	return Result[T]{Items: pageItems, Page: page}, nil
}
