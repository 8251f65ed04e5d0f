package memory

import (
	"slices"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/storage"
)

// table — записи одного типа с порядком вставки.
// copyFn снимает общие ссылки (map/slice) при чтении и записи.
type table[T any] struct {
	rows   map[uuid.UUID]T
	order  []uuid.UUID
	copyFn func(T) T
}

func newTable[T any](copyFn func(T) T) *table[T] {
	if copyFn == nil {
		copyFn = func(v T) T { return v }
	}
	return &table[T]{rows: make(map[uuid.UUID]T), copyFn: copyFn}
}

func (t *table[T]) clone() *table[T] {
	out := &table[T]{
		rows:   make(map[uuid.UUID]T, len(t.rows)),
		order:  slices.Clone(t.order),
		copyFn: t.copyFn,
	}
	for id, v := range t.rows {
		out.rows[id] = v
	}
	return out
}

func (t *table[T]) get(id uuid.UUID) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, storage.ErrNotFound
	}
	return t.copyFn(v), nil
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.copyFn(t.rows[id]))
	}
	return out
}

func (t *table[T]) insert(id uuid.UUID, v T) error {
	if _, ok := t.rows[id]; ok {
		return storage.ErrAlreadyExists
	}
	t.rows[id] = t.copyFn(v)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) save(id uuid.UUID, v T) error {
	if _, ok := t.rows[id]; !ok {
		return storage.ErrNotFound
	}
	t.rows[id] = t.copyFn(v)
	return nil
}
