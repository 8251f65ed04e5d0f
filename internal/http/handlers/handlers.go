package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// decodeOptional — как decodeStrict, но пустое тело допустимо.
func decodeOptional(r *http.Request, value any) error {
	if err := decodeStrict(r, value); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// errInvalidArgument — локальная ошибка парсинга -> service.ErrValidation (400).
func errInvalidArgument() error {
	return fmt.Errorf("%w: invalid argument", service.ErrValidation)
}

// pathID разбирает UUID из параметра пути.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errInvalidArgument()
	}
	return id, nil
}

// queryID разбирает необязательный UUID из query; пусто -> uuid.Nil.
func queryID(r *http.Request, name string) (uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, errInvalidArgument()
	}
	return id, nil
}

// pageParams собирает общие параметры списка: search, sort, order, page, page_size.
func pageParams(r *http.Request) (service.PageParams, error) {
	q := r.URL.Query()

	sort, err := query.ParseSort(q.Get("sort"), q.Get("order"))
	if err != nil {
		return service.PageParams{}, errInvalidArgument()
	}

	p := service.PageParams{
		Search: q.Get("search"),
		Sort:   sort,
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.PageParams{}, errInvalidArgument()
		}
		p.Page = n
	}

	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return service.PageParams{}, errInvalidArgument()
		}
		p.PageSize = n
	}

	return p, nil
}
