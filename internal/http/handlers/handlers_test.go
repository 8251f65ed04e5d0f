package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

func TestPageParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := pageParams(httptest.NewRequest(http.MethodGet, "/profiles", nil))
		require.NoError(t, err)
		require.Equal(t, service.PageParams{}, p)
	})

	t.Run("all fields", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/profiles?search=dhaka&sort=age&order=DESC&page=2&page_size=5", nil)
		p, err := pageParams(r)
		require.NoError(t, err)
		require.Equal(t, service.PageParams{
			Search:   "dhaka",
			Sort:     query.Sort{Field: "age", Desc: true},
			Page:     2,
			PageSize: 5,
		}, p)
	})

	for _, target := range []string{"/x?page=two", "/x?page_size=1.5", "/x?order=up"} {
		_, err := pageParams(httptest.NewRequest(http.MethodGet, target, nil))
		require.ErrorIs(t, err, service.ErrValidation, target)
	}
}

func TestQueryID(t *testing.T) {
	id, err := queryID(httptest.NewRequest(http.MethodGet, "/matches", nil), "profile_id")
	require.NoError(t, err)
	require.Zero(t, id)

	_, err = queryID(httptest.NewRequest(http.MethodGet, "/matches?profile_id=nope", nil), "profile_id")
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestDecodeOptional(t *testing.T) {
	var in DispatchIntroductionRequest

	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(""))
	require.NoError(t, decodeOptional(r, &in))

	r = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"expected_version":3}`))
	require.NoError(t, decodeOptional(r, &in))
	require.EqualValues(t, 3, in.ExpectedVersion)

	r = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"version":3}`))
	require.Error(t, decodeOptional(r, &in))
}
