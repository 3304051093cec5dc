package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: 409, Message: "слот занят"}, body)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Anna"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Anna", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Anna","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst), "неизвестные поля запрещены")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?date=2024-03-11&bad_date=11.03.2024&n=15&team=0&flag=true", nil)

	date, present, ok := QueryDate(r, "date")
	assert.True(t, present)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-11", date.Format("2006-01-02"))

	_, present, ok = QueryDate(r, "bad_date")
	assert.True(t, present)
	assert.False(t, ok)

	_, present, ok = QueryDate(r, "missing")
	assert.False(t, present)
	assert.True(t, ok)

	n, ok := QueryInt(r, "n")
	require.True(t, ok)
	assert.Equal(t, 15, *n)

	_, ok = QueryInt64(r, "team")
	assert.False(t, ok, "id должен быть положительным")

	flag, ok := QueryBool(r, "flag")
	assert.True(t, ok)
	assert.True(t, flag)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/bookings/7", nil), map[string]string{"bookingId": "7"})
	id, ok := PathInt64(r, "bookingId")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	r = mux.SetURLVars(r, map[string]string{"bookingId": "abc"})
	_, ok = PathInt64(r, "bookingId")
	assert.False(t, ok)
}
