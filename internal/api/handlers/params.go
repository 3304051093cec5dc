package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/availability"
)

// PathInt64 положительное целое из пути
func PathInt64(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// QueryDate дата YYYY-MM-DD из query, ok=false если параметр некорректен
// present=false если параметр не передан
func QueryDate(r *http.Request, name string) (date time.Time, present bool, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, false, true
	}
	date, err := availability.ParseDate(raw)
	if err != nil {
		return time.Time{}, true, false
	}
	return date, true, true
}

// QueryInt целое из query, nil если параметр не передан
func QueryInt(r *http.Request, name string) (*int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// QueryInt64 положительное целое из query, nil если параметр не передан
func QueryInt64(r *http.Request, name string) (*int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, false
	}
	return &v, true
}

// QueryBool true/false/1/0 из query, false если параметр не передан
func QueryBool(r *http.Request, name string) (bool, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	return v, err == nil
}
