package update_working_hours

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

type stubService struct {
	got *models.UpsertWorkingHoursRequest
	err error
}

func (s *stubService) UpsertWorkingHours(_ context.Context, req *models.UpsertWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.WorkingHoursResponse{DayOfWeek: req.DayOfWeek, IsWorkingDay: req.IsWorkingDay}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func do(h *Handler, day, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/working-hours/"+day, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"day": day})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_DayFromPath(t *testing.T) {
	svc := &stubService{}
	rec := do(NewHandler(svc, nopLogger{}), "0", `{"dayOfWeek":3,"isWorkingDay":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.got.DayOfWeek, "день из пути приоритетнее тела")
}

func TestHandler_InvalidDay(t *testing.T) {
	for _, day := range []string{"7", "-1", "mon"} {
		svc := &stubService{}
		rec := do(NewHandler(svc, nopLogger{}), day, `{"isWorkingDay":false}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, day)
		assert.Nil(t, svc.got)
	}
}

func TestHandler_ValidationError(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: startTime must be before endTime", schedule.ErrInvalidInput)}
	rec := do(NewHandler(svc, nopLogger{}), "1", `{"isWorkingDay":true,"startTime":"18:00","endTime":"09:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "startTime must be before endTime")
}
