package slotcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/generate_slots"
)

type fakeGenerator struct {
	requests []*generate_slots.Request
	err      error
}

func (f *fakeGenerator) Execute(_ context.Context, req *generate_slots.Request) (*generate_slots.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &generate_slots.Response{Days: 14}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestJob_Run(t *testing.T) {
	gen := &fakeGenerator{}
	job, err := New("0 3 * * *", gen, nopLogger{}, 14, 30)
	require.NoError(t, err)
	job.now = func() time.Time { return time.Date(2024, 3, 11, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)) }

	job.Run()

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), req.StartDate)
	assert.Equal(t, time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC), req.EndDate)
	assert.Equal(t, 30, req.ServiceDurationMinutes)
	assert.Nil(t, req.TeamMemberID)
}

func TestJob_RunErrorDoesNotPanic(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("db down")}
	job, err := New("@hourly", gen, nopLogger{}, 7, 30)
	require.NoError(t, err)

	assert.NotPanics(t, job.Run)
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New("every day", &fakeGenerator{}, nopLogger{}, 7, 30)
	assert.Error(t, err)
}
