package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var buenosAires = time.FixedZone("ART", -3*3600)

type fakeAppointments struct {
	items []*domain.Appointment
	err   error
	calls int
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if filter.Date == nil || a.Date == *filter.Date {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeBlocked struct{ days map[types.DateString]*domain.BlockedDay }

func (f *fakeBlocked) GetByDate(_ context.Context, date types.DateString) (*domain.BlockedDay, error) {
	if d, ok := f.days[date]; ok {
		return d, nil
	}
	return nil, blockedDayRepo.ErrBlockedDayNotFound
}

type fakeSchedule struct{}

func (fakeSchedule) Current(context.Context) (*availability.Engine, availability.Policy, error) {
	return availability.NewEngine(availability.DefaultGrid(), buenosAires),
		availability.NewPolicy(domain.DefaultLeadTime, buenosAires), nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(appts *fakeAppointments, now time.Time) *UseCase {
	blocked := &fakeBlocked{days: map[types.DateString]*domain.BlockedDay{
		"2026-01-05": {ID: "b1", Date: "2026-01-05", BlockedTimes: []types.TimeString{"10:00", "10:30"}},
	}}
	uc := NewUseCase(appts, blocked, fakeSchedule{}, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

var newYear = time.Date(2026, 1, 1, 12, 0, 0, 0, buenosAires)

func TestUseCase_Execute_ExcludesBlockedAndTaken(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{
		{ID: "a1", Date: "2026-01-05", Time: "14:00"},
		{ID: "a2", Date: "2026-01-06", Time: "15:00"},
	}}
	uc := newUseCase(appts, newYear)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-01-05T00:00:00.000Z"})
	require.NoError(t, err)

	assert.Equal(t, types.DateString("2026-01-05"), resp.Date)
	assert.Equal(t, domain.DayPartial, resp.Status)
	assert.False(t, resp.Past)
	assert.Len(t, resp.Slots, 17)
	for _, excluded := range []types.TimeString{"10:00", "10:30", "14:00"} {
		assert.NotContains(t, resp.Slots, excluded)
	}
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[0])
	assert.Contains(t, resp.Slots, types.TimeString("15:00"))
}

func TestUseCase_Execute_ExcludeOwnAppointment(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{{ID: "a1", Date: "2026-01-05", Time: "14:00"}}}
	uc := newUseCase(appts, newYear)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-01-05", ExcludeID: "a1"})
	require.NoError(t, err)
	assert.Contains(t, resp.Slots, types.TimeString("14:00"))
	assert.Len(t, resp.Slots, 18)
}

func TestUseCase_Execute_SundayAndPast(t *testing.T) {
	appts := &fakeAppointments{}
	uc := newUseCase(appts, newYear)

	sunday, err := uc.Execute(context.Background(), &Request{Date: "2026-01-04"})
	require.NoError(t, err)
	assert.Equal(t, domain.DayDisabled, sunday.Status)
	assert.Empty(t, sunday.Slots)

	past, err := uc.Execute(context.Background(), &Request{Date: "2025-12-30"})
	require.NoError(t, err)
	assert.True(t, past.Past)
	assert.Empty(t, past.Slots)

	assert.Zero(t, appts.calls, "repository is not queried for closed dates")
}

func TestUseCase_Execute_TodayDropsElapsed(t *testing.T) {
	uc := newUseCase(&fakeAppointments{}, time.Date(2026, 1, 7, 18, 10, 0, 0, buenosAires))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-01-07"})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"18:30", "19:00", "19:30"}, resp.Slots)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(&fakeAppointments{}, newYear)

	_, err := uc.Execute(context.Background(), &Request{Date: ""})
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Date: "05/01/2026"})
	require.ErrorIs(t, err, ErrInvalidDate)

	failing := newUseCase(&fakeAppointments{err: errors.New("db down")}, newYear)
	_, err = failing.Execute(context.Background(), &Request{Date: "2026-01-05"})
	require.ErrorIs(t, err, ErrInternal)
}
