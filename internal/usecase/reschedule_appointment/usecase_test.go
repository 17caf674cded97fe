package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var buenosAires = time.FixedZone("ART", -3*3600)

type fakeAppointments struct {
	items   map[string]*domain.Appointment
	updates int
}

func newFakeAppointments(items ...*domain.Appointment) *fakeAppointments {
	f := &fakeAppointments{items: make(map[string]*domain.Appointment)}
	for _, a := range items {
		f.items[a.ID] = a
	}
	return f
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if filter.Date == nil || a.Date == *filter.Date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Update(_ context.Context, appt *domain.Appointment) error {
	for _, a := range f.items {
		if a.ID != appt.ID && a.Date == appt.Date && a.Time == appt.Time {
			return appointmentRepo.ErrSlotTaken
		}
	}
	f.updates++
	cp := *appt
	f.items[appt.ID] = &cp
	return nil
}

type fakeBlocked struct{}

func (fakeBlocked) GetByDate(_ context.Context, date types.DateString) (*domain.BlockedDay, error) {
	if date == "2026-01-12" {
		return &domain.BlockedDay{ID: "b1", Date: date, BlockedTimes: []types.TimeString{"12:00"}}, nil
	}
	return nil, blockedDayRepo.ErrBlockedDayNotFound
}

type fakeSchedule struct{}

func (fakeSchedule) Current(context.Context) (*availability.Engine, availability.Policy, error) {
	return availability.NewEngine(availability.DefaultGrid(), buenosAires),
		availability.NewPolicy(domain.DefaultLeadTime, buenosAires), nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	conflicts []string
	refusals  []string
}

func (m *fakeMetrics) BookingConflict(op string) { m.conflicts = append(m.conflicts, op) }
func (m *fakeMetrics) PolicyRefusal(op string)   { m.refusals = append(m.refusals, op) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(appts *fakeAppointments, now time.Time) (*UseCase, *fakeMetrics) {
	m := &fakeMetrics{}
	uc := NewUseCase(appts, fakeBlocked{}, fakeSchedule{}, fakeTx{}, m, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, m
}

func existing() *fakeAppointments {
	return newFakeAppointments(
		&domain.Appointment{ID: "a1", ClientName: "Juan", ClientEmail: "juan@mail.com", Date: "2026-01-08", Time: "16:00", Service: domain.ServiceCut},
		&domain.Appointment{ID: "a2", ClientName: "Ana", ClientEmail: "ana@mail.com", Date: "2026-01-09", Time: "11:00", Service: domain.ServiceBeard},
	)
}

func TestUseCase_Execute_Moves(t *testing.T) {
	appts := existing()
	uc, _ := newUseCase(appts, time.Date(2026, 1, 7, 12, 0, 0, 0, buenosAires))

	resp, err := uc.Execute(context.Background(), &Request{
		ID: "a1", Date: "2026-01-09T00:00:00.000Z", Time: "11:30", Service: "Corte + Barba",
	})
	require.NoError(t, err)

	assert.Equal(t, types.DateString("2026-01-09"), resp.Appointment.Date)
	assert.Equal(t, types.TimeString("11:30"), resp.Appointment.Time)
	assert.Equal(t, domain.ServiceCutAndBeard, resp.Appointment.Service)
	assert.Equal(t, "juan@mail.com", appts.items["a1"].ClientEmail)
}

func TestUseCase_Execute_SameSlotOnlyChangesService(t *testing.T) {
	appts := existing()
	uc, _ := newUseCase(appts, time.Date(2026, 1, 7, 12, 0, 0, 0, buenosAires))

	resp, err := uc.Execute(context.Background(), &Request{ID: "a1", Date: "2026-01-08", Time: "16:00", Service: "Barba"})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceBeard, resp.Appointment.Service)
}

func TestUseCase_Execute_InsideWindow(t *testing.T) {
	appts := existing()
	// 16:00 - 6h = 10:00; at 10:00 the edit is refused
	uc, m := newUseCase(appts, time.Date(2026, 1, 8, 10, 0, 0, 0, buenosAires))

	_, err := uc.Execute(context.Background(), &Request{ID: "a1", Date: "2026-01-10", Time: "12:00"})

	require.ErrorIs(t, err, ErrModificationLocked)
	reason, ok := availability.LockReason(err)
	require.True(t, ok)
	assert.Contains(t, reason, "Faltan 6 horas")
	assert.Equal(t, []string{"reschedule"}, m.refusals)
	assert.Zero(t, appts.updates)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	appts := existing()
	uc, m := newUseCase(appts, time.Date(2026, 1, 7, 12, 0, 0, 0, buenosAires))

	_, err := uc.Execute(context.Background(), &Request{ID: "a1", Date: "2026-01-09", Time: "11:00"})

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, []string{"reschedule"}, m.conflicts)
	assert.Equal(t, types.TimeString("16:00"), appts.items["a1"].Time)
}

func TestUseCase_Execute_Refusals(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "missing id", req: &Request{Date: "2026-01-09", Time: "11:30"}, wantErr: ErrInvalidInput},
		{name: "unknown id", req: &Request{ID: "zz", Date: "2026-01-09", Time: "11:30"}, wantErr: ErrAppointmentNotFound},
		{name: "bad date", req: &Request{ID: "a1", Date: "09/01/2026", Time: "11:30"}, wantErr: ErrInvalidDate},
		{name: "bad time", req: &Request{ID: "a1", Date: "2026-01-09", Time: "1130"}, wantErr: ErrInvalidTime},
		{name: "sunday", req: &Request{ID: "a1", Date: "2026-01-11", Time: "11:30"}, wantErr: ErrSunday},
		{name: "past", req: &Request{ID: "a1", Date: "2026-01-06", Time: "11:30"}, wantErr: ErrPastDate},
		{name: "blocked", req: &Request{ID: "a1", Date: "2026-01-12", Time: "12:00"}, wantErr: ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts := existing()
			uc, _ := newUseCase(appts, time.Date(2026, 1, 7, 12, 0, 0, 0, buenosAires))

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, appts.updates)
		})
	}
}
