package replace_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var buenosAires = time.FixedZone("ART", -3*3600)

type fakeAppointments struct {
	items map[string]*domain.Appointment
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
	cp := *appt
	f.items[appt.ID] = &cp
	return nil
}

type fakeBlocked struct{}

func (fakeBlocked) GetByDate(context.Context, types.DateString) (*domain.BlockedDay, error) {
	return nil, blockedDayRepo.ErrBlockedDayNotFound
}

type fakeBarbers struct{}

func (fakeBarbers) GetByID(_ context.Context, id string) (*domain.Barber, error) {
	if id == "p2" {
		return &domain.Barber{ID: "p2", Name: "Mateo"}, nil
	}
	return nil, barberRepo.ErrBarberNotFound
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

type fakeMetrics struct{ conflicts []string }

func (m *fakeMetrics) BookingConflict(op string) { m.conflicts = append(m.conflicts, op) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func setup(now time.Time) (*UseCase, *fakeAppointments, *fakeMetrics) {
	appts := &fakeAppointments{items: map[string]*domain.Appointment{
		"a1": {ID: "a1", ClientName: "Juan", ClientEmail: "juan@mail.com", Date: "2026-01-08", Time: "16:00",
			Service: domain.ServiceCut, Barber: &domain.Barber{ID: "p1", Name: "Carlos"}},
		"a2": {ID: "a2", ClientName: "Ana", ClientEmail: "ana@mail.com", Date: "2026-01-08", Time: "17:00",
			Service: domain.ServiceBeard},
	}}
	m := &fakeMetrics{}
	uc := NewUseCase(appts, fakeBlocked{}, fakeBarbers{}, fakeSchedule{}, fakeTx{}, m, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, appts, m
}

func request() *Request {
	return &Request{
		ID: "a1", ClientName: "Juan Pablo", ClientEmail: "JP@mail.com",
		Date: "2026-01-08", Time: "16:00", Service: "Corte + Barba",
	}
}

func TestUseCase_Execute_IgnoresModificationWindow(t *testing.T) {
	// за час до записи клиент уже не может её менять, администратор может
	uc, appts, _ := setup(time.Date(2026, 1, 8, 15, 0, 0, 0, buenosAires))

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, "Juan Pablo", resp.Appointment.ClientName)
	assert.Equal(t, "jp@mail.com", appts.items["a1"].ClientEmail)
	assert.Equal(t, "Carlos", appts.items["a1"].Barber.Name, "barber is kept when not sent")
}

func TestUseCase_Execute_Barber(t *testing.T) {
	uc, appts, _ := setup(time.Date(2026, 1, 1, 9, 0, 0, 0, buenosAires))

	req := request()
	other := "p2"
	req.BarberID = &other
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Mateo", appts.items["a1"].Barber.Name)

	none := ""
	req.BarberID = &none
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, appts.items["a1"].Barber)

	unknown := "p9"
	req.BarberID = &unknown
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrBarberNotFound)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	uc, appts, m := setup(time.Date(2026, 1, 1, 9, 0, 0, 0, buenosAires))

	req := request()
	req.Time = "17:00"
	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, types.TimeString("16:00"), appts.items["a1"].Time)
	assert.Equal(t, []string{"replace"}, m.conflicts)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "unknown id", mutate: func(r *Request) { r.ID = "zz" }, wantErr: ErrAppointmentNotFound},
		{name: "missing name", mutate: func(r *Request) { r.ClientName = "" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.ClientEmail = "jp" }, wantErr: ErrInvalidEmail},
		{name: "missing service", mutate: func(r *Request) { r.Service = " " }, wantErr: ErrInvalidInput},
		{name: "sunday", mutate: func(r *Request) { r.Date = "2026-01-11" }, wantErr: ErrSunday},
		{name: "off grid", mutate: func(r *Request) { r.Time = "20:00" }, wantErr: ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := setup(time.Date(2026, 1, 1, 9, 0, 0, 0, buenosAires))
			req := request()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
