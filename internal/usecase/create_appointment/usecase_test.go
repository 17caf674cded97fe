package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
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
	items     []*domain.Appointment
	createErr error
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

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, a := range f.items {
		if a.Date == appt.Date && a.Time == appt.Time {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}
	appt.ID = "new-id"
	f.items = append(f.items, appt)
	return appt, nil
}

type fakeBlocked struct{ days map[types.DateString]*domain.BlockedDay }

func (f *fakeBlocked) GetByDate(_ context.Context, date types.DateString) (*domain.BlockedDay, error) {
	if d, ok := f.days[date]; ok {
		return d, nil
	}
	return nil, blockedDayRepo.ErrBlockedDayNotFound
}

type fakeBarbers struct{}

func (fakeBarbers) GetByID(_ context.Context, id string) (*domain.Barber, error) {
	if id == "p1" {
		return &domain.Barber{ID: "p1", Name: "Carlos"}, nil
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

type fakeMetrics struct {
	created   []string
	conflicts []string
}

func (m *fakeMetrics) AppointmentCreated(s string) { m.created = append(m.created, s) }
func (m *fakeMetrics) BookingConflict(op string)   { m.conflicts = append(m.conflicts, op) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(appts *fakeAppointments, now time.Time) (*UseCase, *fakeMetrics) {
	blocked := &fakeBlocked{days: map[types.DateString]*domain.BlockedDay{
		"2026-01-05": {ID: "b1", Date: "2026-01-05", BlockedTimes: []types.TimeString{"10:00", "10:30"}},
	}}
	m := &fakeMetrics{}
	uc := NewUseCase(appts, blocked, fakeBarbers{}, fakeSchedule{}, fakeTx{}, m, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, m
}

func validRequest() *Request {
	return &Request{
		ClientName:  " Juan Pérez ",
		ClientEmail: "Juan@Mail.com",
		Date:        "2026-01-05T00:00:00.000Z",
		Time:        "14:00",
		Service:     "Corte",
	}
}

var newYear = time.Date(2026, 1, 1, 12, 0, 0, 0, buenosAires)

func TestUseCase_Execute_Success(t *testing.T) {
	appts := &fakeAppointments{}
	uc, m := newUseCase(appts, newYear)

	req := validRequest()
	barber := "p1"
	req.BarberID = &barber

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	appt := resp.Appointment
	assert.Equal(t, "new-id", appt.ID)
	assert.Equal(t, "Juan Pérez", appt.ClientName)
	assert.Equal(t, "juan@mail.com", appt.ClientEmail)
	assert.Equal(t, types.DateString("2026-01-05"), appt.Date)
	assert.Equal(t, "Carlos", appt.Barber.DisplayName())
	assert.Equal(t, []string{"Corte"}, m.created)
}

func TestUseCase_Execute_ConflictLeavesStoreUnchanged(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{{ID: "a1", Date: "2026-01-05", Time: "14:00"}}}
	uc, m := newUseCase(appts, newYear)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, appts.items, 1)
	assert.Equal(t, []string{"create"}, m.conflicts)
	assert.Empty(t, m.created)
}

func TestUseCase_Execute_UniqueIndexConflict(t *testing.T) {
	// Параллельная вставка прошла проверку раньше: срабатывает уникальный индекс
	appts := &fakeAppointments{createErr: appointmentRepo.ErrSlotTaken}
	uc, m := newUseCase(appts, newYear)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, []string{"create"}, m.conflicts)
}

func TestUseCase_Execute_SerializationFailureIsConflict(t *testing.T) {
	appts := &fakeAppointments{createErr: &pq.Error{Code: "40001"}}
	uc, _ := newUseCase(appts, newYear)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		now     time.Time
		wantErr error
	}{
		{name: "empty name", mutate: func(r *Request) { r.ClientName = "  " }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.ClientEmail = "juan-at-mail" }, wantErr: ErrInvalidEmail},
		{name: "display name email", mutate: func(r *Request) { r.ClientEmail = "Juan <juan@mail.com>" }, wantErr: ErrInvalidEmail},
		{name: "empty service", mutate: func(r *Request) { r.Service = "" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *Request) { r.Date = "mañana" }, wantErr: ErrInvalidDate},
		{name: "bad time", mutate: func(r *Request) { r.Time = "2pm" }, wantErr: ErrInvalidTime},
		{name: "sunday", mutate: func(r *Request) { r.Date = "2026-01-04" }, wantErr: ErrSunday},
		{name: "past date", mutate: func(r *Request) { r.Date = "2025-12-31" }, wantErr: ErrPastDate},
		{name: "off grid", mutate: func(r *Request) { r.Time = "14:15" }, wantErr: ErrSlotUnavailable},
		{name: "blocked", mutate: func(r *Request) { r.Time = "10:30" }, wantErr: ErrSlotUnavailable},
		{
			name:    "elapsed today",
			mutate:  func(r *Request) { r.Time = "11:00" },
			now:     time.Date(2026, 1, 5, 11, 0, 0, 0, buenosAires),
			wantErr: ErrSlotUnavailable,
		},
		{name: "unknown barber", mutate: func(r *Request) { id := "p9"; r.BarberID = &id }, wantErr: ErrBarberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = newYear
			}
			appts := &fakeAppointments{}
			uc, _ := newUseCase(appts, now)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, appts.items)
		})
	}
}
