package reschedule_appointment

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

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type fakeUseCase struct {
	got *rescheduleAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &rescheduleAppointment.Response{Appointment: &domain.Appointment{
		ID: req.ID, Date: types.DateString(req.Date), Time: types.TimeString(req.Time), Service: domain.ServiceBeard,
	}}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/turnos/editar/{id}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/turnos/editar/a1", strings.NewReader(body)))
	return rec
}

func TestHandler_Moved(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"date":"2026-01-09","time":"11:30","service":"Barba"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", uc.got.ID)
	assert.Equal(t, "Barba", uc.got.Service)
	assert.Contains(t, rec.Body.String(), `"time":"11:30"`)
}

func TestHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "locked", err: fmt.Errorf("%w: %w", rescheduleAppointment.ErrModificationLocked,
			&availability.LockedError{Reason: "Faltan 2 horas", HoursLeft: 2}), wantStatus: http.StatusForbidden},
		{name: "taken", err: rescheduleAppointment.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "not found", err: rescheduleAppointment.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "past", err: rescheduleAppointment.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "internal", err: rescheduleAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, `{"date":"2026-01-09","time":"11:30"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
