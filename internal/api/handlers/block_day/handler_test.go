package block_day

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays"
	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeService struct {
	got *models.BlockDayRequest
	err error
}

func (f *fakeService) Block(_ context.Context, req *models.BlockDayRequest) (*models.BlockedDayResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockedDayResponse{
		ID: "b1", Date: "2026-01-05T00:00:00.000Z", BlockedTimes: req.BlockedTimes, Status: "partial",
	}, nil
}

func post(svc *fakeService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/api/dias-no-disponibles", strings.NewReader(body)))
	return rec
}

func TestHandler_Blocked(t *testing.T) {
	svc := &fakeService{}
	rec := post(svc, `{"date":"2026-01-05","blockedTimes":["10:00","10:30"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"10:00", "10:30"}, svc.got.BlockedTimes)
	assert.Contains(t, rec.Body.String(), `"status":"partial"`)
}

func TestHandler_Refusals(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "sunday", err: blockeddays.ErrSunday, wantStatus: http.StatusBadRequest},
		{name: "past", err: blockeddays.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "off grid", err: blockeddays.ErrInvalidTime, wantStatus: http.StatusBadRequest},
		{name: "occupied", err: blockeddays.ErrTimeOccupied, wantStatus: http.StatusConflict},
		{name: "concurrent", err: blockeddays.ErrConflict, wantStatus: http.StatusConflict},
		{name: "internal", err: blockeddays.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeService{err: tt.err}, `{"date":"2026-01-04","blockedTimes":[]}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
