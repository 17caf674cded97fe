package reschedule_appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// parseRequest валидирует входные данные запроса
func parseRequest(req *Request) (*parsedRequest, error) {
	if req == nil || strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	date, err := types.ParseDateString(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	t, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, req.Time)
	}

	service := strings.TrimSpace(req.Service)
	if len(service) > domain.MaxServiceLength {
		return nil, fmt.Errorf("%w: service is too long", ErrInvalidInput)
	}

	return &parsedRequest{
		id:      strings.TrimSpace(req.ID),
		date:    date,
		time:    t,
		service: domain.Service(service),
	}, nil
}

// mapSlotError переводит отказ проверки слота в ошибки use case
func mapSlotError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, availability.ErrSunday):
		return ErrSunday
	case errors.Is(err, availability.ErrPastDate):
		return ErrPastDate
	case errors.Is(err, availability.ErrInvalidDate):
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	case errors.Is(err, availability.ErrSlotTaken):
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	default:
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	}
}
