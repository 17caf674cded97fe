package replace_appointment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// parseRequest валидирует входные данные. Все поля записи обязательны
func parseRequest(req *Request) (*domain.Appointment, error) {
	if req == nil || strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" || len(name) > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email == "" || len(email) > domain.MaxEmailLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	service := strings.TrimSpace(req.Service)
	if service == "" || len(service) > domain.MaxServiceLength {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	date, err := types.ParseDateString(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	t, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, req.Time)
	}

	return &domain.Appointment{
		ID:          strings.TrimSpace(req.ID),
		ClientName:  name,
		ClientEmail: strings.ToLower(email),
		Date:        date,
		Time:        t,
		Service:     domain.Service(service),
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
