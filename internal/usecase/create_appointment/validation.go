package create_appointment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// parseRequest валидирует входные данные и приводит их к domain модели
func parseRequest(req *Request) (*domain.Appointment, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	email, err := normalizeEmail(req.ClientEmail)
	if err != nil {
		return nil, err
	}

	service := strings.TrimSpace(req.Service)
	if service == "" {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if len(service) > domain.MaxServiceLength {
		return nil, fmt.Errorf("%w: service is too long", ErrInvalidInput)
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
		ClientName:  name,
		ClientEmail: email,
		Date:        date,
		Time:        t,
		Service:     domain.Service(service),
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > domain.MaxEmailLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return strings.ToLower(addr.Address), nil
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
