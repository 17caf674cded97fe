package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// parseDate дата запроса, нормализованная до календарного дня
func parseDate(req *Request) (types.DateString, error) {
	if req == nil || strings.TrimSpace(req.Date) == "" {
		return "", fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	date, err := types.ParseDateString(req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	return date, nil
}
