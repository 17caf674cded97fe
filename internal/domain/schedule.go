package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// ScheduleConfig рабочий день барбершопа: из него строится сетка слотов и окно изменений.
// Хранится одной строкой, при её отсутствии используются значения из config.toml
type ScheduleConfig struct {
	OpeningTime     types.TimeString
	ClosingTime     types.TimeString
	IntervalMinutes int
	LeadTimeMinutes int
	UpdatedAt       time.Time
}

// LeadTime окно до начала записи, внутри которого её нельзя изменить или отменить
func (c *ScheduleConfig) LeadTime() time.Duration {
	return time.Duration(c.LeadTimeMinutes) * time.Minute
}

// Schedule validation constants
const (
	MinIntervalMinutes = 5
	MaxIntervalMinutes = 240
	MaxLeadTimeMinutes = 7 * 24 * 60
)
