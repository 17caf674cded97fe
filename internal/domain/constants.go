package domain

import "time"

// Default configuration values
const (
	DefaultOpeningTime     = "10:00"
	DefaultClosingTime     = "20:00"
	DefaultIntervalMinutes = 30
	DefaultLeadTime        = 6 * time.Hour
	DefaultAdminSessionTTL = 8 * time.Hour
	DefaultTimezone        = "America/Argentina/Buenos_Aires"
)

// Business validation constants
const (
	MaxClientNameLength = 120
	MaxEmailLength      = 254
	MaxServiceLength    = 60
)

// DayStatus состояние дня для отображения календаря
type DayStatus string

const (
	DayOpen     DayStatus = "open"     // нет закрытых слотов
	DayPartial  DayStatus = "partial"  // закрыта часть сетки
	DayFull     DayStatus = "full"     // закрыта вся сетка
	DayDisabled DayStatus = "disabled" // воскресенье
)
