package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate возвращается, когда строку не удалось привести к календарной дате
var ErrInvalidDate = errors.New("invalid date")

// DateLayout формат нормализованной даты
const DateLayout = "2006-01-02"

// InstantLayout формат, в котором дата передается по API: полночь UTC с миллисекундами
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

// DateString календарный день "YYYY-MM-DD", не зависящий от часового пояса.
// Нулевое значение означает "дата отсутствует или не распознана" и не равно ни одному дню.
type DateString string

// ParseDateString нормализует дату из любого поддерживаемого представления:
//   - "2026-01-08"
//   - ISO-8601 момент "2026-01-08T00:00:00.000Z" или с offset: берутся UTC-поля
//   - "2026-01-08T10:00:00" без зоны: берётся дата, время только проверяется
func ParseDateString(s string) (DateString, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidDate
	}

	if len(s) == len(DateLayout) {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return DateFromTime(t), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateFromTime(t), nil
	}

	// Без зоны время должно быть корректным, от него берётся только дата
	for _, layout := range zonelessLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateFromTime(t), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// zonelessLayouts дата со временем без зоны. Дробные секунды time.Parse принимает сам
var zonelessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// DateFromTime календарный день по UTC-полям момента
func DateFromTime(t time.Time) DateString {
	return DateString(t.UTC().Format(DateLayout))
}

// DateIn календарный день момента в указанной локации (например, "сегодня" для барбершопа)
func DateIn(t time.Time, loc *time.Location) DateString {
	if loc == nil {
		loc = time.UTC
	}
	return DateString(t.In(loc).Format(DateLayout))
}

// String возвращает строковое представление
func (d DateString) String() string {
	return string(d)
}

// IsZero true, если дата отсутствует
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет, что дата нормализована
func (d DateString) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return nil
}

// Time полночь этого дня в указанной локации
func (d DateString) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Instant полночь этого дня по UTC, в таком виде дата хранится и передаётся
func (d DateString) Instant() time.Time {
	return d.Time(time.UTC)
}

// ISOInstant дата как момент "2026-01-08T00:00:00.000Z", пустая строка для нулевой даты
func (d DateString) ISOInstant() string {
	if d.Validate() != nil {
		return ""
	}
	return d.Instant().Format(InstantLayout)
}

// Weekday день недели календарной даты
func (d DateString) Weekday() time.Weekday {
	return d.Instant().Weekday()
}

// IsSunday true для воскресенья
func (d DateString) IsSunday() bool {
	return !d.IsZero() && d.Weekday() == time.Sunday
}

// AddDays сдвигает дату на n дней
func (d DateString) AddDays(n int) DateString {
	return DateFromTime(d.Instant().AddDate(0, 0, n))
}

// Before строго раньше. Для нормализованных дат достаточно сравнения строк
func (d DateString) Before(other DateString) bool {
	return d < other
}

// After строго позже
func (d DateString) After(other DateString) bool {
	return d > other
}

// CompareDates сравнение для сортировки: нераспознанные даты уходят в конец
func CompareDates(a, b DateString) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// UnmarshalJSON нормализует дату. Нераспознанное значение даёт нулевую дату, а не ошибку:
// такую запись вызывающий код исключает из рассмотрения
func (d *DateString) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*d = ""
		return nil
	}
	parsed, err := ParseDateString(*raw)
	if err != nil {
		*d = ""
		return nil
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}

// Scan реализует sql.Scanner. lib/pq отдаёт DATE как time.Time в UTC
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = DateFromTime(v)
		return nil
	case string:
		parsed, err := ParseDateString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, src)
	}
}
