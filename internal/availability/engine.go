package availability

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Engine вычисляет свободные слоты и состояние дней.
// Не хранит состояния: все данные передаются в запросе
type Engine struct {
	grid     *Grid
	location *time.Location
}

// NewEngine создает движок. location определяет "сегодня" и текущее время барбершопа
func NewEngine(grid *Grid, location *time.Location) *Engine {
	if grid == nil {
		grid = DefaultGrid()
	}
	if location == nil {
		location = time.Local
	}
	return &Engine{grid: grid, location: location}
}

// Grid сетка слотов
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Location часовой пояс барбершопа
func (e *Engine) Location() *time.Location {
	return e.location
}

// Today календарный день момента now в часовом поясе барбершопа
func (e *Engine) Today(now time.Time) types.DateString {
	return types.DateIn(now, e.location)
}

// Query входные данные для расчета свободных слотов
type Query struct {
	Date         types.DateString
	Appointments []*domain.Appointment
	BlockedDays  []*domain.BlockedDay
	Now          time.Time

	// ExcludeID запись, которую редактируют: её собственное время считается свободным
	ExcludeID string
}

// FreeSlots свободные слоты даты в порядке сетки
func (e *Engine) FreeSlots(q Query) []types.TimeString {
	free := make([]types.TimeString, 0, e.grid.Len())

	// 1. Нераспознанная дата и воскресенье
	if q.Date.Validate() != nil || q.Date.IsSunday() {
		return free
	}

	// 2. Прошедшие даты
	today := e.Today(q.Now)
	if q.Date.Before(today) {
		return free
	}

	// 3. Закрытые администратором слоты
	blocked := FindBlockedDay(q.Date, q.BlockedDays)

	// 4. Занятые записями слоты
	occupied := OccupiedTimes(q.Date, q.Appointments, q.ExcludeID)

	// 5. Прошедшее время сегодняшнего дня
	var nowTime types.TimeString
	isToday := q.Date == today
	if isToday {
		nowTime = types.NewTimeString(q.Now.In(e.location))
	}

	// 6. Сетка минус закрытые, занятые и прошедшие
	for _, slot := range e.grid.slots {
		if blocked != nil && blocked.IsBlocked(slot) {
			continue
		}
		if _, taken := occupied[slot]; taken {
			continue
		}
		if isToday && slot <= nowTime {
			continue
		}
		free = append(free, slot)
	}

	return free
}

// OccupiedTimes времена записей на дату, кроме excludeID.
// Записи с нераспознанной датой не учитываются
func OccupiedTimes(date types.DateString, appointments []*domain.Appointment, excludeID string) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{})
	for _, appt := range appointments {
		if appt == nil || appt.Date.IsZero() || appt.Date != date {
			continue
		}
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		occupied[appt.Time] = struct{}{}
	}
	return occupied
}

// FindBlockedDay единственная точка поиска закрытого дня по дате.
// Даты уже нормализованы при разборе, поэтому достаточно точного сравнения
func FindBlockedDay(date types.DateString, days []*domain.BlockedDay) *domain.BlockedDay {
	if date.IsZero() {
		return nil
	}
	for _, day := range days {
		if day != nil && !day.Date.IsZero() && day.Date == date {
			return day
		}
	}
	return nil
}

// ClassifyDay состояние дня для календаря: воскресенье, полностью закрыт, частично, открыт
func (e *Engine) ClassifyDay(date types.DateString, days []*domain.BlockedDay) domain.DayStatus {
	if date.IsSunday() {
		return domain.DayDisabled
	}

	day := FindBlockedDay(date, days)
	if day == nil || day.IsEmpty() {
		return domain.DayOpen
	}

	// Считаются только различные времена из сетки: после смены рабочего дня
	// старые закрытые времена могут оказаться вне её
	blocked := make(map[types.TimeString]struct{}, len(day.BlockedTimes))
	for _, t := range day.BlockedTimes {
		if e.grid.Contains(t) {
			blocked[t] = struct{}{}
		}
	}

	switch {
	case len(blocked) == e.grid.Len():
		return domain.DayFull
	case len(blocked) > 0:
		return domain.DayPartial
	default:
		return domain.DayOpen
	}
}

// DayInfo день месячного календаря
type DayInfo struct {
	Date         types.DateString
	Status       domain.DayStatus
	Past         bool
	BlockedTimes []types.TimeString
}

// Calendar состояние каждого дня месяца, в котором находится month
func (e *Engine) Calendar(month time.Time, days []*domain.BlockedDay, now time.Time) []DayInfo {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := e.Today(now)

	result := make([]DayInfo, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := types.DateFromTime(d)
		info := DayInfo{
			Date:   date,
			Status: e.ClassifyDay(date, days),
			Past:   date.Before(today),
		}
		if day := FindBlockedDay(date, days); day != nil {
			info.BlockedTimes = append([]types.TimeString(nil), day.BlockedTimes...)
		}
		result = append(result, info)
	}
	return result
}
