package availability

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ModificationState состояние записи относительно окна редактирования
type ModificationState string

const (
	StateEditable   ModificationState = "editable"   // до начала больше LeadTime
	StateLocked     ModificationState = "locked"     // осталось не больше LeadTime
	StateHistorical ModificationState = "historical" // время записи прошло
)

// Decision результат проверки окна редактирования/отмены
type Decision struct {
	Allowed   bool
	Reason    string
	HoursLeft float64 // округлено до 0.1, не меньше 0
}

// Err nil, если изменение разрешено, иначе *LockedError
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &LockedError{Reason: d.Reason, HoursLeft: d.HoursLeft}
}

// LockedError отказ в изменении записи. Reason показывается пользователю как есть
type LockedError struct {
	Reason    string
	HoursLeft float64
}

func (e *LockedError) Error() string {
	return e.Reason
}

func (e *LockedError) Unwrap() error {
	return ErrModificationLocked
}

// LockReason текст отказа из цепочки ошибок, если в ней есть *LockedError
func LockReason(err error) (string, bool) {
	var locked *LockedError
	if errors.As(err, &locked) {
		return locked.Reason, true
	}
	return "", false
}

// Policy правило редактирования и отмены: изменить запись можно,
// только если до её начала строго больше LeadTime
type Policy struct {
	LeadTime time.Duration
	Location *time.Location
}

// NewPolicy создает политику с окном leadTime в часовом поясе location
func NewPolicy(leadTime time.Duration, location *time.Location) Policy {
	if leadTime <= 0 {
		leadTime = domain.DefaultLeadTime
	}
	if location == nil {
		location = time.Local
	}
	return Policy{LeadTime: leadTime, Location: location}
}

// StartInstant момент начала записи: дата + время в часовом поясе барбершопа
func (p Policy) StartInstant(appt *domain.Appointment) (time.Time, error) {
	if appt == nil {
		return time.Time{}, fmt.Errorf("%w: no appointment", ErrInvalidDate)
	}
	if err := appt.Date.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, appt.Date)
	}
	if err := appt.Time.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotOnGrid, appt.Time)
	}

	midnight := appt.Date.Time(p.location())
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(),
		appt.Time.Hour(), appt.Time.Minute(), 0, 0, p.location()), nil
}

// HoursUntilStart часы до начала записи (отрицательные для прошедших)
func (p Policy) HoursUntilStart(appt *domain.Appointment, now time.Time) (float64, error) {
	start, err := p.StartInstant(appt)
	if err != nil {
		return 0, err
	}
	return start.Sub(now).Hours(), nil
}

// CanModify одно правило и для отмены, и для редактирования
func (p Policy) CanModify(appt *domain.Appointment, now time.Time) Decision {
	hours, err := p.HoursUntilStart(appt, now)
	if err != nil {
		return Decision{Allowed: false, Reason: "No se puede determinar el horario del turno."}
	}

	left := math.Max(0, math.Round(hours*10)/10)
	if hours > p.leadTime().Hours() {
		return Decision{Allowed: true, HoursLeft: left}
	}

	return Decision{
		Allowed:   false,
		HoursLeft: left,
		Reason: fmt.Sprintf("No se puede modificar. Debe hacerse con más de %s horas de anticipación. Faltan %s horas.",
			strconv.FormatFloat(p.leadTime().Hours(), 'f', -1, 64),
			strconv.FormatFloat(left, 'f', -1, 64)),
	}
}

// State состояние записи в момент now
func (p Policy) State(appt *domain.Appointment, now time.Time) ModificationState {
	start, err := p.StartInstant(appt)
	if err != nil {
		return StateHistorical
	}
	if !now.Before(start) {
		return StateHistorical
	}
	if start.Sub(now).Hours() > p.leadTime().Hours() {
		return StateEditable
	}
	return StateLocked
}

func (p Policy) leadTime() time.Duration {
	if p.LeadTime <= 0 {
		return domain.DefaultLeadTime
	}
	return p.LeadTime
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}
