package store

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Snapshot неизменяемый снимок данных сервера. Новый снимок заменяет старый целиком
type Snapshot struct {
	Appointments []*domain.Appointment // по дате, затем по времени; записи без даты в конце
	BlockedDays  []*domain.BlockedDay
	Engine       *availability.Engine
	Policy       availability.Policy
	FetchedAt    time.Time
}

// Appointment запись по ID
func (s *Snapshot) Appointment(id string) (*domain.Appointment, bool) {
	for _, a := range s.Appointments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// ByDate записи даты в порядке времени
func (s *Snapshot) ByDate(date types.DateString) []*domain.Appointment {
	out := make([]*domain.Appointment, 0)
	for _, a := range s.Appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

func (s *Snapshot) query(date types.DateString, excludeID string, now time.Time) availability.Query {
	return availability.Query{
		Date:         date,
		Appointments: s.Appointments,
		BlockedDays:  s.BlockedDays,
		Now:          now,
		ExcludeID:    excludeID,
	}
}

func sortAppointments(list []*domain.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Date.IsZero() != b.Date.IsZero() {
			return b.Date.IsZero()
		}
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.Time < b.Time
	})
}
