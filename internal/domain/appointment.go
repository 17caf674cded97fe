package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Service вид услуги барбершопа.
// Набор значений мягкий: известные услуги перечислены ниже, но принимается любая непустая строка
type Service string

const (
	ServiceCut         Service = "Corte"
	ServiceBeard       Service = "Barba"
	ServiceCutAndBeard Service = "Corte + Barba"
)

// KnownServices известные услуги в порядке показа
var KnownServices = []Service{ServiceCut, ServiceBeard, ServiceCutAndBeard}

// IsKnown true, если услуга из известного набора
func (s Service) IsKnown() bool {
	for _, known := range KnownServices {
		if s == known {
			return true
		}
	}
	return false
}

// Appointment запись клиента (турно) на дату и время сетки слотов
type Appointment struct {
	ID          string
	ClientName  string
	ClientEmail string
	Date        types.DateString
	Time        types.TimeString
	Service     Service

	// Barber присутствует только в записях старого формата
	Barber *Barber

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key ключ уникальности записи: на одну дату и время не больше одной записи
func (a *Appointment) Key() SlotKey {
	return SlotKey{Date: a.Date, Time: a.Time}
}

// SlotKey пара (дата, время)
type SlotKey struct {
	Date types.DateString
	Time types.TimeString
}

// AppointmentFilter фильтр списка записей (панель администратора)
type AppointmentFilter struct {
	Date        *types.DateString // Фильтр по дате (опционально)
	Time        *types.TimeString // Фильтр по времени (опционально)
	Service     *Service          // Фильтр по услуге (опционально)
	ClientEmail *string           // Все записи одного клиента (опционально)
}

// AppointmentStats сводка для панели администратора
type AppointmentStats struct {
	Total         int
	Upcoming      int
	UniqueClients int
	ByService     map[Service]int
	ByBarber      map[string]int
}
