package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// ListAppointmentsRequest фильтры списка записей (query: fecha, hora, servicio)
type ListAppointmentsRequest struct {
	Date    *string
	Time    *string
	Service *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	var filter domain.AppointmentFilter

	if r.Date != nil && *r.Date != "" {
		date, err := types.ParseDateString(*r.Date)
		if err != nil {
			return filter, fmt.Errorf("date: %w", err)
		}
		filter.Date = &date
	}

	if r.Time != nil && *r.Time != "" {
		t, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return filter, fmt.Errorf("time: %w", err)
		}
		filter.Time = &t
	}

	if r.Service != nil && strings.TrimSpace(*r.Service) != "" {
		service := domain.Service(strings.TrimSpace(*r.Service))
		filter.Service = &service
	}

	return filter, nil
}

// Response модели

// BarberResponse парикмахер в формате клиента
type BarberResponse struct {
	ID   string `json:"_id"`
	Name string `json:"nombre"`
}

// AppointmentResponse запись в формате REST API
type AppointmentResponse struct {
	ID         string          `json:"id"`
	ClientName string          `json:"clientName"`
	Mail       string          `json:"mail"`
	Date       string          `json:"date"` // ISO instant, полночь UTC
	Time       string          `json:"time"`
	Service    string          `json:"service"`
	Barber     *BarberResponse `json:"peluquero,omitempty"`
	State      string          `json:"state,omitempty"` // editable | locked | historical
	CreatedAt  string          `json:"createdAt,omitempty"`
	UpdatedAt  string          `json:"updatedAt,omitempty"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Data []AppointmentResponse `json:"data"`
}

// StatsResponse сводка для панели администратора
type StatsResponse struct {
	Total         int            `json:"total"`
	Upcoming      int            `json:"upcoming"`
	UniqueClients int            `json:"uniqueClients"`
	ByService     map[string]int `json:"byService"`
	ByBarber      map[string]int `json:"byBarber"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:         a.ID,
		ClientName: a.ClientName,
		Mail:       a.ClientEmail,
		Date:       a.Date.ISOInstant(),
		Time:       a.Time.String(),
		Service:    string(a.Service),
	}
	if a.Barber != nil {
		resp.Barber = &BarberResponse{ID: a.Barber.ID, Name: a.Barber.Name}
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !a.UpdatedAt.IsZero() {
		resp.UpdatedAt = a.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// FromDomainAppointmentWithState добавляет состояние окна изменений на момент now
func FromDomainAppointmentWithState(a *domain.Appointment, policy availability.Policy, now time.Time) *AppointmentResponse {
	resp := FromDomainAppointment(a)
	if resp != nil {
		resp.State = string(policy.State(a, now))
	}
	return resp
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment, policy availability.Policy, now time.Time) *AppointmentListResponse {
	resp := &AppointmentListResponse{Data: make([]AppointmentResponse, 0, len(list))}
	for _, a := range list {
		if a == nil {
			continue
		}
		resp.Data = append(resp.Data, *FromDomainAppointmentWithState(a, policy, now))
	}
	return resp
}

// FromDomainStats конвертирует статистику
func FromDomainStats(s *domain.AppointmentStats) *StatsResponse {
	resp := &StatsResponse{
		ByService: make(map[string]int),
		ByBarber:  make(map[string]int),
	}
	if s == nil {
		return resp
	}

	resp.Total = s.Total
	resp.Upcoming = s.Upcoming
	resp.UniqueClients = s.UniqueClients
	for service, n := range s.ByService {
		resp.ByService[string(service)] = n
	}
	for barber, n := range s.ByBarber {
		resp.ByBarber[barber] = n
	}
	return resp
}
