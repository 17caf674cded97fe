package turnosapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentInput тело создания и полной замены записи
type AppointmentInput struct {
	ClientName string  `json:"clientName"`
	Mail       string  `json:"mail"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Service    string  `json:"service"`
	BarberID   *string `json:"peluquero,omitempty"`
}

// RescheduleInput тело переноса записи клиентом
type RescheduleInput struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service,omitempty"`
}

type blockDayInput struct {
	Date         string   `json:"date"`
	BlockedTimes []string `json:"blockedTimes"`
}

type unblockInput struct {
	Date string  `json:"date"`
	Time *string `json:"time,omitempty"`
}

type loginInput struct {
	Password string `json:"password"`
}

// Session сессия администратора
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Schedule рабочий день, по которому клиент строит ту же сетку, что и сервер
type Schedule struct {
	OpeningTime     string   `json:"openingTime"`
	ClosingTime     string   `json:"closingTime"`
	IntervalMinutes int      `json:"intervalMinutes"`
	LeadTimeMinutes int      `json:"leadTimeMinutes"`
	Timezone        string   `json:"timezone"`
	Slots           []string `json:"slots"`
}

// AvailableSlots свободные слоты даты
type AvailableSlots struct {
	Date   string   `json:"date"`
	Status string   `json:"status"`
	Past   bool     `json:"past"`
	Slots  []string `json:"slots"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// appointmentDTO запись в формате сервера. Принимает и поля старого формата
// (_id, cliente, fecha, hora, servicio, peluquero)
type appointmentDTO struct {
	ID         string           `json:"id"`
	LegacyID   string           `json:"_id"`
	ClientName string           `json:"clientName"`
	Cliente    string           `json:"cliente"`
	Mail       string           `json:"mail"`
	Date       types.DateString `json:"date"`
	Fecha      types.DateString `json:"fecha"`
	Time       string           `json:"time"`
	Hora       string           `json:"hora"`
	Service    string           `json:"service"`
	Servicio   string           `json:"servicio"`
	Barber     json.RawMessage  `json:"peluquero"`
	CreatedAt  *time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time       `json:"updatedAt"`
}

type barberDTO struct {
	ID     string `json:"_id"`
	Nombre string `json:"nombre"`
}

type blockedDayDTO struct {
	ID           string           `json:"id"`
	LegacyID     string           `json:"_id"`
	Date         types.DateString `json:"date"`
	Fecha        types.DateString `json:"fecha"`
	BlockedTimes []string         `json:"blockedTimes"`
	Horarios     []string         `json:"horarios"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// decodeBarber парикмахер записи: строка с ID или объект {_id, nombre}
func decodeBarber(raw json.RawMessage) *domain.Barber {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id = strings.TrimSpace(id); id == "" {
			return nil
		}
		return &domain.Barber{ID: id}
	}

	var obj barberDTO
	if err := json.Unmarshal(raw, &obj); err != nil || (obj.ID == "" && obj.Nombre == "") {
		return nil
	}
	return &domain.Barber{ID: obj.ID, Name: obj.Nombre}
}

func (d *appointmentDTO) toDomain() *domain.Appointment {
	appt := &domain.Appointment{
		ID:          firstNonEmpty(d.ID, d.LegacyID),
		ClientName:  firstNonEmpty(d.ClientName, d.Cliente),
		ClientEmail: strings.TrimSpace(d.Mail),
		Date:        d.Date,
		Service:     domain.Service(firstNonEmpty(d.Service, d.Servicio)),
		Barber:      decodeBarber(d.Barber),
	}
	if appt.Date.IsZero() {
		appt.Date = d.Fecha
	}
	// Нераспознанное время оставляет нулевое значение: такая запись не занимает слот
	if t, err := types.NewTimeStringFromString(firstNonEmpty(d.Time, d.Hora)); err == nil {
		appt.Time = t
	}
	if d.CreatedAt != nil {
		appt.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		appt.UpdatedAt = *d.UpdatedAt
	}
	return appt
}

func (d *blockedDayDTO) toDomain() *domain.BlockedDay {
	day := &domain.BlockedDay{
		ID:   firstNonEmpty(d.ID, d.LegacyID),
		Date: d.Date,
	}
	if day.Date.IsZero() {
		day.Date = d.Fecha
	}

	raw := d.BlockedTimes
	if len(raw) == 0 {
		raw = d.Horarios
	}
	times := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		if t, err := types.NewTimeStringFromString(s); err == nil {
			times = append(times, t)
		}
	}
	day.Merge(times...)
	return day
}

// decodeAppointmentList список записей: {data: [...]} или массив
func decodeAppointmentList(body []byte) ([]*domain.Appointment, error) {
	var dtos []appointmentDTO

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Data []appointmentDTO `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		dtos = wrapped.Data
	}

	list := make([]*domain.Appointment, 0, len(dtos))
	for i := range dtos {
		list = append(list, dtos[i].toDomain())
	}
	return list, nil
}
