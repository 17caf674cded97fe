package models

import (
	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// BlockDayRequest закрыть время дня. Пустой список закрывает весь день
type BlockDayRequest struct {
	Date         string   `json:"date"`
	BlockedTimes []string `json:"blockedTimes"`
}

// UnblockRequest открыть одно время или, если Time не задан, весь день
type UnblockRequest struct {
	Date string  `json:"date"`
	Time *string `json:"time,omitempty"`
}

// Response модели

// BlockedDayResponse закрытый день
type BlockedDayResponse struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"` // ISO instant, полночь UTC
	BlockedTimes []string `json:"blockedTimes"`
	Status       string   `json:"status,omitempty"`
}

// CalendarDayResponse день месячного календаря
type CalendarDayResponse struct {
	Date         string   `json:"date"` // YYYY-MM-DD
	Status       string   `json:"status"`
	Past         bool     `json:"past"`
	BlockedTimes []string `json:"blockedTimes,omitempty"`
}

// CalendarResponse месячный календарь
type CalendarResponse struct {
	Month string                `json:"month"`
	Days  []CalendarDayResponse `json:"days"`
}

// Методы конвертации

// FromDomainBlockedDay конвертирует domain модель в DTO
func FromDomainBlockedDay(day *domain.BlockedDay, status domain.DayStatus) *BlockedDayResponse {
	if day == nil {
		return nil
	}

	return &BlockedDayResponse{
		ID:           day.ID,
		Date:         day.Date.ISOInstant(),
		BlockedTimes: timesToStrings(day.BlockedTimes),
		Status:       string(status),
	}
}

// FromCalendar конвертирует календарь движка
func FromCalendar(month string, days []availability.DayInfo) *CalendarResponse {
	resp := &CalendarResponse{Month: month, Days: make([]CalendarDayResponse, 0, len(days))}
	for _, d := range days {
		day := CalendarDayResponse{
			Date:   d.Date.String(),
			Status: string(d.Status),
			Past:   d.Past,
		}
		if len(d.BlockedTimes) > 0 {
			day.BlockedTimes = timesToStrings(d.BlockedTimes)
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

func timesToStrings(times []types.TimeString) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.String()
	}
	return out
}
