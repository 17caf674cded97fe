package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UpdateScheduleRequest запрос на изменение расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateScheduleRequest struct {
	OpeningTime     *string `json:"openingTime,omitempty"`
	ClosingTime     *string `json:"closingTime,omitempty"`
	IntervalMinutes *int    `json:"intervalMinutes,omitempty"`
	LeadTimeMinutes *int    `json:"leadTimeMinutes,omitempty"`
}

// IsEmpty true, если не передано ни одного поля
func (r *UpdateScheduleRequest) IsEmpty() bool {
	return r.OpeningTime == nil && r.ClosingTime == nil && r.IntervalMinutes == nil && r.LeadTimeMinutes == nil
}

// ApplyToConfig применяет изменения к конфигурации
func (r *UpdateScheduleRequest) ApplyToConfig(cfg *domain.ScheduleConfig) error {
	if r.OpeningTime != nil {
		t, err := types.NewTimeStringFromString(*r.OpeningTime)
		if err != nil {
			return err
		}
		cfg.OpeningTime = t
	}
	if r.ClosingTime != nil {
		t, err := types.NewTimeStringFromString(*r.ClosingTime)
		if err != nil {
			return err
		}
		cfg.ClosingTime = t
	}
	if r.IntervalMinutes != nil {
		cfg.IntervalMinutes = *r.IntervalMinutes
	}
	if r.LeadTimeMinutes != nil {
		cfg.LeadTimeMinutes = *r.LeadTimeMinutes
	}
	return nil
}

// ScheduleResponse расписание и полученная из него сетка слотов
type ScheduleResponse struct {
	OpeningTime     string   `json:"openingTime"`
	ClosingTime     string   `json:"closingTime"`
	IntervalMinutes int      `json:"intervalMinutes"`
	LeadTimeMinutes int      `json:"leadTimeMinutes"`
	Timezone        string   `json:"timezone"`
	Slots           []string `json:"slots"`
	UpdatedAt       *string  `json:"updatedAt,omitempty"`
}

// FromDomainSchedule конвертирует расписание и его сетку в DTO
func FromDomainSchedule(cfg *domain.ScheduleConfig, grid *availability.Grid, loc *time.Location) *ScheduleResponse {
	if cfg == nil {
		return nil
	}

	resp := &ScheduleResponse{
		OpeningTime:     cfg.OpeningTime.String(),
		ClosingTime:     cfg.ClosingTime.String(),
		IntervalMinutes: cfg.IntervalMinutes,
		LeadTimeMinutes: cfg.LeadTimeMinutes,
		Slots:           make([]string, 0),
	}
	if loc != nil {
		resp.Timezone = loc.String()
	}
	if grid != nil {
		for _, slot := range grid.Slots() {
			resp.Slots = append(resp.Slots, slot.String())
		}
	}
	if !cfg.UpdatedAt.IsZero() {
		updated := cfg.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}
