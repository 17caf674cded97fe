package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// GenerateSlots сетка времени [start, end) с шагом intervalMinutes.
// При end <= start сетка пустая
func GenerateSlots(start, end types.TimeString, intervalMinutes int) ([]types.TimeString, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidBounds, start)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidBounds, end)
	}

	slots := make([]types.TimeString, 0)
	for current := start; current < end; {
		slots = append(slots, current)

		next, err := current.AddMinutes(intervalMinutes)
		if errors.Is(err, types.ErrTimeOverflow) {
			break
		}
		if err != nil {
			return nil, err
		}
		current = next
	}

	return slots, nil
}

// Grid неизменяемая сетка слотов рабочего дня
type Grid struct {
	start    types.TimeString
	end      types.TimeString
	interval int
	slots    []types.TimeString
	index    map[types.TimeString]int
}

// NewGrid строит сетку по времени открытия, закрытия и интервалу
func NewGrid(start, end types.TimeString, intervalMinutes int) (*Grid, error) {
	slots, err := GenerateSlots(start, end, intervalMinutes)
	if err != nil {
		return nil, err
	}

	index := make(map[types.TimeString]int, len(slots))
	for i, slot := range slots {
		index[slot] = i
	}

	return &Grid{
		start:    start,
		end:      end,
		interval: intervalMinutes,
		slots:    slots,
		index:    index,
	}, nil
}

// DefaultGrid 10:00-20:00 каждые 30 минут
func DefaultGrid() *Grid {
	grid, err := NewGrid(domain.DefaultOpeningTime, domain.DefaultClosingTime, domain.DefaultIntervalMinutes)
	if err != nil {
		panic(err)
	}
	return grid
}

// Slots копия последовательности слотов
func (g *Grid) Slots() []types.TimeString {
	out := make([]types.TimeString, len(g.slots))
	copy(out, g.slots)
	return out
}

// Len количество слотов
func (g *Grid) Len() int {
	return len(g.slots)
}

// Contains true, если время входит в сетку
func (g *Grid) Contains(t types.TimeString) bool {
	_, ok := g.index[t]
	return ok
}

// Start время открытия
func (g *Grid) Start() types.TimeString { return g.start }

// End время закрытия (не входит в сетку)
func (g *Grid) End() types.TimeString { return g.end }

// Interval шаг сетки в минутах
func (g *Grid) Interval() int { return g.interval }
