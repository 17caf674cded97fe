package domain

import (
	"sort"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BlockedDay дата, на которую администратор закрыл часть слотов или весь день
type BlockedDay struct {
	ID           string
	Date         types.DateString
	BlockedTimes []types.TimeString
}

// IsBlocked true, если время закрыто
func (d *BlockedDay) IsBlocked(t types.TimeString) bool {
	for _, blocked := range d.BlockedTimes {
		if blocked == t {
			return true
		}
	}
	return false
}

// IsEmpty true, если не закрыто ни одного слота
func (d *BlockedDay) IsEmpty() bool {
	return len(d.BlockedTimes) == 0
}

// Merge добавляет времена без повторов и сортирует результат
func (d *BlockedDay) Merge(times ...types.TimeString) {
	for _, t := range times {
		if !d.IsBlocked(t) {
			d.BlockedTimes = append(d.BlockedTimes, t)
		}
	}
	SortTimes(d.BlockedTimes)
}

// Remove убирает время. Возвращает false, если его не было
func (d *BlockedDay) Remove(t types.TimeString) bool {
	for i, blocked := range d.BlockedTimes {
		if blocked == t {
			d.BlockedTimes = append(d.BlockedTimes[:i], d.BlockedTimes[i+1:]...)
			return true
		}
	}
	return false
}

// SortTimes сортирует времена HH:MM по возрастанию
func SortTimes(times []types.TimeString) {
	sort.Slice(times, func(i, j int) bool {
		return times[i] < times[j]
	})
}
