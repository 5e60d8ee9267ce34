package standings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// slotSeparator соединяет начало и конец в подписи слота: "18:00 > 18:15".
const slotSeparator = " > "

// TimeGrid - сетка слотов игрового дня.
type TimeGrid struct {
	Start      string        `json:"start"`
	LastStart  string        `json:"last_start"`
	SlotLength time.Duration `json:"slot_length"`
	Break      time.Duration `json:"break"`
}

// DefaultTimeGrid: 15-minute games separated by 5-minute breaks, first game
// at 18:00, no game starting after 22:35.
func DefaultTimeGrid() TimeGrid {
	return TimeGrid{
		Start:      "18:00",
		LastStart:  "22:35",
		SlotLength: 15 * time.Minute,
		Break:      5 * time.Minute,
	}
}

// Slots generates the slot labels of one day. The round classifier matches
// these strings exactly, so both must be derived from the same grid.
func (g TimeGrid) Slots() ([]string, error) {
	start, err := parseClock(g.Start)
	if err != nil {
		return nil, fmt.Errorf("time grid start: %w", err)
	}
	last, err := parseClock(g.LastStart)
	if err != nil {
		return nil, fmt.Errorf("time grid last start: %w", err)
	}
	length := int(g.SlotLength / time.Minute)
	step := length + int(g.Break/time.Minute)
	if length <= 0 || step <= 0 {
		return nil, fmt.Errorf("time grid slot length must be at least one minute")
	}

	slots := make([]string, 0)
	for m := start; m <= last && m+length < 24*60; m += step {
		slots = append(slots, formatClock(m)+slotSeparator+formatClock(m+length))
	}
	return slots, nil
}

// SlotStart возвращает начало слота в минутах от полуночи.
func SlotStart(label string) (int, bool) {
	start, _, found := strings.Cut(label, slotSeparator)
	if !found {
		return 0, false
	}
	m, err := parseClock(start)
	if err != nil {
		return 0, false
	}
	return m, true
}

func parseClock(s string) (int, error) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, fmt.Errorf("clock %q must be HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("clock %q has an invalid hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q has an invalid minute", s)
	}
	return hour*60 + minute, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
