package standings

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Dosada05/playground-standings/models"
)

// Round - раунд олимпийской сетки.
type Round string

const (
	RoundOf16         Round = "round_of_16"
	RoundQuarterfinal Round = "quarterfinal"
	RoundSemifinal    Round = "semifinal"
	RoundThirdPlace   Round = "third_place"
	RoundFinal        Round = "final"
	RoundOther        Round = "other"
)

var roundLabels = map[Round]string{
	RoundOf16:         "Round of 16",
	RoundQuarterfinal: "Quarterfinal",
	RoundSemifinal:    "Semifinal",
	RoundThirdPlace:   "Third place",
	RoundFinal:        "Final",
	RoundOther:        "Other",
}

func (r Round) Label() string {
	if l, ok := roundLabels[r]; ok {
		return l
	}
	return string(r)
}

var ErrInvalidBracketLayout = errors.New("invalid bracket layout")

// RoundSpec отдаёт раунду несколько подряд идущих слотов сетки.
type RoundSpec struct {
	Round           Round `json:"round"`
	Slots           int   `json:"slots"`
	ExpectedMatches int   `json:"expected_matches"`
}

// BracketLayout - раунды в порядке игры.
type BracketLayout []RoundSpec

// DefaultBracketLayout - сетка на 16 команд и два поля.
func DefaultBracketLayout() BracketLayout {
	return BracketLayout{
		{Round: RoundOf16, Slots: 4, ExpectedMatches: 8},
		{Round: RoundQuarterfinal, Slots: 2, ExpectedMatches: 4},
		{Round: RoundSemifinal, Slots: 1, ExpectedMatches: 2},
		{Round: RoundThirdPlace, Slots: 1, ExpectedMatches: 1},
		{Round: RoundFinal, Slots: 1, ExpectedMatches: 1},
	}
}

// ParseBracketLayout reads "round:slots:matches" triples, e.g.
// "quarterfinal:2:4,semifinal:1:2,final:1:1".
func ParseBracketLayout(s string) (BracketLayout, error) {
	var layout BracketLayout
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %q is not round:slots:matches", ErrInvalidBracketLayout, part)
		}
		slots, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: slots %q", ErrInvalidBracketLayout, fields[1])
		}
		expected, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: matches %q", ErrInvalidBracketLayout, fields[2])
		}
		layout = append(layout, RoundSpec{Round: Round(strings.TrimSpace(fields[0])), Slots: slots, ExpectedMatches: expected})
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

func (l BracketLayout) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: no rounds", ErrInvalidBracketLayout)
	}
	seen := make(map[Round]bool, len(l))
	for _, spec := range l {
		if _, known := roundLabels[spec.Round]; !known || spec.Round == RoundOther {
			return fmt.Errorf("%w: unknown round %q", ErrInvalidBracketLayout, spec.Round)
		}
		if seen[spec.Round] {
			return fmt.Errorf("%w: round %q declared twice", ErrInvalidBracketLayout, spec.Round)
		}
		seen[spec.Round] = true
		if spec.Slots <= 0 || spec.ExpectedMatches < 0 {
			return fmt.Errorf("%w: round %q needs positive slots and non-negative matches", ErrInvalidBracketLayout, spec.Round)
		}
	}
	return nil
}

// RoundClassifier сопоставляет слоты финального дня раундам сетки.
type RoundClassifier struct {
	layout  BracketLayout
	bySlot  map[string]Round
	byRound map[Round][]string
}

// NewRoundClassifier walks the grid in order and hands out slots to the
// layout's rounds. Slots past the last round stay unclassified.
func NewRoundClassifier(slots []string, layout BracketLayout) (*RoundClassifier, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	needed := 0
	for _, spec := range layout {
		needed += spec.Slots
	}
	if needed > len(slots) {
		return nil, fmt.Errorf("%w: layout needs %d slots, grid has %d", ErrInvalidBracketLayout, needed, len(slots))
	}

	c := &RoundClassifier{
		layout:  append(BracketLayout(nil), layout...),
		bySlot:  make(map[string]Round, needed),
		byRound: make(map[Round][]string, len(layout)),
	}
	i := 0
	for _, spec := range layout {
		for n := 0; n < spec.Slots; n++ {
			c.bySlot[slots[i]] = spec.Round
			c.byRound[spec.Round] = append(c.byRound[spec.Round], slots[i])
			i++
		}
	}
	return c, nil
}

// Classify не падает: слоты вне таблицы дают RoundOther.
func (c *RoundClassifier) Classify(slot string) Round {
	if r, ok := c.bySlot[slot]; ok {
		return r
	}
	return RoundOther
}

func (c *RoundClassifier) SlotsFor(r Round) []string {
	return append([]string(nil), c.byRound[r]...)
}

func (c *RoundClassifier) Layout() BracketLayout {
	return append(BracketLayout(nil), c.layout...)
}

// BracketRound - одна колонка сетки.
type BracketRound struct {
	Round           Round          `json:"round"`
	Label           string         `json:"label"`
	Slots           []string       `json:"slots,omitempty"`
	Matches         []models.Match `json:"matches"`
	ExpectedMatches int            `json:"expected_matches"`
	EmptySlots      int            `json:"empty_slots"`
}

type BracketView struct {
	Rounds []BracketRound `json:"rounds"`
}

// BuildView groups finals matches by round in layout order. Matches in
// unknown slots are collected in a trailing "other" round.
func (c *RoundClassifier) BuildView(matches []models.Match) BracketView {
	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TimeSlot != sorted[j].TimeSlot {
			return sorted[i].TimeSlot < sorted[j].TimeSlot
		}
		return sorted[i].Field < sorted[j].Field
	})

	byRound := make(map[Round][]models.Match)
	for _, m := range sorted {
		r := c.Classify(m.TimeSlot)
		byRound[r] = append(byRound[r], m)
	}

	view := BracketView{Rounds: make([]BracketRound, 0, len(c.layout)+1)}
	for _, spec := range c.layout {
		ms := byRound[spec.Round]
		if ms == nil {
			ms = []models.Match{}
		}
		empty := spec.ExpectedMatches - len(ms)
		if empty < 0 {
			empty = 0
		}
		view.Rounds = append(view.Rounds, BracketRound{
			Round:           spec.Round,
			Label:           spec.Round.Label(),
			Slots:           c.SlotsFor(spec.Round),
			Matches:         ms,
			ExpectedMatches: spec.ExpectedMatches,
			EmptySlots:      empty,
		})
	}
	if other := byRound[RoundOther]; len(other) > 0 {
		view.Rounds = append(view.Rounds, BracketRound{
			Round:   RoundOther,
			Label:   RoundOther.Label(),
			Matches: other,
		})
	}
	return view
}
