package standings

import (
	"fmt"

	"github.com/Dosada05/playground-standings/models"
)

type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// pairIndex хранит один решённый матч на каждую пару команд внутри фильтра фаз.
// Строится один раз на проход ранжирования.
type pairIndex struct {
	matches map[pairKey]models.Match
}

func newPairIndex(matches []models.Match, cal Calendar, filter PhaseFilter) (*pairIndex, []Warning) {
	grouped := make(map[pairKey][]models.Match)
	order := make([]pairKey, 0)
	for _, m := range matches {
		if !decided(m) || !filter.Allows(cal.PhaseOf(m.Day)) {
			continue
		}
		key := newPairKey(m.TeamAID, m.TeamBID)
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], m)
	}

	idx := &pairIndex{matches: make(map[pairKey]models.Match, len(grouped))}
	var warnings []Warning
	for _, key := range order {
		candidates := grouped[key]
		latest := candidates[0]
		for _, m := range candidates[1:] {
			if playedAfter(m, latest) {
				latest = m
			}
		}
		idx.matches[key] = latest
		if len(candidates) > 1 {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicatePairing,
				MatchID: latest.ID,
				TeamIDs: []int{key.lo, key.hi},
				Message: fmt.Sprintf("%d decided matches between teams %d and %d in the same phase; using match %d", len(candidates), key.lo, key.hi, latest.ID),
			})
		}
	}
	return idx, warnings
}

func (p *pairIndex) lookup(a, b int) (models.Match, bool) {
	if p == nil {
		return models.Match{}, false
	}
	m, ok := p.matches[newPairKey(a, b)]
	return m, ok
}

// playedAfter упорядочивает матчи по дню, слоту и ID.
// Подписи слотов вида "HH:MM > HH:MM" с ведущими нулями сортируются как строки.
func playedAfter(a, b models.Match) bool {
	if a.Day != b.Day {
		return a.Day > b.Day
	}
	if a.TimeSlot != b.TimeSlot {
		return a.TimeSlot > b.TimeSlot
	}
	return a.ID > b.ID
}
