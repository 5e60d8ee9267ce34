package standings

import (
	"sort"

	"github.com/Dosada05/playground-standings/models"
)

// rank сортирует по проценту побед и запускает тай-брейк по личным встречам на
// каждой максимальной серии равных процентов. Остальные записи остаются на месте.
// Входной срез не меняется.
func rank(standings []TeamStanding, idx *pairIndex) []TeamStanding {
	out := make([]TeamStanding, len(standings))
	copy(out, standings)
	for i := range out {
		out[i].HeadToHeadPoints = 0
		out[i].HeadToHeadGames = 0
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].WinPercentage > out[b].WinPercentage
	})

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && out[end].WinPercentage == out[start].WinPercentage {
			end++
		}
		if end-start > 1 {
			copy(out[start:end], resolveTiebreak(out[start:end], idx))
		}
		start = end
	}
	return out
}

func rankGroup(standings []TeamStanding, idx *pairIndex) []TeamStanding {
	ranked := rank(standings, idx)
	for i := range ranked {
		ranked[i].GroupPosition = i + 1
	}
	return ranked
}

// RankGroup ranks one group's standings using the decided matches of the given
// phase filter for head-to-head lookups, and assigns group positions 1..n.
func RankGroup(standings []TeamStanding, matches []models.Match, cal Calendar, filter PhaseFilter) ([]TeamStanding, []Warning) {
	idx, warnings := newPairIndex(matches, cal, filter)
	return rankGroup(standings, idx), warnings
}
