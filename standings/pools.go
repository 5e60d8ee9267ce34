package standings

import "github.com/Dosada05/playground-standings/models"

// GroupTable - ранжированная таблица одной группы.
type GroupTable struct {
	Group     models.Group   `json:"group"`
	Standings []TeamStanding `json:"standings"`
}

// Pool - команды, занявшие одно и то же место во всех группах, ранжированные между собой.
type Pool struct {
	Position  int            `json:"position"`
	Standings []TeamStanding `json:"standings"`
}

// buildPools собирает n-е места всех групп в пул n и ранжирует каждый пул заново.
// Личные встречи берутся из индекса группового этапа, поэтому команды, которые
// не встречались, сразу сравниваются по разнице очков.
func buildPools(tables []GroupTable, idx *pairIndex) []Pool {
	maxSize := 0
	for _, t := range tables {
		if len(t.Standings) > maxSize {
			maxSize = len(t.Standings)
		}
	}

	pools := make([]Pool, 0, maxSize)
	for pos := 1; pos <= maxSize; pos++ {
		members := make([]TeamStanding, 0, len(tables))
		for _, t := range tables {
			for _, s := range t.Standings {
				if s.GroupPosition == pos {
					members = append(members, s)
					break
				}
			}
		}
		if len(members) == 0 {
			continue
		}
		pools = append(pools, Pool{Position: pos, Standings: rank(members, idx)})
	}
	return pools
}

// BuildPools is the exported form of the cross-group pool builder.
func BuildPools(tables []GroupTable, matches []models.Match, cal Calendar, filter PhaseFilter) ([]Pool, []Warning) {
	idx, warnings := newPairIndex(matches, cal, filter)
	return buildPools(tables, idx), warnings
}

func poolAt(pools []Pool, position int) []TeamStanding {
	for _, p := range pools {
		if p.Position == position {
			return p.Standings
		}
	}
	return nil
}
