package standings

import "sort"

// headToHeadWinPoints начисляется за победу в матче внутри группы равных.
const headToHeadWinPoints = 2

// resolveTiebreak reorders a cluster of standings tied on win percentage.
// Points are awarded from matches played among cluster members only; ties on
// those points fall back to points difference, then to the incoming order.
// The head-to-head step is not re-run on sub-clusters that stay tied.
func resolveTiebreak(cluster []TeamStanding, idx *pairIndex) []TeamStanding {
	out := make([]TeamStanding, len(cluster))
	copy(out, cluster)
	for i := range out {
		out[i].HeadToHeadPoints = 0
		out[i].HeadToHeadGames = 0
	}

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			m, ok := idx.lookup(out[i].TeamID, out[j].TeamID)
			if !ok {
				continue
			}
			out[i].HeadToHeadGames++
			out[j].HeadToHeadGames++
			if *m.WinnerID == out[i].TeamID {
				out[i].HeadToHeadPoints += headToHeadWinPoints
			} else {
				out[j].HeadToHeadPoints += headToHeadWinPoints
			}
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].HeadToHeadPoints != out[b].HeadToHeadPoints {
			return out[a].HeadToHeadPoints > out[b].HeadToHeadPoints
		}
		return out[a].PointsDifference > out[b].PointsDifference
	})
	return out
}
