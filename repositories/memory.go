package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/playground-standings/models"
)

// MemoryStore keeps everything in maps and enforces the same constraints as
// the SQL schema. It backs tests and the offline CLI.
type MemoryStore struct {
	mu          sync.RWMutex
	nextID      int
	playgrounds map[int]models.Playground
	groups      map[int]models.Group
	teams       map[int]models.Team
	matches     map[int]models.Match
	players     map[int]models.Player
	points      map[pointKey]int
	now         func() time.Time
}

type pointKey struct{ matchID, playerID int }

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		playgrounds: make(map[int]models.Playground),
		groups:      make(map[int]models.Group),
		teams:       make(map[int]models.Team),
		matches:     make(map[int]models.Match),
		players:     make(map[int]models.Player),
		points:      make(map[pointKey]int),
		now:         time.Now,
	}
}

func (s *MemoryStore) Playgrounds() PlaygroundRepository { return memoryPlaygrounds{s} }
func (s *MemoryStore) Groups() GroupRepository           { return memoryGroups{s} }
func (s *MemoryStore) Teams() TeamRepository             { return memoryTeams{s} }
func (s *MemoryStore) Matches() MatchRepository          { return memoryMatches{s} }
func (s *MemoryStore) Players() PlayerRepository         { return memoryPlayers{s} }
func (s *MemoryStore) Snapshots() SnapshotRepository     { return memorySnapshots{s} }
func (s *MemoryStore) Transactor() Transactor            { return memoryTransactor{s} }

func (s *MemoryStore) id() int {
	s.nextID++
	return s.nextID
}

type memoryPlaygrounds struct{ s *MemoryStore }

func (r memoryPlaygrounds) Create(_ context.Context, p *models.Playground) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.playgrounds {
		if existing.Name == p.Name {
			return ErrPlaygroundNameConflict
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = r.s.now()
	r.s.playgrounds[p.ID] = *p
	return nil
}

func (r memoryPlaygrounds) GetByID(_ context.Context, id int) (*models.Playground, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.playgrounds[id]
	if !ok {
		return nil, ErrPlaygroundNotFound
	}
	return &p, nil
}

func (r memoryPlaygrounds) List(_ context.Context) ([]models.Playground, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Playground, 0, len(r.s.playgrounds))
	for _, p := range r.s.playgrounds {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type memoryGroups struct{ s *MemoryStore }

func (r memoryGroups) Create(_ context.Context, g *models.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.playgrounds[g.PlaygroundID]; !ok {
		return ErrGroupPlaygroundInvalid
	}
	for _, existing := range r.s.groups {
		if existing.PlaygroundID == g.PlaygroundID && existing.Name == g.Name {
			return ErrGroupNameConflict
		}
	}
	g.ID = r.s.id()
	stored := *g
	stored.Teams = nil
	r.s.groups[g.ID] = stored
	return nil
}

func (r memoryGroups) GetByID(_ context.Context, id int) (*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return &g, nil
}

func (r memoryGroups) ListByPlayground(_ context.Context, playgroundID int) ([]models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.groupsOf(playgroundID), nil
}

func (s *MemoryStore) groupsOf(playgroundID int) []models.Group {
	out := make([]models.Group, 0)
	for _, g := range s.groups {
		if g.PlaygroundID == playgroundID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memoryTeams struct{ s *MemoryStore }

func (r memoryTeams) Create(_ context.Context, t *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[t.GroupID]
	if !ok || g.PlaygroundID != t.PlaygroundID {
		return ErrTeamGroupInvalid
	}
	for _, existing := range r.s.teams {
		if existing.PlaygroundID == t.PlaygroundID && existing.Name == t.Name {
			return ErrTeamNameConflict
		}
	}
	t.ID = r.s.id()
	t.CreatedAt = r.s.now()
	stored := *t
	stored.Group = nil
	r.s.teams[t.ID] = stored
	return nil
}

func (r memoryTeams) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return &t, nil
}

func (r memoryTeams) ListByPlayground(_ context.Context, playgroundID int) ([]models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.teamsOf(playgroundID), nil
}

func (s *MemoryStore) teamsOf(playgroundID int) []models.Team {
	out := make([]models.Team, 0)
	for _, t := range s.teams {
		if t.PlaygroundID == playgroundID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type memoryMatches struct{ s *MemoryStore }

func (r memoryMatches) Create(_ context.Context, _ SQLExecutor, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.TeamAID == m.TeamBID {
		return fmt.Errorf("%w: matches_distinct_teams", ErrMatchInvalid)
	}
	for _, id := range []int{m.TeamAID, m.TeamBID} {
		if t, ok := r.s.teams[id]; !ok || t.PlaygroundID != m.PlaygroundID {
			return ErrMatchTeamInvalid
		}
	}
	for _, existing := range r.s.matches {
		if existing.PlaygroundID == m.PlaygroundID && existing.Day == m.Day &&
			existing.TimeSlot == m.TimeSlot && existing.Field == m.Field {
			return ErrMatchSlotTaken
		}
	}
	m.ID = r.s.id()
	m.CreatedAt = r.s.now()
	stored := *m
	stored.TeamA, stored.TeamB = nil, nil
	r.s.matches[m.ID] = stored
	return nil
}

func (r memoryMatches) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return &m, nil
}

func (r memoryMatches) ListByPlayground(_ context.Context, playgroundID int, day *int) ([]models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.matchesOf(playgroundID)
	if day == nil {
		return all, nil
	}
	out := make([]models.Match, 0)
	for _, m := range all {
		if m.Day == *day {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) matchesOf(playgroundID int) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range s.matches {
		if m.PlaygroundID == playgroundID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot < b.TimeSlot
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.ID < b.ID
	})
	return out
}

func (r memoryMatches) UpdateResult(_ context.Context, id int, scoreA, scoreB, winnerID *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return ErrMatchNotFound
	}
	if winnerID != nil && *winnerID != m.TeamAID && *winnerID != m.TeamBID {
		return fmt.Errorf("%w: matches_winner_is_player", ErrMatchInvalid)
	}
	m.ScoreA, m.ScoreB, m.WinnerID = scoreA, scoreB, winnerID
	r.s.matches[id] = m
	return nil
}

func (r memoryMatches) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.matches[id]; !ok {
		return ErrMatchNotFound
	}
	delete(r.s.matches, id)
	for k := range r.s.points {
		if k.matchID == id {
			delete(r.s.points, k)
		}
	}
	return nil
}

type memorySnapshots struct{ s *MemoryStore }

func (r memorySnapshots) Load(_ context.Context, playgroundID int) (*models.PlaygroundSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.playgrounds[playgroundID]
	if !ok {
		return nil, ErrPlaygroundNotFound
	}
	return &models.PlaygroundSnapshot{
		Playground:   p,
		Groups:       r.s.groupsOf(playgroundID),
		Teams:        r.s.teamsOf(playgroundID),
		Matches:      r.s.matchesOf(playgroundID),
		Players:      r.s.playersOf(playgroundID),
		PlayerPoints: r.s.pointsOf(playgroundID),
	}, nil
}

// memoryTransactor restores the match and player point tables if the unit of
// work fails. It does not isolate concurrent writers.
type memoryTransactor struct{ s *MemoryStore }

func (t memoryTransactor) WithinTx(_ context.Context, fn func(exec SQLExecutor) error) error {
	t.s.mu.RLock()
	saved := make(map[int]models.Match, len(t.s.matches))
	for id, m := range t.s.matches {
		saved[id] = m
	}
	savedPoints := make(map[pointKey]int, len(t.s.points))
	for k, v := range t.s.points {
		savedPoints[k] = v
	}
	t.s.mu.RUnlock()

	if err := fn(nil); err != nil {
		t.s.mu.Lock()
		t.s.matches = saved
		t.s.points = savedPoints
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type memoryPlayers struct{ s *MemoryStore }

func (r memoryPlayers) Create(_ context.Context, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[p.TeamID]
	if !ok || t.PlaygroundID != p.PlaygroundID {
		return ErrPlayerTeamInvalid
	}
	if p.Warnings < 0 || p.Warnings > models.MaxPlayerWarnings {
		return fmt.Errorf("%w: players_warnings_range", ErrPlayerInvalid)
	}
	for _, existing := range r.s.players {
		if existing.TeamID == p.TeamID && existing.Name == p.Name {
			return ErrPlayerNameConflict
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = r.s.now()
	r.s.players[p.ID] = *p
	return nil
}

func (r memoryPlayers) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

func (r memoryPlayers) ListByPlayground(_ context.Context, playgroundID int) ([]models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.playersOf(playgroundID), nil
}

func (s *MemoryStore) playersOf(playgroundID int) []models.Player {
	out := make([]models.Player, 0)
	for _, p := range s.players {
		if p.PlaygroundID == playgroundID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r memoryPlayers) UpdateDiscipline(_ context.Context, id int, warnings int, expelled bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	if warnings < 0 || warnings > models.MaxPlayerWarnings {
		return fmt.Errorf("%w: players_warnings_range", ErrPlayerInvalid)
	}
	p.Warnings, p.Expelled = warnings, expelled
	r.s.players[id] = p
	return nil
}

func (r memoryPlayers) SetMatchPoints(_ context.Context, _ SQLExecutor, pts models.PlayerMatchPoints) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.matches[pts.MatchID]; !ok {
		return ErrPlayerPointsInvalid
	}
	if _, ok := r.s.players[pts.PlayerID]; !ok {
		return ErrPlayerPointsInvalid
	}
	if pts.Points < 0 {
		return fmt.Errorf("%w: player_match_points_points_check", ErrPlayerPointsInvalid)
	}
	r.s.points[pointKey{pts.MatchID, pts.PlayerID}] = pts.Points
	return nil
}

func (r memoryPlayers) ListMatchPoints(_ context.Context, playgroundID int) ([]models.PlayerMatchPoints, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.pointsOf(playgroundID), nil
}

func (s *MemoryStore) pointsOf(playgroundID int) []models.PlayerMatchPoints {
	out := make([]models.PlayerMatchPoints, 0)
	for k, v := range s.points {
		if p, ok := s.players[k.playerID]; ok && p.PlaygroundID == playgroundID {
			out = append(out, models.PlayerMatchPoints{MatchID: k.matchID, PlayerID: k.playerID, Points: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
