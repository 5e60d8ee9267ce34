package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/playground-standings/models"
)

var (
	ErrIncompleteSnapshot = errors.New("snapshot is missing roster or match data")
	ErrTeamNotFound       = errors.New("team not found in snapshot")
)

// Config - параметры движка. Нулевое значение непригодно, начинайте с DefaultConfig.
type Config struct {
	Calendar      Calendar
	Qualification QualificationConfig
	Grid          TimeGrid
	Bracket       BracketLayout
}

func DefaultConfig() Config {
	return Config{
		Calendar:      DefaultCalendar(),
		Qualification: DefaultQualificationConfig(),
		Grid:          DefaultTimeGrid(),
		Bracket:       DefaultBracketLayout(),
	}
}

// Engine считает таблицы, квалификационные пулы и сетку по снимку площадки.
// Состояния между вызовами не хранит.
type Engine struct {
	calendar      Calendar
	qualification QualificationConfig
	slots         []string
	classifier    *RoundClassifier
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Qualification.Validate(); err != nil {
		return nil, err
	}
	slots, err := cfg.Grid.Slots()
	if err != nil {
		return nil, err
	}
	classifier, err := NewRoundClassifier(slots, cfg.Bracket)
	if err != nil {
		return nil, err
	}
	return &Engine{
		calendar:      cfg.Calendar,
		qualification: cfg.Qualification,
		slots:         slots,
		classifier:    classifier,
	}, nil
}

func (e *Engine) Calendar() Calendar                      { return e.calendar }
func (e *Engine) Classifier() *RoundClassifier            { return e.classifier }
func (e *Engine) QualificationRules() QualificationConfig { return e.qualification }

// TimeSlots возвращает подписи слотов игрового дня.
func (e *Engine) TimeSlots() []string {
	return append([]string(nil), e.slots...)
}

type StandingsResult struct {
	Groups   []GroupTable `json:"groups"`
	Warnings []Warning    `json:"warnings,omitempty"`
}

type QualificationReport struct {
	Groups []GroupTable `json:"groups"`
	Pools  []Pool       `json:"pools"`
	QualificationResult
	Warnings []Warning `json:"warnings,omitempty"`
}

type PlayInReport struct {
	Matches  []models.Match `json:"matches"`
	Winners  []TeamStanding `json:"winners"`
	Pending  int            `json:"pending"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

type BracketReport struct {
	BracketView
	Warnings []Warning `json:"warnings,omitempty"`
}

type TeamRecord struct {
	Standing TeamStanding   `json:"standing"`
	Matches  []models.Match `json:"matches"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// GroupStandings ранжирует все группы снимка, учитывая только матчи внутри фильтра.
func (e *Engine) GroupStandings(snap models.PlaygroundSnapshot, filter PhaseFilter) (StandingsResult, error) {
	p, err := e.prepare(snap)
	if err != nil {
		return StandingsResult{}, err
	}
	tables, _, warnings := e.rankGroups(p, filter)
	return StandingsResult{Groups: tables, Warnings: append(p.warnings, warnings...)}, nil
}

// Qualification ранжирует групповой этап, собирает межгрупповые пулы и делит
// их на прямых участников плей-офф и пул плей-ина.
func (e *Engine) Qualification(snap models.PlaygroundSnapshot) (QualificationReport, error) {
	p, err := e.prepare(snap)
	if err != nil {
		return QualificationReport{}, err
	}
	tables, idx, warnings := e.rankGroups(p, OnlyPhase(PhaseGroupStage))
	pools := buildPools(tables, idx)
	return QualificationReport{
		Groups:              tables,
		Pools:               pools,
		QualificationResult: SelectQualifiers(pools, e.qualification, len(tables)),
		Warnings:            append(p.warnings, warnings...),
	}, nil
}

// PlayIn lists the play-in matches and the teams that won them, each carrying
// its group-stage standing and position.
func (e *Engine) PlayIn(snap models.PlaygroundSnapshot) (PlayInReport, error) {
	p, err := e.prepare(snap)
	if err != nil {
		return PlayInReport{}, err
	}
	tables, _, warnings := e.rankGroups(p, OnlyPhase(PhaseGroupStage))
	byTeam := make(map[int]TeamStanding)
	for _, t := range tables {
		for _, s := range t.Standings {
			byTeam[s.TeamID] = s
		}
	}

	matches := e.phaseMatches(p.matches, PhasePlayIn)
	report := PlayInReport{Matches: matches, Winners: make([]TeamStanding, 0)}
	for _, m := range matches {
		if !decided(m) {
			report.Pending++
			continue
		}
		winner, ok := byTeam[*m.WinnerID]
		if !ok {
			team := p.teams[*m.WinnerID]
			winner = TeamStanding{TeamID: team.ID, TeamName: team.Name, GroupID: team.GroupID}
		}
		report.Winners = append(report.Winners, winner)
	}
	report.Warnings = append(p.warnings, warnings...)
	return report, nil
}

// Bracket раскладывает матчи финального дня по раундам.
func (e *Engine) Bracket(snap models.PlaygroundSnapshot) (BracketReport, error) {
	p, err := e.prepare(snap)
	if err != nil {
		return BracketReport{}, err
	}
	return BracketReport{
		BracketView: e.classifier.BuildView(e.phaseMatches(p.matches, PhaseFinals)),
		Warnings:    p.warnings,
	}, nil
}

// TeamRecord собирает матчи одной команды внутри фильтра.
func (e *Engine) TeamRecord(snap models.PlaygroundSnapshot, teamID int, filter PhaseFilter) (TeamRecord, error) {
	p, err := e.prepare(snap)
	if err != nil {
		return TeamRecord{}, err
	}
	team, ok := p.teams[teamID]
	if !ok {
		return TeamRecord{}, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}
	own := p.byTeam[teamID]
	matches := make([]models.Match, 0, len(own))
	for _, m := range own {
		if filter.Allows(e.calendar.PhaseOf(m.Day)) {
			matches = append(matches, m)
		}
	}
	return TeamRecord{
		Standing: Aggregate(team, own, e.calendar, filter),
		Matches:  matches,
		Warnings: p.warnings,
	}, nil
}

// prepared - проверенный и проиндексированный снимок.
type prepared struct {
	groups     []models.Group
	teams      map[int]models.Team
	groupTeams map[int][]models.Team
	matches    []models.Match
	byTeam     map[int][]models.Match
	warnings   []Warning
}

func (e *Engine) prepare(snap models.PlaygroundSnapshot) (*prepared, error) {
	if snap.Groups == nil || snap.Teams == nil || snap.Matches == nil {
		return nil, ErrIncompleteSnapshot
	}
	p := &prepared{
		groups:     snap.Groups,
		teams:      make(map[int]models.Team, len(snap.Teams)),
		groupTeams: make(map[int][]models.Team, len(snap.Groups)),
		matches:    make([]models.Match, 0, len(snap.Matches)),
		byTeam:     make(map[int][]models.Match, len(snap.Teams)),
	}

	knownGroups := make(map[int]bool, len(snap.Groups))
	for _, g := range snap.Groups {
		knownGroups[g.ID] = true
	}
	for _, t := range snap.Teams {
		if _, dup := p.teams[t.ID]; dup {
			p.warnings = append(p.warnings, Warning{
				Kind:    WarnDuplicateTeam,
				TeamIDs: []int{t.ID},
				Message: fmt.Sprintf("team %d listed twice in the roster; later entry ignored", t.ID),
			})
			continue
		}
		p.teams[t.ID] = t
		if !knownGroups[t.GroupID] {
			p.warnings = append(p.warnings, Warning{
				Kind:    WarnUnknownGroup,
				TeamIDs: []int{t.ID},
				Message: fmt.Sprintf("team %d references unknown group %d; left out of group tables", t.ID, t.GroupID),
			})
			continue
		}
		p.groupTeams[t.GroupID] = append(p.groupTeams[t.GroupID], t)
	}

	for _, m := range snap.Matches {
		_, okA := p.teams[m.TeamAID]
		_, okB := p.teams[m.TeamBID]
		switch {
		case !okA || !okB:
			p.warnings = append(p.warnings, Warning{
				Kind:    WarnUnknownTeam,
				MatchID: m.ID,
				TeamIDs: []int{m.TeamAID, m.TeamBID},
				Message: fmt.Sprintf("match %d references a team missing from the roster; skipped", m.ID),
			})
			continue
		case m.TeamAID == m.TeamBID:
			p.warnings = append(p.warnings, Warning{
				Kind:    WarnInvalidMatch,
				MatchID: m.ID,
				TeamIDs: []int{m.TeamAID},
				Message: fmt.Sprintf("match %d pits team %d against itself; skipped", m.ID, m.TeamAID),
			})
			continue
		case m.WinnerID != nil && !decided(m):
			p.warnings = append(p.warnings, Warning{
				Kind:    WarnInvalidWinner,
				MatchID: m.ID,
				TeamIDs: []int{m.TeamAID, m.TeamBID},
				Message: fmt.Sprintf("match %d names winner %d who did not play it; treated as undecided", m.ID, *m.WinnerID),
			})
			m.WinnerID = nil
		case m.WinnerID != nil && contradictsScores(m):
			p.warnings = append(p.warnings, Warning{
				Kind:    WarnInvalidWinner,
				MatchID: m.ID,
				TeamIDs: []int{m.TeamAID, m.TeamBID},
				Message: fmt.Sprintf("match %d names winner %d against its %d-%d score; treated as undecided", m.ID, *m.WinnerID, *m.ScoreA, *m.ScoreB),
			})
			m.WinnerID = nil
		}
		p.matches = append(p.matches, m)
		p.byTeam[m.TeamAID] = append(p.byTeam[m.TeamAID], m)
		p.byTeam[m.TeamBID] = append(p.byTeam[m.TeamBID], m)
	}
	return p, nil
}

// contradictsScores: при обоих известных счетах победитель выводится из них,
// ничья победителя не даёт.
func contradictsScores(m models.Match) bool {
	if m.ScoreA == nil || m.ScoreB == nil {
		return false
	}
	derived := models.DeriveWinner(m.TeamAID, m.TeamBID, *m.ScoreA, *m.ScoreB)
	return derived == nil || *derived != *m.WinnerID
}

func (e *Engine) rankGroups(p *prepared, filter PhaseFilter) ([]GroupTable, *pairIndex, []Warning) {
	idx, warnings := newPairIndex(p.matches, e.calendar, filter)
	tables := make([]GroupTable, 0, len(p.groups))
	for _, g := range p.groups {
		members := p.groupTeams[g.ID]
		rows := make([]TeamStanding, 0, len(members))
		for _, t := range members {
			rows = append(rows, Aggregate(t, p.byTeam[t.ID], e.calendar, filter))
		}
		tables = append(tables, GroupTable{Group: g, Standings: rankGroup(rows, idx)})
	}
	return tables, idx, warnings
}

func (e *Engine) phaseMatches(matches []models.Match, phase Phase) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range matches {
		if e.calendar.PhaseOf(m.Day) == phase {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		if out[i].TimeSlot != out[j].TimeSlot {
			return out[i].TimeSlot < out[j].TimeSlot
		}
		return out[i].Field < out[j].Field
	})
	return out
}
