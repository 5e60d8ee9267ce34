package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/playground-standings/metrics"
	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/standings"
)

// CalendarDay - матчи одного игрового дня с подписью и фазой.
type CalendarDay struct {
	Day     int             `json:"day"`
	Label   string          `json:"label"`
	Phase   standings.Phase `json:"phase"`
	Matches []models.Match  `json:"matches"`
}

type StandingsService interface {
	GroupStandings(ctx context.Context, playgroundID int, filter standings.PhaseFilter) (*standings.StandingsResult, error)
	TeamStats(ctx context.Context, playgroundID, teamID int) (*standings.TeamRecord, error)
	Qualification(ctx context.Context, playgroundID int) (*standings.QualificationReport, error)
	PlayIn(ctx context.Context, playgroundID int) (*standings.PlayInReport, error)
	Bracket(ctx context.Context, playgroundID int) (*standings.BracketReport, error)
	Calendar(ctx context.Context, playgroundID int) ([]CalendarDay, error)
	// TopScorers - лучшие игроки по сумме очков. limit <= 0 возвращает всех.
	TopScorers(ctx context.Context, playgroundID int, limit int) (*standings.TopScorersReport, error)
	// Documents считает все публикуемые таблицы по одному снимку, чтобы они
	// не расходились, если результат внесли посреди расчёта.
	Documents(ctx context.Context, playgroundID int) (*PlaygroundDocuments, error)
	TimeSlots() []string
}

// PlaygroundDocuments - согласованный набор таблиц одной площадки.
type PlaygroundDocuments struct {
	Standings     *standings.StandingsResult     `json:"standings"`
	Qualification *standings.QualificationReport `json:"qualification"`
	PlayIn        *standings.PlayInReport        `json:"play_in"`
	Bracket       *standings.BracketReport       `json:"bracket"`
	TopScorers    *standings.TopScorersReport    `json:"top_scorers"`
}

type standingsService struct {
	snapshots repositories.SnapshotRepository
	engine    *standings.Engine
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

func NewStandingsService(
	snapshots repositories.SnapshotRepository,
	engine *standings.Engine,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &standingsService{
		snapshots: snapshots,
		engine:    engine,
		metrics:   recorder,
		logger:    logger,
	}
}

// load читает согласованный снимок площадки. Движок пересчитывает всё с нуля на каждый запрос.
func (s *standingsService) load(ctx context.Context, playgroundID int) (models.PlaygroundSnapshot, error) {
	snap, err := s.snapshots.Load(ctx, playgroundID)
	if err != nil {
		return models.PlaygroundSnapshot{}, fmt.Errorf("failed to load playground %d: %w", playgroundID, handleRepositoryError(err))
	}
	return *snap, nil
}

func (s *standingsService) observe(ctx context.Context, operation string, playgroundID int, start time.Time, err error, warnings []standings.Warning) {
	s.metrics.ObserveComputation(operation, time.Since(start), err)
	for _, w := range warnings {
		s.metrics.AddWarning(string(w.Kind))
	}
	logWarnings(ctx, s.logger, operation, playgroundID, warnings)
}

func (s *standingsService) GroupStandings(ctx context.Context, playgroundID int, filter standings.PhaseFilter) (*standings.StandingsResult, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	return s.groupStandings(ctx, snap, filter)
}

func (s *standingsService) groupStandings(ctx context.Context, snap models.PlaygroundSnapshot, filter standings.PhaseFilter) (*standings.StandingsResult, error) {
	playgroundID := snap.Playground.ID
	start := time.Now()
	res, err := s.engine.GroupStandings(snap, filter)
	s.observe(ctx, "group_standings", playgroundID, start, err, res.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to compute standings for playground %d: %w", playgroundID, handleEngineError(err))
	}
	return &res, nil
}

// TeamStats считает статистику команды по всем фазам.
func (s *standingsService) TeamStats(ctx context.Context, playgroundID, teamID int) (*standings.TeamRecord, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rec, err := s.engine.TeamRecord(snap, teamID, standings.AllPhases)
	s.observe(ctx, "team_stats", playgroundID, start, err, rec.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats for team %d: %w", teamID, handleEngineError(err))
	}
	attachTeams(rec.Matches, snap.Teams)
	return &rec, nil
}

func (s *standingsService) Qualification(ctx context.Context, playgroundID int) (*standings.QualificationReport, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	return s.qualification(ctx, snap)
}

func (s *standingsService) qualification(ctx context.Context, snap models.PlaygroundSnapshot) (*standings.QualificationReport, error) {
	playgroundID := snap.Playground.ID
	start := time.Now()
	rep, err := s.engine.Qualification(snap)
	s.observe(ctx, "qualification", playgroundID, start, err, rep.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to compute qualification for playground %d: %w", playgroundID, handleEngineError(err))
	}
	for _, sf := range rep.Shortfalls {
		s.metrics.AddShortfall(sf.Bucket)
		s.logger.WarnContext(ctx, "qualification quota not filled",
			slog.Int("playground_id", playgroundID),
			slog.Int("position", sf.Position),
			slog.String("bucket", sf.Bucket),
			slog.Int("requested", sf.Requested),
			slog.Int("available", sf.Available))
	}
	return &rep, nil
}

func (s *standingsService) PlayIn(ctx context.Context, playgroundID int) (*standings.PlayInReport, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	return s.playIn(ctx, snap)
}

func (s *standingsService) playIn(ctx context.Context, snap models.PlaygroundSnapshot) (*standings.PlayInReport, error) {
	playgroundID := snap.Playground.ID
	start := time.Now()
	rep, err := s.engine.PlayIn(snap)
	s.observe(ctx, "play_in", playgroundID, start, err, rep.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to compute play-in for playground %d: %w", playgroundID, handleEngineError(err))
	}
	attachTeams(rep.Matches, snap.Teams)
	return &rep, nil
}

func (s *standingsService) Bracket(ctx context.Context, playgroundID int) (*standings.BracketReport, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	return s.bracket(ctx, snap)
}

func (s *standingsService) bracket(ctx context.Context, snap models.PlaygroundSnapshot) (*standings.BracketReport, error) {
	playgroundID := snap.Playground.ID
	start := time.Now()
	rep, err := s.engine.Bracket(snap)
	s.observe(ctx, "bracket", playgroundID, start, err, rep.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to build bracket for playground %d: %w", playgroundID, handleEngineError(err))
	}
	for i := range rep.Rounds {
		attachTeams(rep.Rounds[i].Matches, snap.Teams)
	}
	return &rep, nil
}

// Calendar группирует матчи по дням. Дни календаря без матчей тоже попадают в ответ,
// дни вне календаря добавляются в конце по возрастанию.
func (s *standingsService) Calendar(ctx context.Context, playgroundID int) ([]CalendarDay, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	attachTeams(snap.Matches, snap.Teams)

	cal := s.engine.Calendar()
	byDay := make(map[int][]models.Match)
	for _, m := range snap.Matches {
		byDay[m.Day] = append(byDay[m.Day], m)
	}

	days := make([]CalendarDay, 0, len(byDay))
	listed := make(map[int]bool)
	for _, spec := range cal.Specs() {
		listed[spec.Day] = true
		days = append(days, CalendarDay{Day: spec.Day, Label: spec.Label, Phase: spec.Phase, Matches: nonNil(byDay[spec.Day])})
	}
	extra := make([]int, 0)
	for day := range byDay {
		if !listed[day] {
			extra = append(extra, day)
		}
	}
	sort.Ints(extra)
	for _, day := range extra {
		days = append(days, CalendarDay{Day: day, Label: cal.Label(day), Phase: cal.PhaseOf(day), Matches: byDay[day]})
	}
	return days, nil
}

func (s *standingsService) TopScorers(ctx context.Context, playgroundID int, limit int) (*standings.TopScorersReport, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	return s.topScorers(ctx, snap, limit)
}

func (s *standingsService) topScorers(ctx context.Context, snap models.PlaygroundSnapshot, limit int) (*standings.TopScorersReport, error) {
	playgroundID := snap.Playground.ID
	start := time.Now()
	rep, err := s.engine.TopScorers(snap, limit)
	s.observe(ctx, "top_scorers", playgroundID, start, err, rep.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top scorers for playground %d: %w", playgroundID, handleEngineError(err))
	}
	return &rep, nil
}

func (s *standingsService) Documents(ctx context.Context, playgroundID int) (*PlaygroundDocuments, error) {
	snap, err := s.load(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	docs := &PlaygroundDocuments{}
	if docs.Standings, err = s.groupStandings(ctx, snap, standings.OnlyPhase(standings.PhaseGroupStage)); err != nil {
		return nil, err
	}
	if docs.Qualification, err = s.qualification(ctx, snap); err != nil {
		return nil, err
	}
	if docs.PlayIn, err = s.playIn(ctx, snap); err != nil {
		return nil, err
	}
	if docs.Bracket, err = s.bracket(ctx, snap); err != nil {
		return nil, err
	}
	if docs.TopScorers, err = s.topScorers(ctx, snap, standings.DefaultTopScorersLimit); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *standingsService) TimeSlots() []string {
	return s.engine.TimeSlots()
}

func nonNil(matches []models.Match) []models.Match {
	if matches == nil {
		return []models.Match{}
	}
	return matches
}
