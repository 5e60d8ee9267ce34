package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/metrics"
	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/standings"
)

const (
	slot1800 = "18:00 > 18:15"
	slot1900 = "19:00 > 19:15"
	slot1920 = "19:20 > 19:35"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (n *recordingNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok {
		n.messages = append(n.messages, msg)
	}
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	for i, m := range n.messages {
		out[i] = m.Type
	}
	return out
}

type testEnv struct {
	store      *repositories.MemoryStore
	engine     *standings.Engine
	notifier   *recordingNotifier
	recorder   *metrics.Recorder
	playground models.Playground
	// teams[g][n] - n-я команда группы g.
	teams [][]models.Team

	roster    RosterService
	matches   MatchService
	standings StandingsService
	schedule  ScheduleService
	players   PlayerService
}

// newTestEnv creates one playground with a group per entry of sizes.
func newTestEnv(t *testing.T, sizes ...int) *testEnv {
	t.Helper()
	engine, err := standings.NewEngine(standings.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	store := repositories.NewMemoryStore()
	env := &testEnv{
		store:    store,
		engine:   engine,
		notifier: &recordingNotifier{},
		recorder: metrics.NewRecorder(),
	}
	logger := discardLogger()
	env.roster = NewRosterService(store.Playgrounds(), store.Groups(), store.Teams(), logger)
	env.matches = NewMatchService(store.Matches(), store.Teams(), engine, nil, env.notifier, logger)
	env.standings = NewStandingsService(store.Snapshots(), engine, env.recorder, logger)
	generator := brackets.NewRoundRobinGenerator(engine.Calendar(), engine.TimeSlots(), nil, nil)
	env.schedule = NewScheduleService(store.Snapshots(), store.Matches(), store.Transactor(), generator, engine.Calendar(), env.notifier, logger)
	env.players = NewPlayerService(store.Players(), store.Teams(), store.Matches(), store.Transactor(), env.notifier, logger)

	ctx := context.Background()
	p, err := env.roster.CreatePlayground(ctx, CreatePlaygroundInput{Name: "Summer 3vs3"})
	if err != nil {
		t.Fatal(err)
	}
	env.playground = *p
	colors := []models.GroupColor{models.ColorRed, models.ColorBlue, models.ColorGreen, models.ColorYellow, models.ColorPurple}
	for g, size := range sizes {
		group, err := env.roster.CreateGroup(ctx, p.ID, CreateGroupInput{Name: fmt.Sprintf("Group %d", g+1), Color: colors[g%len(colors)]})
		if err != nil {
			t.Fatal(err)
		}
		var members []models.Team
		for n := 0; n < size; n++ {
			team, err := env.roster.CreateTeam(ctx, p.ID, CreateTeamInput{GroupID: group.ID, Name: fmt.Sprintf("G%d-T%d", g+1, n+1)})
			if err != nil {
				t.Fatal(err)
			}
			members = append(members, *team)
		}
		env.teams = append(env.teams, members)
	}
	return env
}

// play creates a match and records its score.
func (env *testEnv) play(t *testing.T, day int, slot, field string, a, b models.Team, scoreA, scoreB int) *models.Match {
	t.Helper()
	ctx := context.Background()
	m, err := env.matches.CreateMatch(ctx, env.playground.ID, CreateMatchInput{
		Day: day, TimeSlot: slot, Field: field, TeamAID: a.ID, TeamBID: b.ID,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	m, err = env.matches.RecordResult(ctx, m.ID, RecordResultInput{ScoreA: &scoreA, ScoreB: &scoreB})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	return m
}

func TestStandingsServiceGroupStandings(t *testing.T) {
	env := newTestEnv(t, 3)
	g := env.teams[0]
	env.play(t, 1, slot1800, "A", g[2], g[0], 21, 10)
	env.play(t, 1, slot1900, "A", g[2], g[1], 21, 15)
	env.play(t, 2, slot1900, "A", g[1], g[0], 21, 20)
	// Play-in day results stay out of the group table.
	env.play(t, 5, slot1900, "A", g[0], g[2], 21, 0)

	res, err := env.standings.GroupStandings(context.Background(), env.playground.ID, standings.OnlyPhase(standings.PhaseGroupStage))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(res.Groups))
	}
	rows := res.Groups[0].Standings
	want := []int{g[2].ID, g[1].ID, g[0].ID}
	for i, id := range want {
		if rows[i].TeamID != id || rows[i].GroupPosition != i+1 {
			t.Fatalf("row %d: got team %d at %d, want team %d", i, rows[i].TeamID, rows[i].GroupPosition, id)
		}
	}
	if rows[0].MatchesPlayed != 2 || rows[0].MatchesWon != 2 {
		t.Fatalf("play-in match leaked into group table: %+v", rows[0])
	}
}

func TestStandingsServiceUnknownPlayground(t *testing.T) {
	env := newTestEnv(t, 2)
	_, err := env.standings.Qualification(context.Background(), 999)
	if !errors.Is(err, ErrPlaygroundNotFound) {
		t.Fatalf("expected ErrPlaygroundNotFound, got %v", err)
	}
}

func TestStandingsServiceTeamStats(t *testing.T) {
	env := newTestEnv(t, 2)
	g := env.teams[0]
	env.play(t, 1, slot1900, "A", g[0], g[1], 21, 18)
	env.play(t, 5, slot1900, "B", g[1], g[0], 21, 19)

	rec, err := env.standings.TeamStats(context.Background(), env.playground.ID, g[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Standing.MatchesPlayed != 2 || rec.Standing.MatchesWon != 1 {
		t.Fatalf("team stats must count every phase, got %+v", rec.Standing)
	}
	if len(rec.Matches) != 2 || rec.Matches[0].TeamA == nil || rec.Matches[0].TeamA.Name == "" {
		t.Fatalf("expected matches with team details, got %+v", rec.Matches)
	}

	_, err = env.standings.TeamStats(context.Background(), env.playground.ID, 12345)
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestStandingsServiceQualificationRecordsShortfalls(t *testing.T) {
	env := newTestEnv(t, 3, 3)
	rep, err := env.standings.Qualification(context.Background(), env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	// Two groups: 2 winners direct, 2 of the 3 requested best seconds, no fifths at all.
	if len(rep.DirectQualifiers) != 4 {
		t.Fatalf("expected 4 direct qualifiers, got %d", len(rep.DirectQualifiers))
	}
	if len(rep.Shortfalls) == 0 {
		t.Fatal("expected shortfalls for a two-group playground")
	}
}

func TestStandingsServiceCalendar(t *testing.T) {
	env := newTestEnv(t, 2)
	g := env.teams[0]
	env.play(t, 7, slot1900, "A", g[0], g[1], 21, 12)

	days, err := env.standings.Calendar(context.Background(), env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 7 {
		t.Fatalf("expected the seven calendar days, got %d", len(days))
	}
	last := days[len(days)-1]
	if last.Day != 7 || last.Phase != standings.PhaseFinals || len(last.Matches) != 1 {
		t.Fatalf("unexpected finals day %+v", last)
	}
	if last.Matches[0].TeamB == nil || last.Matches[0].TeamB.ID != g[1].ID {
		t.Fatal("expected team details on calendar matches")
	}
	if days[0].Matches == nil {
		t.Fatal("empty days must carry an empty match list, not null")
	}
}

func TestMatchServiceCreateValidation(t *testing.T) {
	env := newTestEnv(t, 3)
	g := env.teams[0]
	ctx := context.Background()
	if _, err := env.matches.CreateMatch(ctx, env.playground.ID, CreateMatchInput{Day: 1, TimeSlot: slot1900, Field: "A", TeamAID: g[0].ID, TeamBID: g[1].ID}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input CreateMatchInput
		want  error
	}{
		{"unknown day", CreateMatchInput{Day: 9, TimeSlot: slot1900, Field: "A", TeamAID: g[0].ID, TeamBID: g[2].ID}, ErrUnknownDay},
		{"unknown slot", CreateMatchInput{Day: 1, TimeSlot: "19:05 > 19:20", Field: "A", TeamAID: g[0].ID, TeamBID: g[2].ID}, ErrUnknownTimeSlot},
		{"unknown field", CreateMatchInput{Day: 1, TimeSlot: slot1920, Field: "C", TeamAID: g[0].ID, TeamBID: g[2].ID}, ErrUnknownField},
		{"same team", CreateMatchInput{Day: 1, TimeSlot: slot1920, Field: "A", TeamAID: g[0].ID, TeamBID: g[0].ID}, ErrSameTeam},
		{"field taken", CreateMatchInput{Day: 1, TimeSlot: slot1900, Field: "a", TeamAID: g[2].ID, TeamBID: g[1].ID}, ErrSlotTaken},
		{"team double booked", CreateMatchInput{Day: 1, TimeSlot: slot1900, Field: "B", TeamAID: g[0].ID, TeamBID: g[2].ID}, ErrTeamDoubleBooked},
		{"missing team", CreateMatchInput{Day: 1, TimeSlot: slot1920, Field: "A", TeamAID: g[0].ID, TeamBID: 4242}, ErrTeamNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.matches.CreateMatch(ctx, env.playground.ID, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	second, err := env.roster.CreatePlayground(ctx, CreatePlaygroundInput{Name: "Winter 3vs3"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = env.matches.CreateMatch(ctx, second.ID, CreateMatchInput{Day: 1, TimeSlot: slot1920, Field: "A", TeamAID: g[0].ID, TeamBID: g[1].ID})
	if !errors.Is(err, ErrTeamOutsidePlay) {
		t.Fatalf("expected ErrTeamOutsidePlay, got %v", err)
	}
}

func TestMatchServiceRecordResult(t *testing.T) {
	env := newTestEnv(t, 2)
	g := env.teams[0]
	ctx := context.Background()
	m, err := env.matches.CreateMatch(ctx, env.playground.ID, CreateMatchInput{Day: 1, TimeSlot: slot1900, Field: "A", TeamAID: g[0].ID, TeamBID: g[1].ID})
	if err != nil {
		t.Fatal(err)
	}

	a, b := 15, 21
	got, err := env.matches.RecordResult(ctx, m.ID, RecordResultInput{ScoreA: &a, ScoreB: &b})
	if err != nil {
		t.Fatal(err)
	}
	if got.WinnerID == nil || *got.WinnerID != g[1].ID {
		t.Fatalf("expected team B to win, got %v", got.WinnerID)
	}

	tie := 20
	got, err = env.matches.RecordResult(ctx, m.ID, RecordResultInput{ScoreA: &tie, ScoreB: &tie})
	if err != nil {
		t.Fatal(err)
	}
	if got.WinnerID != nil {
		t.Fatal("a tied score must not assign a winner")
	}
	stored, err := env.store.Matches().GetByID(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.WinnerID != nil || stored.ScoreA == nil || *stored.ScoreA != 20 {
		t.Fatalf("tie not persisted as undecided: %+v", stored)
	}

	if _, err := env.matches.RecordResult(ctx, m.ID, RecordResultInput{ScoreA: &a}); !errors.Is(err, ErrIncompleteScore) {
		t.Fatalf("expected ErrIncompleteScore, got %v", err)
	}
	neg := -1
	if _, err := env.matches.RecordResult(ctx, m.ID, RecordResultInput{ScoreA: &neg, ScoreB: &b}); !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("expected ErrNegativeScore, got %v", err)
	}
	if _, err := env.matches.RecordResult(ctx, 9999, RecordResultInput{ScoreA: &a, ScoreB: &b}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	got, err = env.matches.RecordResult(ctx, m.ID, RecordResultInput{})
	if err != nil {
		t.Fatal(err)
	}
	if got.ScoreA != nil || got.WinnerID != nil {
		t.Fatal("empty input must clear the result")
	}

	types := env.notifier.types()
	want := []string{
		brackets.MessageMatchUpdated, // create
		brackets.MessageMatchUpdated, brackets.MessageStandingsUpdated,
		brackets.MessageMatchUpdated, brackets.MessageStandingsUpdated,
		brackets.MessageMatchUpdated, brackets.MessageStandingsUpdated,
	}
	if fmt.Sprint(types) != fmt.Sprint(want) {
		t.Fatalf("broadcasts: got %v, want %v", types, want)
	}
	if room := env.notifier.messages[0].RoomID; room != brackets.PlaygroundRoom(env.playground.ID) {
		t.Fatalf("unexpected room %q", room)
	}
}

func TestMatchServiceDelete(t *testing.T) {
	env := newTestEnv(t, 2)
	g := env.teams[0]
	m := env.play(t, 1, slot1900, "A", g[0], g[1], 21, 3)
	ctx := context.Background()

	if err := env.matches.DeleteMatch(ctx, m.ID); err != nil {
		t.Fatal(err)
	}
	if err := env.matches.DeleteMatch(ctx, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	list, err := env.matches.ListMatches(ctx, env.playground.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no matches, got %d", len(list))
	}
}

func TestScheduleServiceGenerateGroupStage(t *testing.T) {
	env := newTestEnv(t, 3, 3)
	ctx := context.Background()

	created, err := env.schedule.GenerateGroupStage(ctx, env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 6 {
		t.Fatalf("expected 6 round-robin matches, got %d", len(created))
	}
	for _, m := range created {
		if m.ID == 0 || m.PlaygroundID != env.playground.ID {
			t.Fatalf("match not persisted: %+v", m)
		}
	}
	stored, err := env.matches.ListMatches(ctx, env.playground.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 6 {
		t.Fatalf("expected 6 stored matches, got %d", len(stored))
	}

	if _, err := env.schedule.GenerateGroupStage(ctx, env.playground.ID); !errors.Is(err, ErrGroupStageExists) {
		t.Fatalf("expected ErrGroupStageExists on second run, got %v", err)
	}
	types := env.notifier.types()
	if len(types) != 1 || types[0] != brackets.MessageScheduleCreated {
		t.Fatalf("expected one schedule broadcast, got %v", types)
	}
}

func TestScheduleServiceRejectsTinyGroup(t *testing.T) {
	env := newTestEnv(t, 3, 1)
	_, err := env.schedule.GenerateGroupStage(context.Background(), env.playground.ID)
	if !errors.Is(err, brackets.ErrNotEnoughTeams) || !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected a validation error wrapping ErrNotEnoughTeams, got %v", err)
	}
	list, _ := env.matches.ListMatches(context.Background(), env.playground.ID, nil)
	if len(list) != 0 {
		t.Fatalf("nothing may be saved when generation fails, got %d matches", len(list))
	}
}

func TestRosterServiceValidation(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	if _, err := env.roster.CreatePlayground(ctx, CreatePlaygroundInput{Name: "  "}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if _, err := env.roster.CreatePlayground(ctx, CreatePlaygroundInput{Name: "Summer 3vs3"}); !errors.Is(err, ErrPlaygroundNameConflict) {
		t.Fatalf("expected ErrPlaygroundNameConflict, got %v", err)
	}
	if _, err := env.roster.CreateGroup(ctx, env.playground.ID, CreateGroupInput{Name: "Orange", Color: "orange"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for unknown color, got %v", err)
	}
	if _, err := env.roster.CreateTeam(ctx, env.playground.ID, CreateTeamInput{GroupID: 777, Name: "Ghost"}); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	groups, err := env.roster.ListGroups(ctx, env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || len(groups[0].Teams) != 1 {
		t.Fatalf("expected one group with one team, got %+v", groups)
	}
	if _, err := env.roster.ListGroups(ctx, 404); !errors.Is(err, ErrPlaygroundNotFound) {
		t.Fatalf("expected ErrPlaygroundNotFound, got %v", err)
	}
}
