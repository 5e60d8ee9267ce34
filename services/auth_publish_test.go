package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/storage"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAuthService("Admin@Example.com", string(hash))
	ctx := context.Background()

	user, err := svc.Login(ctx, LoginInput{Email: " admin@example.com ", Password: "s3cret"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != models.RoleAdmin || user.PasswordHash != "" {
		t.Fatalf("unexpected user %+v", user)
	}

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Email: "admin@example.com", Password: "nope"}},
		{"wrong email", LoginInput{Email: "root@example.com", Password: "s3cret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.input); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	unconfigured := NewAuthService("", "")
	if _, err := unconfigured.Login(ctx, LoginInput{Email: "", Password: ""}); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestPublishServiceUploadsDocuments(t *testing.T) {
	env := newTestEnv(t, 2, 2)
	g := env.teams[0]
	env.play(t, 1, slot1900, "A", g[0], g[1], 21, 11)

	uploader, err := storage.NewMemoryUploader("https://cdn.example.com/standings")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewPublishService(env.standings, uploader, env.recorder, discardLogger())

	res, err := svc.Publish(context.Background(), env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Documents) != 5 {
		t.Fatalf("expected 5 documents, got %d", len(res.Documents))
	}

	keys := uploader.Keys()
	sort.Strings(keys)
	want := []string{
		"playgrounds/1/bracket.json",
		"playgrounds/1/play_in.json",
		"playgrounds/1/qualification.json",
		"playgrounds/1/standings.json",
		"playgrounds/1/top_scorers.json",
	}
	if len(keys) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, keys)
		}
	}
	for _, doc := range res.Documents {
		if doc.URL != "https://cdn.example.com/standings/"+doc.Key {
			t.Fatalf("unexpected public URL %q for %q", doc.URL, doc.Key)
		}
	}

	obj, ok := uploader.Object("playgrounds/1/standings.json")
	if !ok || obj.ContentType != "application/json" {
		t.Fatalf("standings document missing or mistyped: %+v", obj)
	}
	var decoded struct {
		Groups []struct {
			Standings []struct {
				TeamID int `json:"team_id"`
			} `json:"standings"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(obj.Body, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Groups) != 2 || decoded.Groups[0].Standings[0].TeamID != g[0].ID {
		t.Fatalf("unexpected standings document: %s", obj.Body)
	}
}

func TestPublishServiceDisabled(t *testing.T) {
	env := newTestEnv(t, 2)
	svc := NewPublishService(env.standings, nil, nil, discardLogger())
	if _, err := svc.Publish(context.Background(), env.playground.ID); !errors.Is(err, ErrPublishingDisabled) {
		t.Fatalf("expected ErrPublishingDisabled, got %v", err)
	}
}

func TestPublishServiceUnknownPlayground(t *testing.T) {
	env := newTestEnv(t, 2)
	uploader, err := storage.NewMemoryUploader("https://cdn.example.com")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewPublishService(env.standings, uploader, nil, discardLogger())
	if _, err := svc.Publish(context.Background(), 77); !errors.Is(err, ErrPlaygroundNotFound) {
		t.Fatalf("expected ErrPlaygroundNotFound, got %v", err)
	}
	if len(uploader.Keys()) != 0 {
		t.Fatal("nothing may be uploaded for an unknown playground")
	}
}

// mutatingSnapshots records a result right after the first load, as if an
// admin wrote it while publishing was in progress.
type mutatingSnapshots struct {
	repositories.SnapshotRepository
	loads int
	after func()
}

func (m *mutatingSnapshots) Load(ctx context.Context, playgroundID int) (*models.PlaygroundSnapshot, error) {
	snap, err := m.SnapshotRepository.Load(ctx, playgroundID)
	m.loads++
	if m.loads == 1 && m.after != nil {
		m.after()
	}
	return snap, err
}

func TestPublishServiceUsesOneSnapshot(t *testing.T) {
	env := newTestEnv(t, 2, 2)
	ctx := context.Background()
	g := env.teams[0]
	pending, err := env.matches.CreateMatch(ctx, env.playground.ID, CreateMatchInput{
		Day: 1, TimeSlot: slot1900, Field: "A", TeamAID: g[0].ID, TeamBID: g[1].ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	snapshots := &mutatingSnapshots{SnapshotRepository: env.store.Snapshots()}
	snapshots.after = func() {
		a, b := 21, 3
		if _, err := env.matches.RecordResult(ctx, pending.ID, RecordResultInput{ScoreA: &a, ScoreB: &b}); err != nil {
			t.Errorf("record result: %v", err)
		}
	}
	standingsSvc := NewStandingsService(snapshots, env.engine, env.recorder, discardLogger())
	uploader, err := storage.NewMemoryUploader("https://cdn.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewPublishService(standingsSvc, uploader, nil, discardLogger()).Publish(ctx, env.playground.ID); err != nil {
		t.Fatal(err)
	}
	if snapshots.loads != 1 {
		t.Fatalf("publishing must load the playground once, loaded %d times", snapshots.loads)
	}

	type table struct {
		Groups []struct {
			Standings []struct {
				TeamID        int `json:"team_id"`
				MatchesPlayed int `json:"matches_played"`
			} `json:"standings"`
		} `json:"groups"`
	}
	for _, name := range []string{"standings", "qualification"} {
		obj, ok := uploader.Object("playgrounds/1/" + name + ".json")
		if !ok {
			t.Fatalf("%s document missing", name)
		}
		var doc table
		if err := json.Unmarshal(obj.Body, &doc); err != nil {
			t.Fatal(err)
		}
		for _, row := range doc.Groups[0].Standings {
			if row.MatchesPlayed != 0 {
				t.Fatalf("%s document saw a result recorded after the snapshot: %s", name, obj.Body)
			}
		}
	}
}

func TestPublishServiceUnpublish(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	uploader, err := storage.NewMemoryUploader("https://cdn.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uploader.Upload(ctx, "playgrounds/2/standings.json", "application/json", strings.NewReader("{}")); err != nil {
		t.Fatal(err)
	}
	svc := NewPublishService(env.standings, uploader, nil, discardLogger())

	if _, err := svc.Publish(ctx, env.playground.ID); err != nil {
		t.Fatal(err)
	}
	removed, err := svc.Unpublish(ctx, env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 5 {
		t.Fatalf("expected 5 removed documents, got %v", removed)
	}
	if keys := uploader.Keys(); len(keys) != 1 || keys[0] != "playgrounds/2/standings.json" {
		t.Fatalf("other playgrounds must keep their documents, left %v", keys)
	}

	again, err := svc.Unpublish(ctx, env.playground.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("nothing left to remove, got %v", again)
	}

	disabled := NewPublishService(env.standings, nil, nil, discardLogger())
	if _, err := disabled.Unpublish(ctx, env.playground.ID); !errors.Is(err, ErrPublishingDisabled) {
		t.Fatalf("expected ErrPublishingDisabled, got %v", err)
	}
}
