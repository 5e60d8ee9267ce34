package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/playground-standings/standings"
)

func TestPhaseFilter(t *testing.T) {
	f, err := phaseFilter("all")
	if err != nil || f != nil {
		t.Fatalf("all: got %v, %v; want nil filter", f, err)
	}
	f, err = phaseFilter("play_in")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Allows(standings.PhasePlayIn) || f.Allows(standings.PhaseGroupStage) {
		t.Errorf("play_in filter = %v", f)
	}
	if _, err := phaseFilter("semis"); !errors.Is(err, standings.ErrUnknownPhase) {
		t.Errorf("unknown phase: got %v", err)
	}
}

func TestHashPasswordCmd(t *testing.T) {
	cmd := hashPasswordCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--password", "s3cret"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("printed hash does not match password: %v", err)
	}
}

func TestHashPasswordCmdRequiresPassword(t *testing.T) {
	cmd := hashPasswordCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error without --password")
	}
}

func TestTopScorersCmdRejectsNegativeLimit(t *testing.T) {
	cmd := topScorersCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--playground", "1", "--limit", "-3"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a negative --limit")
	}
}
