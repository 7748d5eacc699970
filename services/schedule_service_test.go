package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

func ptr[T any](v T) *T { return &v }

// playedStore returns a regenerated store where every group A fixture has a
// result and the home side always wins.
func playedStore(t *testing.T) *memoryStore {
	t.Helper()
	store := newStore()
	store.teams = map[int]string{1: "Lions", 2: "Tigers", 3: "Bears", 4: "Wolves"}

	svc := NewTournamentService(store.dependencies())
	if _, err := svc.RegenerateStructure(context.Background(), 11); err != nil {
		t.Fatalf("RegenerateStructure: %v", err)
	}
	for i := range store.slots[:4] {
		store.slots[i].TeamID = ptr(i + 1)
	}

	names := map[int]string{1: "Lions", 2: "Tigers", 3: "Bears", 4: "Wolves"}
	finished := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	for _, e := range store.entries {
		if e.Phase != models.PhaseGroup || e.Group != "A" {
			continue
		}
		home := e.Home.(models.SlotSource)
		away := e.Away.(models.SlotSource)
		// Lower slot number always wins, so slot 1 tops the group.
		homeScore, awayScore := 1, 0
		if home.Slot > away.Slot {
			homeScore, awayScore = 0, 1
		}
		store.results = append(store.results, models.MatchResult{
			Code:       e.Code,
			Group:      "A",
			HomeTeam:   names[home.Slot],
			AwayTeam:   names[away.Slot],
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			FinishedAt: &finished,
		})
	}
	return store
}

func TestGetStandings(t *testing.T) {
	store := playedStore(t)
	svc := NewTournamentService(store.dependencies())

	table, err := svc.GetStandings(context.Background(), 11, "group a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.Complete {
		t.Error("group A has every result and should be complete")
	}
	want := []string{"Lions", "Tigers", "Bears", "Wolves"}
	if len(table.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(table.Rows))
	}
	for i, name := range want {
		if table.Rows[i].Team != name {
			t.Errorf("position %d: %s, want %s", i+1, table.Rows[i].Team, name)
		}
	}
	if table.Rows[0].Points != 9 {
		t.Errorf("expected 9 points for the leader, got %d", table.Rows[0].Points)
	}

	tableB, err := svc.GetStandings(context.Background(), 11, "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tableB.Complete || len(tableB.Rows) != 0 {
		t.Errorf("group B has no teams or results yet, got %+v", tableB)
	}
}

func TestGetStandings_IgnoresUnfinishedResults(t *testing.T) {
	store := playedStore(t)
	store.results[0].FinishedAt = nil
	svc := NewTournamentService(store.dependencies())

	table, err := svc.GetStandings(context.Background(), 11, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Complete {
		t.Error("a group with an unfinished fixture is not complete")
	}
	played := 0
	for _, row := range table.Rows {
		played += row.GamesPlayed
	}
	if played != 10 {
		t.Errorf("expected 5 credited matches (10 games played), got %d", played)
	}
}

func TestGetSchedule_UnfinishedKnockoutResultDoesNotAdvance(t *testing.T) {
	store := playedStore(t)
	store.results = append(store.results, models.MatchResult{
		Code: "KO_R1_M1", HomeTeam: "Lions", AwayTeam: "Bears", HomeScore: 2,
	})
	svc := NewTournamentService(store.dependencies())

	matches, err := svc.GetSchedule(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range matches {
		if m.Entry.Code == "KO_R1_M1" && m.Result != nil {
			t.Errorf("unfinished result should not be attached, got %+v", m.Result)
		}
		if m.Entry.Code == "KO_R2_M1" && !m.HomeParticipant.Pending {
			t.Errorf("final should still wait for the semifinal, got %+v", m.HomeParticipant)
		}
	}
}

func TestGetStandings_UnknownGroup(t *testing.T) {
	svc := NewTournamentService(playedStore(t).dependencies())
	if _, err := svc.GetStandings(context.Background(), 11, "Z"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestGetStandings_LiveSnapshotUnavailable(t *testing.T) {
	store := playedStore(t)
	store.liveErr = errors.New("scoreboard offline")
	svc := NewTournamentService(store.dependencies())

	if _, err := svc.GetStandings(context.Background(), 11, "A"); err != nil {
		t.Fatalf("live snapshot errors must not fail standings, got %v", err)
	}
}

func TestGetSchedule_ResolvesParticipants(t *testing.T) {
	store := playedStore(t)
	svc := NewTournamentService(store.dependencies())

	matches, err := svc.GetSchedule(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 16 {
		t.Fatalf("expected 16 matches, got %d", len(matches))
	}

	byCode := make(map[string]models.ResolvedMatch)
	for _, m := range matches {
		byCode[m.Entry.Code] = m
	}

	first := byCode["GA_R1_M1"]
	if first.HomeParticipant.Team != "Lions" || first.HomeParticipant.Pending {
		t.Errorf("unexpected home participant %+v", first.HomeParticipant)
	}
	if first.Result == nil {
		t.Error("expected the recorded result to be attached")
	}

	groupB := byCode["GB_R1_M1"]
	if !groupB.HomeParticipant.Pending || groupB.HomeParticipant.Label != "Team 5" {
		t.Errorf("unassigned slot should be pending, got %+v", groupB.HomeParticipant)
	}

	semi := byCode["KO_R1_M1"]
	if semi.HomeParticipant.Team != "Lions" || semi.HomeParticipant.Provisional {
		t.Errorf("group A winner should be final, got %+v", semi.HomeParticipant)
	}
	if !semi.AwayParticipant.Pending {
		t.Errorf("group B runner-up is still unknown, got %+v", semi.AwayParticipant)
	}

	final := byCode["KO_R2_M1"]
	if final.HomeParticipant.Label != "Winner of Semifinal 1" || !final.HomeParticipant.Pending {
		t.Errorf("unexpected final participant %+v", final.HomeParticipant)
	}
}
