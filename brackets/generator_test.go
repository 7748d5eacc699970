package brackets

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

func eightTeamConfig() models.TournamentConfig {
	return models.TournamentConfig{
		ID:                 11,
		Name:               "Spring Cup",
		TeamCount:          8,
		GroupCount:         2,
		KnockoutRounds:     3,
		ClassificationMode: models.ClassificationAll,
	}
}

func TestRegenerateStructure_EightTeamsTwoGroups(t *testing.T) {
	structure, err := RegenerateStructure(eightTeamConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(structure.Slots) != 8 {
		t.Errorf("expected 8 slots, got %d", len(structure.Slots))
	}
	if len(structure.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(structure.Groups))
	}

	counts := make(map[models.Phase]int)
	codes := make(map[string]bool)
	for i, e := range structure.Entries {
		counts[e.Phase]++
		if codes[e.Code] {
			t.Errorf("duplicate code %s", e.Code)
		}
		codes[e.Code] = true
		if e.StageOrder != i+1 {
			t.Errorf("entry %s: stage order %d, want %d", e.Code, e.StageOrder, i+1)
		}
		if e.ScheduledAt != nil {
			t.Errorf("entry %s has a time without a start configured", e.Code)
		}
	}

	// Two round-robins of four give 12 group matches; 4 entrants give two
	// semifinals, a final and one match for third place.
	if counts[models.PhaseGroup] != 12 {
		t.Errorf("expected 12 group matches, got %d", counts[models.PhaseGroup])
	}
	if counts[models.PhaseKnockout] != 3 {
		t.Errorf("expected 3 knockout matches, got %d", counts[models.PhaseKnockout])
	}
	if counts[models.PhasePlacement] != 1 {
		t.Errorf("expected 1 placement match, got %d", counts[models.PhasePlacement])
	}
	if len(structure.Entries) != 16 {
		t.Errorf("expected 16 entries, got %d", len(structure.Entries))
	}

	entrants := make(map[models.Source]bool)
	for _, e := range structure.Entries {
		if e.Phase != models.PhaseKnockout || e.RoundNumber != 1 {
			continue
		}
		entrants[e.Home] = true
		entrants[e.Away] = true
	}
	if len(entrants) != 4 {
		t.Errorf("expected 4 knockout entrants, got %d", len(entrants))
	}

	last := structure.Entries[len(structure.Entries)-1]
	if last.Code != "KO_R2_M1" || last.StageLabel != "Final" {
		t.Errorf("expected the final last, got %s (%s)", last.Code, last.StageLabel)
	}
	thirdPlace := structure.Entries[len(structure.Entries)-2]
	if thirdPlace.Code != "PL3-4_M1" {
		t.Errorf("expected the third place match before the final, got %s", thirdPlace.Code)
	}
}

func TestRegenerateStructure_GroupPhaseFirst(t *testing.T) {
	structure, err := RegenerateStructure(eightTeamConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seenBracket := false
	for _, e := range structure.Entries {
		if e.Phase != models.PhaseGroup {
			seenBracket = true
			continue
		}
		if seenBracket {
			t.Fatalf("group entry %s scheduled after bracket", e.Code)
		}
	}

	first := structure.Entries[0]
	if first.Code != "GA_R1_M1" || first.StageLabel != "Group A" || first.Group != "A" {
		t.Errorf("unexpected first entry %+v", first)
	}
	if first.Home != (models.SlotSource{Slot: 1, Group: "A"}) || first.Away != (models.SlotSource{Slot: 4, Group: "A"}) {
		t.Errorf("unexpected first pairing %v vs %v", first.Home, first.Away)
	}
	// Rounds are interleaved across groups.
	if structure.Entries[2].Code != "GB_R1_M1" {
		t.Errorf("expected group B round 1 third, got %s", structure.Entries[2].Code)
	}
}

func TestRegenerateStructure_Idempotent(t *testing.T) {
	teamID := 5
	existing := []models.Slot{{TournamentID: 11, Number: 1, Group: "A", TeamID: &teamID}}

	first, err := RegenerateStructure(eightTeamConfig(), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := RegenerateStructure(eightTeamConfig(), first.Slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("regenerating from the same config produced a different structure")
	}
	if second.Slots[0].TeamID == nil || *second.Slots[0].TeamID != teamID {
		t.Error("team assignment lost on regeneration")
	}
}

func TestRegenerateStructure_NoKnockout(t *testing.T) {
	cfg := eightTeamConfig()
	cfg.KnockoutRounds = 0

	structure, err := RegenerateStructure(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range structure.Entries {
		if e.Phase != models.PhaseGroup {
			t.Errorf("unexpected %s entry %s", e.Phase, e.Code)
		}
	}
}

func TestRegenerateStructure_InvalidConfig(t *testing.T) {
	cfg := eightTeamConfig()
	cfg.GroupCount = 0

	structure, err := RegenerateStructure(cfg, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if structure != nil {
		t.Error("expected no structure on error")
	}
}

func TestRegenerateStructure_AssignsTimes(t *testing.T) {
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cfg := eightTeamConfig()
	cfg.StartsAt = &start
	cfg.MatchMinutes = 20

	structure, err := RegenerateStructure(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range structure.Entries {
		want := start.Add(time.Duration(e.StageOrder-1) * 20 * time.Minute)
		if e.ScheduledAt == nil || !e.ScheduledAt.Equal(want) {
			t.Errorf("entry %s scheduled at %v, want %v", e.Code, e.ScheduledAt, want)
		}
	}
}

func TestCheckConsistency(t *testing.T) {
	slots := []models.Slot{{Number: 1}, {Number: 2}}
	valid := []models.ScheduleEntry{
		{Code: "GA_R1_M1", Home: models.SlotSource{Slot: 1}, Away: models.SlotSource{Slot: 2}},
		{Code: "PL1-2_M1", Home: models.Winner("GA_R1_M1"), Away: models.PlaceholderSource{Label: "Guest"}},
	}

	tests := []struct {
		name    string
		entries []models.ScheduleEntry
		wantErr error
	}{
		{name: "valid", entries: valid},
		{
			name:    "duplicate code",
			entries: append(append([]models.ScheduleEntry(nil), valid...), valid[0]),
			wantErr: ErrDuplicateMatchCode,
		},
		{
			name:    "unknown slot",
			entries: []models.ScheduleEntry{{Code: "X", Home: models.SlotSource{Slot: 3}, Away: models.SlotSource{Slot: 1}}},
			wantErr: ErrUnknownSlot,
		},
		{
			name:    "unknown match code",
			entries: []models.ScheduleEntry{{Code: "X", Home: models.Loser("KO_R9_M1"), Away: models.SlotSource{Slot: 1}}},
			wantErr: ErrUnknownMatchCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConsistency(slots, tt.entries)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrInconsistentSchedule) {
				t.Errorf("expected %v wrapped in ErrInconsistentSchedule, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegenerateStructure_UnevenQualifiersAvoidGroupMates(t *testing.T) {
	cfg := models.TournamentConfig{ID: 12, TeamCount: 12, GroupCount: 3, KnockoutRounds: 3, ClassificationMode: models.ClassificationTop4}
	structure, err := RegenerateStructure(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstRound := 0
	for _, e := range structure.Entries {
		if e.Phase != models.PhaseKnockout || e.RoundNumber != 1 {
			continue
		}
		firstRound++
		home := e.Home.(models.GroupPositionSource)
		away := e.Away.(models.GroupPositionSource)
		if home.Group == away.Group {
			t.Errorf("%s pairs group mates %s%d and %s%d", e.Code, home.Group, home.Position, away.Group, away.Position)
		}
	}
	if firstRound != 4 {
		t.Errorf("expected 4 first round matches, got %d", firstRound)
	}
}

func TestRegenerateStructure_EffectiveKnockoutRounds(t *testing.T) {
	tests := []struct {
		name        string
		cfg         models.TournamentConfig
		wantRounds  int
		wantEntries int
	}{
		{
			name:        "two teams play only the group match",
			cfg:         models.TournamentConfig{TeamCount: 2, GroupCount: 1, KnockoutRounds: 1, ClassificationMode: models.ClassificationTop4},
			wantRounds:  0,
			wantEntries: 1,
		},
		{
			name:        "sixteen teams cap the field at eight",
			cfg:         models.TournamentConfig{TeamCount: 16, GroupCount: 2, KnockoutRounds: 4, ClassificationMode: models.ClassificationTop4},
			wantRounds:  3,
			wantEntries: 56 + 7 + 1,
		},
		{
			name:        "eight teams in two groups",
			cfg:         eightTeamConfig(),
			wantRounds:  2,
			wantEntries: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structure, err := RegenerateStructure(tt.cfg, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if structure.KnockoutRounds != tt.wantRounds {
				t.Errorf("generated %d knockout rounds, want %d", structure.KnockoutRounds, tt.wantRounds)
			}
			if len(structure.Entries) != tt.wantEntries {
				t.Errorf("expected %d entries, got %d", tt.wantEntries, len(structure.Entries))
			}
		})
	}
}
