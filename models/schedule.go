package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Phase tags which generator produced a schedule entry.
type Phase string

const (
	PhaseGroup     Phase = "group"
	PhaseKnockout  Phase = "knockout"
	PhasePlacement Phase = "placement"
)

// ScheduleEntry is one generated match descriptor. Code is unique within a
// tournament and is the only way entries reference each other.
type ScheduleEntry struct {
	TournamentID int        `json:"tournament_id"`
	Phase        Phase      `json:"phase"`
	StageLabel   string     `json:"stage_label"`
	Group        string     `json:"group,omitempty"`
	RoundNumber  int        `json:"round_number"`
	MatchOrder   int        `json:"match_order"`
	StageOrder   int        `json:"stage_order"`
	Code         string     `json:"code"`
	Home         Source     `json:"-"`
	Away         Source     `json:"-"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
}

type scheduleEntryJSON struct {
	TournamentID int             `json:"tournament_id"`
	Phase        Phase           `json:"phase"`
	StageLabel   string          `json:"stage_label"`
	Group        string          `json:"group,omitempty"`
	RoundNumber  int             `json:"round_number"`
	MatchOrder   int             `json:"match_order"`
	StageOrder   int             `json:"stage_order"`
	Code         string          `json:"code"`
	Home         json.RawMessage `json:"home"`
	Away         json.RawMessage `json:"away"`
	ScheduledAt  *time.Time      `json:"scheduled_at,omitempty"`
}

func (e ScheduleEntry) MarshalJSON() ([]byte, error) {
	home, err := MarshalSource(e.Home)
	if err != nil {
		return nil, fmt.Errorf("entry %s home: %w", e.Code, err)
	}
	away, err := MarshalSource(e.Away)
	if err != nil {
		return nil, fmt.Errorf("entry %s away: %w", e.Code, err)
	}
	return json.Marshal(scheduleEntryJSON{
		TournamentID: e.TournamentID,
		Phase:        e.Phase,
		StageLabel:   e.StageLabel,
		Group:        e.Group,
		RoundNumber:  e.RoundNumber,
		MatchOrder:   e.MatchOrder,
		StageOrder:   e.StageOrder,
		Code:         e.Code,
		Home:         home,
		Away:         away,
		ScheduledAt:  e.ScheduledAt,
	})
}

func (e *ScheduleEntry) UnmarshalJSON(data []byte) error {
	var raw scheduleEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	home, err := UnmarshalSource(raw.Home)
	if err != nil {
		return fmt.Errorf("entry %s home: %w", raw.Code, err)
	}
	away, err := UnmarshalSource(raw.Away)
	if err != nil {
		return fmt.Errorf("entry %s away: %w", raw.Code, err)
	}
	*e = ScheduleEntry{
		TournamentID: raw.TournamentID,
		Phase:        raw.Phase,
		StageLabel:   raw.StageLabel,
		Group:        raw.Group,
		RoundNumber:  raw.RoundNumber,
		MatchOrder:   raw.MatchOrder,
		StageOrder:   raw.StageOrder,
		Code:         raw.Code,
		Home:         home,
		Away:         away,
		ScheduledAt:  raw.ScheduledAt,
	}
	return nil
}

// Structure is the full output of one regeneration: the rebuilt slot
// registry and the schedule that references it. Both are replaced together.
type Structure struct {
	Slots   []Slot          `json:"slots"`
	Groups  []Group         `json:"groups"`
	Entries []ScheduleEntry `json:"entries"`

	// KnockoutRounds is the number of knockout rounds actually generated. It
	// can be lower than requested because the field is always smaller than
	// the team count.
	KnockoutRounds int `json:"knockout_rounds"`
}
