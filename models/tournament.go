package models

import "time"

// ClassificationMode controls which eliminated teams get placement matches.
type ClassificationMode string

const (
	ClassificationTop4 ClassificationMode = "top4"
	ClassificationAll  ClassificationMode = "all"
)

// TournamentConfig holds the parameters every structure is generated from.
type TournamentConfig struct {
	ID                 int                `json:"id" db:"id"`
	Name               string             `json:"name" db:"name"`
	TeamCount          int                `json:"team_count" db:"team_count"`
	GroupCount         int                `json:"group_count" db:"group_count"`
	KnockoutRounds     int                `json:"knockout_rounds" db:"knockout_rounds"`
	ClassificationMode ClassificationMode `json:"classification_mode" db:"classification_mode"`

	// Optional timing. Both must be set for entries to carry a ScheduledAt.
	StartsAt     *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	MatchMinutes int        `json:"match_minutes,omitempty" db:"match_minutes"`
}

// MatchDuration returns the configured slot length, zero when unset.
func (c TournamentConfig) MatchDuration() time.Duration {
	return time.Duration(c.MatchMinutes) * time.Minute
}
