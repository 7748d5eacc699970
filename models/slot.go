package models

// Slot is a numbered position in the tournament, eventually bound to a team.
type Slot struct {
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Number       int     `json:"number" db:"number"`
	Group        string  `json:"group" db:"group_label"`
	TeamID       *int    `json:"team_id,omitempty" db:"team_id"`
	Placeholder  *string `json:"placeholder,omitempty" db:"placeholder"`
}

// Group is one group of the round-robin phase together with its slots in order.
type Group struct {
	Label string `json:"label"`
	Slots []int  `json:"slots"`
}
