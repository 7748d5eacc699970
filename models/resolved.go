package models

// Participant is a resolved Source ready for display.
type Participant struct {
	Label  string `json:"label"`
	TeamID *int   `json:"team_id,omitempty"`
	Team   string `json:"team,omitempty"`
	// Pending is set while the source cannot be resolved to a team yet.
	Pending bool `json:"pending"`
	// Provisional marks a group position taken from an unfinished group.
	Provisional bool `json:"provisional,omitempty"`
}

// ResolvedMatch is a schedule entry with both sides resolved. Entry is a
// named field so the entry's own JSON encoding is not promoted.
type ResolvedMatch struct {
	Entry           ScheduleEntry `json:"entry"`
	HomeParticipant Participant   `json:"home_participant"`
	AwayParticipant Participant   `json:"away_participant"`
	Result          *MatchResult  `json:"result,omitempty"`
}

// Qualifiers is the number of knockout entrants a group sends and the
// standings positions that qualify.
type Qualifiers struct {
	Group     string `json:"group"`
	Count     int    `json:"count"`
	Positions []int  `json:"positions"`
}
