package models

import "time"

// MatchResult is a recorded outcome delivered by the scoreboard collaborator.
// Code links it to a ScheduleEntry when the match was played from the schedule.
type MatchResult struct {
	ID            int        `json:"id" db:"id"`
	TournamentID  int        `json:"tournament_id" db:"tournament_id"`
	Code          string     `json:"code,omitempty" db:"code"`
	Group         string     `json:"group,omitempty" db:"group_label"`
	HomeTeam      string     `json:"home_team" db:"home_team"`
	AwayTeam      string     `json:"away_team" db:"away_team"`
	HomeScore     int        `json:"home_score" db:"home_score"`
	AwayScore     int        `json:"away_score" db:"away_score"`
	HomePenalties int        `json:"home_penalties" db:"home_penalties"`
	AwayPenalties int        `json:"away_penalties" db:"away_penalties"`
	StartedAt     *time.Time `json:"started_at,omitempty" db:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty" db:"finished_at"`
}

// LiveSnapshot is the state of the match currently on the scoreboard.
type LiveSnapshot struct {
	Code          string `json:"code,omitempty"`
	Group         string `json:"group,omitempty"`
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
	HomePenalties int    `json:"home_penalties"`
	AwayPenalties int    `json:"away_penalties"`
}

// Started reports whether the snapshot has moved away from its kickoff state.
func (s LiveSnapshot) Started() bool {
	return s.HomeScore != 0 || s.AwayScore != 0 || s.HomePenalties != 0 || s.AwayPenalties != 0
}

// AsResult converts the snapshot into a result row for standings purposes.
func (s LiveSnapshot) AsResult() MatchResult {
	return MatchResult{
		Code:          s.Code,
		Group:         s.Group,
		HomeTeam:      s.HomeTeam,
		AwayTeam:      s.AwayTeam,
		HomeScore:     s.HomeScore,
		AwayScore:     s.AwayScore,
		HomePenalties: s.HomePenalties,
		AwayPenalties: s.AwayPenalties,
	}
}
