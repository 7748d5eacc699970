package models

// StandingsEntry is one row of a computed group table. It is never persisted.
type StandingsEntry struct {
	Position        int    `json:"position"`
	Team            string `json:"team"`
	GamesPlayed     int    `json:"games_played"`
	Wins            int    `json:"wins"`
	Draws           int    `json:"draws"`
	Losses          int    `json:"losses"`
	ScoreFor        int    `json:"score_for"`
	ScoreAgainst    int    `json:"score_against"`
	ScoreDifference int    `json:"score_difference"`
	Points          int    `json:"points"`
	Penalties       int    `json:"penalties"`
}

// GroupTable is a group's standings plus whether every fixture has a result.
type GroupTable struct {
	Group    string           `json:"group"`
	Rows     []StandingsEntry `json:"rows"`
	Complete bool             `json:"complete"`
}
