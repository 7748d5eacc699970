// Package standings computes group tables from recorded results.
package standings

import (
	"sort"
	"strings"

	"github.com/Dosada05/tournament-engine/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// Calculator ranks group tables. Only the collation language is stored;
// each call builds its own collator, so one Calculator can serve
// concurrent requests.
type Calculator struct {
	lang language.Tag
}

func NewCalculator(lang language.Tag) *Calculator {
	return &Calculator{lang: lang}
}

// Compute builds the table of group from results. Results of other groups
// are ignored. roster lists teams known to be in the group; they appear with
// zero games until they play. A live snapshot of the group counts as one
// extra match once it has left its initial state.
// Rows are ordered by points, score difference, score for, then team name.
func (c *Calculator) Compute(group string, results []models.MatchResult, live *models.LiveSnapshot, roster []string) []models.StandingsEntry {
	key := models.CanonicalGroup(group)
	rows := make(map[string]*models.StandingsEntry)
	row := func(team string) *models.StandingsEntry {
		team = strings.TrimSpace(team)
		r, ok := rows[team]
		if !ok {
			r = &models.StandingsEntry{Team: team}
			rows[team] = r
		}
		return r
	}

	for _, team := range roster {
		if strings.TrimSpace(team) != "" {
			row(team)
		}
	}

	recorded := make(map[string]bool)
	for _, res := range results {
		if models.CanonicalGroup(res.Group) != key {
			continue
		}
		credit(row(res.HomeTeam), row(res.AwayTeam), res)
		if res.Code != "" {
			recorded[res.Code] = true
		}
	}
	// A live match that already has a recorded result is not counted twice.
	if live != nil && live.Started() && models.CanonicalGroup(live.Group) == key && !(live.Code != "" && recorded[live.Code]) {
		credit(row(live.HomeTeam), row(live.AwayTeam), live.AsResult())
	}

	table := make([]models.StandingsEntry, 0, len(rows))
	for _, r := range rows {
		r.ScoreDifference = r.ScoreFor - r.ScoreAgainst
		table = append(table, *r)
	}

	col := collate.New(c.lang)
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ScoreDifference != b.ScoreDifference {
			return a.ScoreDifference > b.ScoreDifference
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		if cmp := col.CompareString(a.Team, b.Team); cmp != 0 {
			return cmp < 0
		}
		return a.Team < b.Team
	})

	for i := range table {
		table[i].Position = i + 1
	}
	return table
}

func credit(home, away *models.StandingsEntry, res models.MatchResult) {
	home.GamesPlayed++
	away.GamesPlayed++
	home.ScoreFor += res.HomeScore
	home.ScoreAgainst += res.AwayScore
	away.ScoreFor += res.AwayScore
	away.ScoreAgainst += res.HomeScore
	home.Penalties += res.HomePenalties
	away.Penalties += res.AwayPenalties

	switch {
	case res.HomeScore > res.AwayScore:
		home.Wins++
		home.Points += pointsForWin
		away.Losses++
	case res.HomeScore < res.AwayScore:
		away.Wins++
		away.Points += pointsForWin
		home.Losses++
	default:
		home.Draws++
		away.Draws++
		home.Points += pointsForDraw
		away.Points += pointsForDraw
	}
}
