package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

// PlacementCode is the code of the i-th match (1-based) in the placement
// bracket ranking places first..last. Place ranges never repeat across
// branches, so codes cannot collide with each other or with KO_ codes.
func PlacementCode(first, last, match int) string {
	return fmt.Sprintf("PL%d-%d_M%d", first, last, match)
}

// GenerateClassification builds placement matches from the losers of the
// generated knockout rounds. top4 only plays for 3rd/4th between the
// semifinal losers; all ranks the losers of every round recursively.
func GenerateClassification(tournamentID int, rounds []KnockoutRound, mode models.ClassificationMode) []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0)
	for _, round := range rounds {
		if mode == models.ClassificationTop4 && round.Participants != 4 {
			continue
		}
		if len(round.Codes) < 2 {
			continue
		}

		losers := make([]models.Source, len(round.Codes))
		for i, code := range round.Codes {
			losers[i] = models.Loser(code)
		}
		advancing := round.Participants - len(round.Codes)
		entries = append(entries, placementBracket(tournamentID, losers, advancing+1, round.Round+1)...)
	}
	return entries
}

// placementBracket ranks len(sources) teams for places base..base+k-1.
// Two teams play one deciding match; larger fields play a round and the
// winners and losers each continue in their own bracket.
func placementBracket(tournamentID int, sources []models.Source, base, round int) []models.ScheduleEntry {
	k := len(sources)
	if k < 2 {
		return nil
	}

	if k == 2 {
		return []models.ScheduleEntry{{
			TournamentID: tournamentID,
			Phase:        models.PhasePlacement,
			StageLabel:   fmt.Sprintf("Match for place %d/%d", base, base+1),
			RoundNumber:  round,
			MatchOrder:   1,
			Code:         PlacementCode(base, base+1, 1),
			Home:         sources[0],
			Away:         sources[1],
		}}
	}

	last := base + k - 1
	label := fmt.Sprintf("Placement round %d-%d", base, last)
	pairs, carry := neighbourPairs(sources)

	entries := make([]models.ScheduleEntry, 0, len(pairs))
	winners := make([]models.Source, 0, len(pairs)+1)
	losers := make([]models.Source, 0, len(pairs))
	for i, p := range pairs {
		code := PlacementCode(base, last, i+1)
		entries = append(entries, models.ScheduleEntry{
			TournamentID: tournamentID,
			Phase:        models.PhasePlacement,
			StageLabel:   label,
			RoundNumber:  round,
			MatchOrder:   i + 1,
			Code:         code,
			Home:         p[0],
			Away:         p[1],
		})
		winners = append(winners, models.Winner(code))
		losers = append(losers, models.Loser(code))
	}
	if carry != nil {
		winners = append(winners, carry)
	}

	entries = append(entries, placementBracket(tournamentID, winners, base, round+1)...)
	entries = append(entries, placementBracket(tournamentID, losers, base+len(winners), round+1)...)
	return entries
}

// neighbourPairs pairs sources two by two in order. The last source of an
// odd field is returned separately.
func neighbourPairs(sources []models.Source) ([][2]models.Source, models.Source) {
	n := len(sources)
	pairs := make([][2]models.Source, 0, n/2)
	for i := 0; i+1 < n; i += 2 {
		pairs = append(pairs, [2]models.Source{sources[i], sources[i+1]})
	}
	if n%2 == 1 {
		return pairs, sources[n-1]
	}
	return pairs, nil
}
