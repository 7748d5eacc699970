package resolver

import (
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

func slotLabel(number int) string {
	return fmt.Sprintf("Team %d", number)
}

func positionLabel(group string, position int) string {
	return fmt.Sprintf("Position %d Group %s", position, group)
}

func outcomeLabel(outcome models.MatchOutcome, stage string) string {
	word := "Winner"
	if outcome == models.OutcomeLoser {
		word = "Loser"
	}
	return fmt.Sprintf("%s of %s", word, stage)
}

// stageName describes a referenced match for pending labels. The match order
// is appended when several entries share the stage label.
func (r *Resolver) stageName(code string) string {
	entry, ok := r.entries[code]
	if !ok {
		return code
	}
	if r.stageCounts[entry.StageLabel] > 1 {
		return fmt.Sprintf("%s %d", entry.StageLabel, entry.MatchOrder)
	}
	return entry.StageLabel
}
