package brackets

import (
	"github.com/Dosada05/tournament-engine/models"
)

// MaxKnockoutRounds is floor(log2(teamCount)).
func MaxKnockoutRounds(teamCount int) int {
	rounds := 0
	for size := 2; size <= teamCount; size *= 2 {
		rounds++
	}
	return rounds
}

// ValidateConfig checks the tournament parameters before any generation runs.
func ValidateConfig(cfg models.TournamentConfig) error {
	if cfg.GroupCount < 1 {
		return configError(ErrGroupCountTooSmall, "got %d", cfg.GroupCount)
	}
	if cfg.TeamCount < 2 {
		return configError(ErrTeamCountTooSmall, "got %d", cfg.TeamCount)
	}
	if cfg.GroupCount > cfg.TeamCount {
		return configError(ErrTooManyGroups, "%d groups for %d teams", cfg.GroupCount, cfg.TeamCount)
	}
	if cfg.KnockoutRounds < 0 {
		return configError(ErrNegativeKnockoutRounds, "got %d", cfg.KnockoutRounds)
	}
	if limit := MaxKnockoutRounds(cfg.TeamCount); cfg.KnockoutRounds > limit {
		return configError(ErrTooManyKnockoutRounds, "%d rounds requested, %d teams allow at most %d", cfg.KnockoutRounds, cfg.TeamCount, limit)
	}
	switch cfg.ClassificationMode {
	case models.ClassificationTop4, models.ClassificationAll:
	default:
		return configError(ErrUnknownClassificationMode, "%q", cfg.ClassificationMode)
	}
	return nil
}
