package brackets

import (
	"sort"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

// orderCursor hands out stage_order values to entries in schedule order.
type orderCursor struct {
	next int
}

func (c *orderCursor) take() int {
	c.next++
	return c.next
}

// RegenerateStructure validates cfg and builds the whole tournament from
// scratch: slot registry, group round-robins, knockout bracket and
// placement matches. The result replaces any previous structure wholesale;
// the same cfg and slots always produce the same output.
func RegenerateStructure(cfg models.TournamentConfig, existing []models.Slot) (*models.Structure, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	slots, groups := BuildSlots(cfg, existing)
	groupEntries := groupStageEntries(cfg.ID, groups)

	var bracket []models.ScheduleEntry
	knockoutRounds := 0
	sources := qualifierSources(DistributeQualifiers(cfg, groups))
	if len(sources) >= 2 {
		ko := GenerateKnockout(cfg.ID, sources, cfg.KnockoutRounds)
		knockoutRounds = len(ko.Rounds)
		bracket = append(bracket, ko.Entries...)
		bracket = append(bracket, GenerateClassification(cfg.ID, ko.Rounds, cfg.ClassificationMode)...)
	}
	orderBracket(bracket)

	entries := make([]models.ScheduleEntry, 0, len(groupEntries)+len(bracket))
	entries = append(entries, groupEntries...)
	entries = append(entries, bracket...)

	cursor := &orderCursor{}
	for i := range entries {
		entries[i].StageOrder = cursor.take()
	}
	assignTimes(cfg, entries)

	if err := CheckConsistency(slots, entries); err != nil {
		return nil, err
	}
	return &models.Structure{Slots: slots, Groups: groups, Entries: entries, KnockoutRounds: knockoutRounds}, nil
}

// orderBracket sorts knockout and placement entries by round; inside a
// round placement matches come first so the final is always last.
func orderBracket(entries []models.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].RoundNumber != entries[j].RoundNumber {
			return entries[i].RoundNumber < entries[j].RoundNumber
		}
		return entries[i].Phase == models.PhasePlacement && entries[j].Phase != models.PhasePlacement
	})
}

func assignTimes(cfg models.TournamentConfig, entries []models.ScheduleEntry) {
	if cfg.StartsAt == nil || cfg.MatchMinutes <= 0 {
		return
	}
	step := cfg.MatchDuration()
	for i := range entries {
		at := cfg.StartsAt.Add(time.Duration(entries[i].StageOrder-1) * step)
		entries[i].ScheduledAt = &at
	}
}

// CheckConsistency rejects schedules that would break code-based lookups:
// duplicate codes, slot sources missing from the registry and match sources
// pointing at codes that do not exist.
func CheckConsistency(slots []models.Slot, entries []models.ScheduleEntry) error {
	known := make(map[int]bool, len(slots))
	for _, s := range slots {
		known[s.Number] = true
	}

	codes := make(map[string]bool, len(entries))
	for _, e := range entries {
		if codes[e.Code] {
			return consistencyError(ErrDuplicateMatchCode, "%s", e.Code)
		}
		codes[e.Code] = true
	}

	for _, e := range entries {
		for _, src := range []models.Source{e.Home, e.Away} {
			switch s := src.(type) {
			case models.SlotSource:
				if !known[s.Slot] {
					return consistencyError(ErrUnknownSlot, "entry %s references slot %d", e.Code, s.Slot)
				}
			case models.PreviousMatchSource:
				if !codes[s.Code] {
					return consistencyError(ErrUnknownMatchCode, "entry %s references %s", e.Code, s.Code)
				}
			}
		}
	}
	return nil
}
