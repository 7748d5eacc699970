package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// GroupLabel returns the display label of the i-th group (0-based):
// A..Z, then AA, AB, ...
func GroupLabel(i int) string {
	label := ""
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		label = string(rune('A'+(n-1)%26)) + label
	}
	return label
}

// GroupSizes splits teamCount into groupCount contiguous blocks; the first
// teamCount%groupCount groups get one extra slot.
func GroupSizes(teamCount, groupCount int) []int {
	if groupCount < 1 {
		return nil
	}
	sizes := make([]int, groupCount)
	base, extra := teamCount/groupCount, teamCount%groupCount
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// BuildSlots rebuilds the slot registry for cfg. Team assignments and
// placeholders of slot numbers that survive the rebuild are kept; every slot
// gets its group from the contiguous block layout.
func BuildSlots(cfg models.TournamentConfig, existing []models.Slot) ([]models.Slot, []models.Group) {
	byNumber := make(map[int]models.Slot, len(existing))
	for _, s := range existing {
		byNumber[s.Number] = s
	}

	slots := make([]models.Slot, 0, cfg.TeamCount)
	groups := make([]models.Group, 0, cfg.GroupCount)
	number := 1
	for gi, size := range GroupSizes(cfg.TeamCount, cfg.GroupCount) {
		group := models.Group{Label: GroupLabel(gi), Slots: make([]int, 0, size)}
		for j := 0; j < size; j++ {
			slot := models.Slot{TournamentID: cfg.ID, Number: number, Group: group.Label}
			if prev, ok := byNumber[number]; ok {
				slot.TeamID = prev.TeamID
				slot.Placeholder = prev.Placeholder
			}
			slots = append(slots, slot)
			group.Slots = append(group.Slots, number)
			number++
		}
		groups = append(groups, group)
	}
	return slots, groups
}

// GroupsFromSlots reconstructs groups from an already persisted registry,
// ordered by label length then label, slots ascending.
func GroupsFromSlots(slots []models.Slot) []models.Group {
	index := make(map[string]*models.Group)
	order := make([]string, 0)
	for _, s := range slots {
		g, ok := index[s.Group]
		if !ok {
			g = &models.Group{Label: s.Group}
			index[s.Group] = g
			order = append(order, s.Group)
		}
		g.Slots = append(g.Slots, s.Number)
	}

	sort.Slice(order, func(i, j int) bool {
		if len(order[i]) != len(order[j]) {
			return len(order[i]) < len(order[j])
		}
		return order[i] < order[j]
	})

	groups := make([]models.Group, 0, len(order))
	for _, label := range order {
		g := index[label]
		sort.Ints(g.Slots)
		groups = append(groups, *g)
	}
	return groups
}
