package brackets

import (
	"github.com/Dosada05/tournament-engine/models"
)

// largestPowerOfTwoBelow returns the largest power of two strictly below n,
// or 0 when n < 2.
func largestPowerOfTwoBelow(n int) int {
	if n < 2 {
		return 0
	}
	p := 1
	for p*2 < n {
		p *= 2
	}
	return p
}

// KnockoutEntrants is the size of the knockout field: 2^knockoutRounds,
// capped at the largest power of two below teamCount so the group phase
// always eliminates someone. A result below 2 means no knockout stage.
func KnockoutEntrants(teamCount, knockoutRounds int) int {
	if knockoutRounds < 1 {
		return 0
	}
	requested := 1
	for i := 0; i < knockoutRounds && requested < teamCount; i++ {
		requested *= 2
	}
	entrants := largestPowerOfTwoBelow(teamCount)
	if requested < entrants {
		entrants = requested
	}
	if entrants < 2 {
		return 0
	}
	return entrants
}

// DistributeQualifiers spreads the knockout entrants across groups in label
// order: an even base share, one extra for the first entrants%groups groups,
// every share capped at the group's size. Slots lost to a cap go to the
// next groups with room left, so the counts always add up to the entrants.
func DistributeQualifiers(cfg models.TournamentConfig, groups []models.Group) []models.Qualifiers {
	out := make([]models.Qualifiers, len(groups))
	for i, g := range groups {
		out[i] = models.Qualifiers{Group: g.Label, Positions: []int{}}
	}
	if len(groups) == 0 {
		return out
	}

	total := 0
	for _, g := range groups {
		total += len(g.Slots)
	}
	entrants := KnockoutEntrants(cfg.TeamCount, cfg.KnockoutRounds)
	if entrants > total {
		entrants = largestPowerOfTwoBelow(total + 1)
	}
	if entrants < 2 {
		return out
	}

	base, extra := entrants/len(groups), entrants%len(groups)
	sum := 0
	for i, g := range groups {
		count := base
		if i < extra {
			count++
		}
		if count > len(g.Slots) {
			count = len(g.Slots)
		}
		out[i].Count = count
		sum += count
	}

	for i := 0; sum < entrants && i < len(groups); i++ {
		room := len(groups[i].Slots) - out[i].Count
		for room > 0 && sum < entrants {
			out[i].Count++
			room--
			sum++
		}
	}
	for i := len(groups) - 1; sum > entrants && i >= 0; i-- {
		for out[i].Count > 0 && sum > entrants {
			out[i].Count--
			sum--
		}
	}

	for i := range out {
		for p := 1; p <= out[i].Count; p++ {
			out[i].Positions = append(out[i].Positions, p)
		}
	}
	return out
}

// qualifierSources lists the knockout entrants group-major, position-minor.
func qualifierSources(qualifiers []models.Qualifiers) []models.Source {
	sources := make([]models.Source, 0)
	for _, q := range qualifiers {
		for _, p := range q.Positions {
			sources = append(sources, models.GroupPositionSource{Group: q.Group, Position: p})
		}
	}
	return sources
}
