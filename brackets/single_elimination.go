package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

var roundNames = map[int]string{
	2: "Final",
	4: "Semifinal",
	8: "Quarterfinal",
}

// RoundName labels a knockout round by how many participants enter it.
func RoundName(participants int) string {
	if name, ok := roundNames[participants]; ok {
		return name
	}
	return fmt.Sprintf("Round of %d", participants)
}

// KnockoutRound records what one generated round looked like, so the
// classification generator can pick up its losers.
type KnockoutRound struct {
	Round        int
	Participants int
	Codes        []string
}

// Knockout is the output of GenerateKnockout.
type Knockout struct {
	Entries []models.ScheduleEntry
	Rounds  []KnockoutRound
}

// KnockoutCode is the code of the i-th match (1-based) of knockout round r.
func KnockoutCode(round, match int) string {
	return fmt.Sprintf("KO_R%d_M%d", round, match)
}

// GenerateKnockout builds up to maxRounds elimination rounds from the
// initial sources. Sources are first seeded by alternating groups, then every
// round folds the field (participant i meets participant len-1-i), so the
// bracket halves stay apart until the final. A first-round pair of group
// mates is traded with another match when that separates both. With an odd
// field the middle participant advances without playing.
func GenerateKnockout(tournamentID int, sources []models.Source, maxRounds int) Knockout {
	var ko Knockout
	current := seedByGroup(sources)

	for r := 1; r <= maxRounds && len(current) >= 2; r++ {
		pairs, carry := foldPairs(current)
		if r == 1 {
			separateGroupMates(pairs)
		}
		round := KnockoutRound{Round: r, Participants: len(current), Codes: make([]string, 0, len(pairs))}
		label := RoundName(len(current))

		next := make([]models.Source, 0, len(pairs)+1)
		for i, p := range pairs {
			code := KnockoutCode(r, i+1)
			ko.Entries = append(ko.Entries, models.ScheduleEntry{
				TournamentID: tournamentID,
				Phase:        models.PhaseKnockout,
				StageLabel:   label,
				RoundNumber:  r,
				MatchOrder:   i + 1,
				Code:         code,
				Home:         p[0],
				Away:         p[1],
			})
			round.Codes = append(round.Codes, code)
			next = append(next, models.Winner(code))
		}
		if carry != nil {
			next = append(next, carry)
		}

		ko.Rounds = append(ko.Rounds, round)
		current = next
	}
	return ko
}

// groupOf is the canonical group of a group position source, or "" for any
// other source.
func groupOf(src models.Source) string {
	if gp, ok := src.(models.GroupPositionSource); ok {
		return models.CanonicalGroup(gp.Group)
	}
	return ""
}

func groupMates(a, b models.Source) bool {
	g := groupOf(a)
	return g != "" && g == groupOf(b)
}

// seedByGroup takes the first source of every group in order of appearance,
// then the second of every group, and so on. Sources without a group keep
// their place as groups of one.
func seedByGroup(sources []models.Source) []models.Source {
	order := make([]string, 0)
	buckets := make(map[string][]models.Source)
	for i, src := range sources {
		key := groupOf(src)
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], src)
	}

	seeded := make([]models.Source, 0, len(sources))
	for depth := 0; len(seeded) < len(sources); depth++ {
		for _, key := range order {
			if depth < len(buckets[key]) {
				seeded = append(seeded, buckets[key][depth])
			}
		}
	}
	return seeded
}

// foldPairs pairs i with len-1-i. The unpaired middle source of an odd
// field is returned separately.
func foldPairs(sources []models.Source) ([][2]models.Source, models.Source) {
	n := len(sources)
	pairs := make([][2]models.Source, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, [2]models.Source{sources[i], sources[n-1-i]})
	}
	if n%2 == 1 {
		return pairs, sources[n/2]
	}
	return pairs, nil
}

// separateGroupMates repairs pairs of group mates in place by trading a
// participant with another pair, but only when neither resulting pair is
// made of group mates.
func separateGroupMates(pairs [][2]models.Source) {
	for i := range pairs {
		if !groupMates(pairs[i][0], pairs[i][1]) {
			continue
		}
		for j := range pairs {
			if j == i {
				continue
			}
			if !groupMates(pairs[i][0], pairs[j][1]) && !groupMates(pairs[j][0], pairs[i][1]) {
				pairs[i][1], pairs[j][1] = pairs[j][1], pairs[i][1]
				break
			}
			if !groupMates(pairs[i][0], pairs[j][0]) && !groupMates(pairs[i][1], pairs[j][1]) {
				pairs[i][1], pairs[j][0] = pairs[j][0], pairs[i][1]
				break
			}
		}
	}
}
