package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

// Pairing is one fixture of a round, by slot number.
type Pairing struct {
	Home int
	Away int
}

// bye marks the empty seat appended to odd-sized groups. Slot numbers start at 1.
const bye = 0

// RoundRobin produces every round of a single round-robin with the circle
// method: the first participant stays fixed, the rest rotate one seat per
// round, and seat i meets seat n-1-i. An odd field gets a bye seat, and
// pairings against it are dropped. The output depends only on the order of
// slots.
func RoundRobin(slots []int) [][]Pairing {
	if len(slots) < 2 {
		return nil
	}

	seats := make([]int, len(slots), len(slots)+1)
	copy(seats, slots)
	if len(seats)%2 == 1 {
		seats = append(seats, bye)
	}
	n := len(seats)

	rounds := make([][]Pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([]Pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			home, away := seats[i], seats[n-1-i]
			if home == bye || away == bye {
				continue
			}
			round = append(round, Pairing{Home: home, Away: away})
		}
		rounds = append(rounds, round)

		// Rotate everyone but the first seat one position clockwise.
		last := seats[n-1]
		copy(seats[2:], seats[1:n-1])
		seats[1] = last
	}
	return rounds
}

// groupStageEntries turns each group's round-robin into schedule entries.
// Rounds are interleaved across groups so round 1 of every group comes first.
func groupStageEntries(tournamentID int, groups []models.Group) []models.ScheduleEntry {
	perGroup := make([][][]Pairing, len(groups))
	maxRounds := 0
	for i, g := range groups {
		perGroup[i] = RoundRobin(g.Slots)
		if len(perGroup[i]) > maxRounds {
			maxRounds = len(perGroup[i])
		}
	}

	entries := make([]models.ScheduleEntry, 0)
	for r := 0; r < maxRounds; r++ {
		for gi, g := range groups {
			if r >= len(perGroup[gi]) {
				continue
			}
			for mi, p := range perGroup[gi][r] {
				entries = append(entries, models.ScheduleEntry{
					TournamentID: tournamentID,
					Phase:        models.PhaseGroup,
					StageLabel:   "Group " + g.Label,
					Group:        g.Label,
					RoundNumber:  r + 1,
					MatchOrder:   mi + 1,
					Code:         fmt.Sprintf("G%s_R%d_M%d", g.Label, r+1, mi+1),
					Home:         models.SlotSource{Slot: p.Home, Group: g.Label},
					Away:         models.SlotSource{Slot: p.Away, Group: g.Label},
				})
			}
		}
	}
	return entries
}
