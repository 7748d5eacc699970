// Package resolver turns schedule sources into display-ready participants.
package resolver

import (
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
)

// Context is the data already loaded from persistence that sources are
// resolved against.
type Context struct {
	Slots   []models.Slot
	Teams   map[int]string
	Results []models.MatchResult
	Tables  []models.GroupTable
}

// Resolver answers one-hop lookups for sources of a single schedule.
// PreviousMatch sources only read the referenced match's recorded result,
// never its own sources.
type Resolver struct {
	slots       map[int]models.Slot
	teams       map[int]string
	teamIDs     map[string]int
	results     map[string]models.MatchResult
	tables      map[string]models.GroupTable
	entries     map[string]models.ScheduleEntry
	stageCounts map[string]int
}

// New indexes ctx and the schedule arena by code.
func New(ctx Context, entries []models.ScheduleEntry) (*Resolver, error) {
	r := &Resolver{
		slots:       make(map[int]models.Slot, len(ctx.Slots)),
		teams:       ctx.Teams,
		teamIDs:     make(map[string]int, len(ctx.Teams)),
		results:     IndexResults(ctx.Results),
		tables:      make(map[string]models.GroupTable, len(ctx.Tables)),
		entries:     make(map[string]models.ScheduleEntry, len(entries)),
		stageCounts: make(map[string]int),
	}
	if r.teams == nil {
		r.teams = map[int]string{}
	}

	for _, s := range ctx.Slots {
		r.slots[s.Number] = s
	}
	ambiguous := make(map[string]bool)
	for id, name := range r.teams {
		if _, seen := r.teamIDs[name]; seen {
			ambiguous[name] = true
		}
		r.teamIDs[name] = id
	}
	for name := range ambiguous {
		delete(r.teamIDs, name)
	}
	for _, t := range ctx.Tables {
		r.tables[models.CanonicalGroup(t.Group)] = t
	}
	for _, e := range entries {
		if _, dup := r.entries[e.Code]; dup {
			return nil, fmt.Errorf("%w: %w: %s", brackets.ErrInconsistentSchedule, brackets.ErrDuplicateMatchCode, e.Code)
		}
		r.entries[e.Code] = e
		r.stageCounts[e.StageLabel]++
	}
	return r, nil
}

// IndexResults maps results by code. When a code was recorded more than
// once the most recently finished result wins.
func IndexResults(results []models.MatchResult) map[string]models.MatchResult {
	index := make(map[string]models.MatchResult, len(results))
	for _, res := range results {
		if res.Code == "" {
			continue
		}
		prev, ok := index[res.Code]
		if ok && prev.FinishedAt != nil && (res.FinishedAt == nil || res.FinishedAt.Before(*prev.FinishedAt)) {
			continue
		}
		index[res.Code] = res
	}
	return index
}

// Resolve returns the participant a source currently stands for. Sources that
// cannot be resolved yet come back with Pending set and a descriptive label.
func (r *Resolver) Resolve(src models.Source) models.Participant {
	switch s := src.(type) {
	case models.SlotSource:
		return r.resolveSlot(s)
	case models.GroupPositionSource:
		return r.resolvePosition(s)
	case models.PreviousMatchSource:
		return r.resolvePrevious(s)
	case models.PlaceholderSource:
		return models.Participant{Label: s.Label}
	case nil:
		return models.Participant{Label: "TBD", Pending: true}
	default:
		return models.Participant{Label: string(src.Kind()), Pending: true}
	}
}

func (r *Resolver) resolveSlot(s models.SlotSource) models.Participant {
	slot, ok := r.slots[s.Slot]
	if ok && slot.TeamID != nil {
		if name, named := r.teams[*slot.TeamID]; named {
			id := *slot.TeamID
			return models.Participant{Label: name, Team: name, TeamID: &id}
		}
	}
	if ok && slot.Placeholder != nil && strings.TrimSpace(*slot.Placeholder) != "" {
		return models.Participant{Label: *slot.Placeholder, Pending: true}
	}
	return models.Participant{Label: slotLabel(s.Slot), Pending: true}
}

func (r *Resolver) resolvePosition(s models.GroupPositionSource) models.Participant {
	table, ok := r.tables[models.CanonicalGroup(s.Group)]
	if !ok || s.Position < 1 || s.Position > len(table.Rows) {
		return models.Participant{Label: positionLabel(s.Group, s.Position), Pending: true}
	}
	p := r.team(table.Rows[s.Position-1].Team)
	p.Provisional = !table.Complete
	return p
}

func (r *Resolver) resolvePrevious(s models.PreviousMatchSource) models.Participant {
	pending := models.Participant{Label: outcomeLabel(s.Result, r.stageName(s.Code)), Pending: true}
	res, ok := r.results[s.Code]
	if !ok || res.HomeScore == res.AwayScore {
		return pending
	}

	winner, loser := res.HomeTeam, res.AwayTeam
	if res.AwayScore > res.HomeScore {
		winner, loser = loser, winner
	}
	if s.Result == models.OutcomeLoser {
		return r.team(loser)
	}
	return r.team(winner)
}

// team builds a resolved participant from a team name, attaching the
// registry id when the name is unambiguous.
func (r *Resolver) team(name string) models.Participant {
	p := models.Participant{Label: name, Team: name}
	if id, ok := r.teamIDs[name]; ok {
		p.TeamID = &id
	}
	return p
}

// Result returns the recorded result for a code, if any.
func (r *Resolver) Result(code string) (models.MatchResult, bool) {
	res, ok := r.results[code]
	return res, ok
}

// ResolveSchedule resolves both sides of every entry, keeping input order.
func ResolveSchedule(entries []models.ScheduleEntry, ctx Context) ([]models.ResolvedMatch, error) {
	r, err := New(ctx, entries)
	if err != nil {
		return nil, err
	}

	out := make([]models.ResolvedMatch, 0, len(entries))
	for _, e := range entries {
		m := models.ResolvedMatch{
			Entry:           e,
			HomeParticipant: r.Resolve(e.Home),
			AwayParticipant: r.Resolve(e.Away),
		}
		if res, ok := r.Result(e.Code); ok {
			m.Result = &res
		}
		out = append(out, m)
	}
	return out, nil
}
