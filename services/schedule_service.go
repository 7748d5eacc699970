package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/resolver"
	"golang.org/x/sync/errgroup"
)

// tournamentView is everything a schedule or standings request reads.
type tournamentView struct {
	entries []models.ScheduleEntry
	slots   []models.Slot
	results []models.MatchResult
	teams   map[int]string
	live    *models.LiveSnapshot
}

func (s *tournamentService) loadView(ctx context.Context, tournamentID int) (*tournamentView, error) {
	if _, err := s.loadConfig(ctx, tournamentID); err != nil {
		return nil, err
	}

	view := &tournamentView{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, err := s.scheduleRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load schedule of tournament %d: %w", tournamentID, err)
		}
		view.entries = entries
		return nil
	})
	g.Go(func() error {
		slots, err := s.slotRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load slots of tournament %d: %w", tournamentID, err)
		}
		view.slots = slots
		return nil
	})
	g.Go(func() error {
		results, err := s.resultRepo.ListByTournament(gCtx, tournamentID, nil)
		if err != nil {
			return fmt.Errorf("failed to load results of tournament %d: %w", tournamentID, err)
		}
		view.results = finishedResults(results)
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListNames(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load team registry: %w", err)
		}
		view.teams = teams
		return nil
	})
	g.Go(func() error {
		live, err := s.resultRepo.GetLiveSnapshot(gCtx, tournamentID)
		if err != nil {
			// The scoreboard being unavailable only hides the live match.
			s.logger.Warn("live snapshot unavailable", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
			return nil
		}
		view.live = live
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// groupLabels lists the groups of the slot registry in first-seen order.
// finishedResults drops rows without a finish time. A match in progress is
// only known through the live snapshot.
func finishedResults(results []models.MatchResult) []models.MatchResult {
	finished := make([]models.MatchResult, 0, len(results))
	for _, res := range results {
		if res.FinishedAt != nil {
			finished = append(finished, res)
		}
	}
	return finished
}

func (v *tournamentView) groupLabels() []string {
	seen := make(map[string]bool)
	labels := make([]string, 0)
	for _, slot := range v.slots {
		if slot.Group == "" || seen[slot.Group] {
			continue
		}
		seen[slot.Group] = true
		labels = append(labels, slot.Group)
	}
	return labels
}

// roster lists the registered team names assigned to a group's slots.
func (v *tournamentView) roster(group string) []string {
	names := make([]string, 0)
	for _, slot := range v.slots {
		if slot.TeamID == nil || !models.SameGroup(slot.Group, group) {
			continue
		}
		if name, ok := v.teams[*slot.TeamID]; ok {
			names = append(names, name)
		}
	}
	return names
}

// complete reports whether every group fixture of group has a recorded result.
func (v *tournamentView) complete(group string) bool {
	played := make(map[string]bool, len(v.results))
	for _, res := range v.results {
		if res.Code != "" {
			played[res.Code] = true
		}
	}
	for _, e := range v.entries {
		if e.Phase == models.PhaseGroup && models.SameGroup(e.Group, group) && !played[e.Code] {
			return false
		}
	}
	return true
}

func (s *tournamentService) table(v *tournamentView, group string) models.GroupTable {
	return models.GroupTable{
		Group:    group,
		Rows:     s.calculator.Compute(group, v.results, v.live, v.roster(group)),
		Complete: v.complete(group),
	}
}

// tables computes every group table concurrently. Each goroutine only
// writes its own index.
func (s *tournamentService) tables(ctx context.Context, v *tournamentView) ([]models.GroupTable, error) {
	labels := v.groupLabels()
	tables := make([]models.GroupTable, len(labels))

	g, gCtx := errgroup.WithContext(ctx)
	for i, label := range labels {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			tables[i] = s.table(v, label)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// GetSchedule returns every entry of the stored schedule with both
// participants resolved against current results and standings.
func (s *tournamentService) GetSchedule(ctx context.Context, tournamentID int) ([]models.ResolvedMatch, error) {
	view, err := s.loadView(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	tables, err := s.tables(ctx, view)
	if err != nil {
		return nil, err
	}

	resolved, err := resolver.ResolveSchedule(view.entries, resolver.Context{
		Slots:   view.slots,
		Teams:   view.teams,
		Results: view.results,
		Tables:  tables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule of tournament %d: %w", tournamentID, err)
	}
	return resolved, nil
}

// GetStandings returns the current table of one group, live match included.
func (s *tournamentService) GetStandings(ctx context.Context, tournamentID int, group string) (*models.GroupTable, error) {
	view, err := s.loadView(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, label := range view.groupLabels() {
		if models.SameGroup(label, group) {
			t := s.table(view, label)
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, group)
}
