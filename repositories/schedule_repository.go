package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/lib/pq"
)

const scheduleCodeConstraint = "schedule_entries_tournament_id_code_key"

type ScheduleRepository interface {
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.ScheduleEntry, error)
	// ReplaceAll deletes the tournament's schedule and inserts entries.
	// It must run inside the caller's transaction.
	ReplaceAll(ctx context.Context, tx *sql.Tx, tournamentID int, entries []models.ScheduleEntry) error
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.ScheduleEntry, error) {
	query := `
		SELECT tournament_id, phase, stage_label, group_label, round_number, match_order, stage_order,
		       code, home_source, away_source, scheduled_at
		FROM schedule_entries
		WHERE tournament_id = $1
		ORDER BY stage_order ASC`

	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	entries := make([]models.ScheduleEntry, 0)
	for rows.Next() {
		var (
			e           models.ScheduleEntry
			home, away  []byte
			scheduledAt sql.NullTime
		)
		if scanErr := rows.Scan(
			&e.TournamentID,
			&e.Phase,
			&e.StageLabel,
			&e.Group,
			&e.RoundNumber,
			&e.MatchOrder,
			&e.StageOrder,
			&e.Code,
			&home,
			&away,
			&scheduledAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", scanErr)
		}
		if e.Home, err = models.UnmarshalSource(home); err != nil {
			return nil, fmt.Errorf("entry %s home source: %w", e.Code, err)
		}
		if e.Away, err = models.UnmarshalSource(away); err != nil {
			return nil, fmt.Errorf("entry %s away source: %w", e.Code, err)
		}
		if scheduledAt.Valid {
			t := scheduledAt.Time
			e.ScheduledAt = &t
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during schedule rows iteration: %w", err)
	}
	return entries, nil
}

func (r *postgresScheduleRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, tournamentID int, entries []models.ScheduleEntry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete schedule of tournament %d: %w", tournamentID, err)
	}
	if len(entries) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("schedule_entries",
		"tournament_id", "phase", "stage_label", "group_label", "round_number", "match_order",
		"stage_order", "code", "home_source", "away_source", "scheduled_at"))
	if err != nil {
		return fmt.Errorf("failed to prepare schedule copy: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		home, err := models.MarshalSource(e.Home)
		if err != nil {
			return fmt.Errorf("entry %s home source: %w", e.Code, err)
		}
		away, err := models.MarshalSource(e.Away)
		if err != nil {
			return fmt.Errorf("entry %s away source: %w", e.Code, err)
		}
		// jsonb columns are sent as text; []byte would be copied as bytea.
		if _, err := stmt.ExecContext(ctx,
			tournamentID, e.Phase, e.StageLabel, e.Group, e.RoundNumber, e.MatchOrder,
			e.StageOrder, e.Code, string(home), string(away), e.ScheduledAt,
		); err != nil {
			return handleScheduleError(err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return handleScheduleError(err)
	}
	return nil
}

func handleScheduleError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == scheduleCodeConstraint {
		return fmt.Errorf("%w: %w: %s", brackets.ErrInconsistentSchedule, brackets.ErrDuplicateMatchCode, pqErr.Detail)
	}
	return fmt.Errorf("failed to copy schedule entries: %w", err)
}
