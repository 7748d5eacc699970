package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/lib/pq"
)

type SlotRepository interface {
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Slot, error)
	// ReplaceAll deletes every slot of the tournament and inserts slots.
	// It must run inside the caller's transaction.
	ReplaceAll(ctx context.Context, tx *sql.Tx, tournamentID int, slots []models.Slot) error
}

type postgresSlotRepository struct {
	db *sql.DB
}

func NewPostgresSlotRepository(db *sql.DB) SlotRepository {
	return &postgresSlotRepository{db: db}
}

func (r *postgresSlotRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Slot, error) {
	query := `
		SELECT tournament_id, number, group_label, team_id, placeholder
		FROM tournament_slots
		WHERE tournament_id = $1
		ORDER BY number ASC`

	rows, err := getExecutor(r.db, exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	slots := make([]models.Slot, 0)
	for rows.Next() {
		var s models.Slot
		if scanErr := rows.Scan(&s.TournamentID, &s.Number, &s.Group, &s.TeamID, &s.Placeholder); scanErr != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", scanErr)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during slot rows iteration: %w", err)
	}
	return slots, nil
}

func (r *postgresSlotRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, tournamentID int, slots []models.Slot) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_slots WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete slots of tournament %d: %w", tournamentID, err)
	}
	if len(slots) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("tournament_slots",
		"tournament_id", "number", "group_label", "team_id", "placeholder"))
	if err != nil {
		return fmt.Errorf("failed to prepare slot copy: %w", err)
	}
	defer stmt.Close()

	for _, s := range slots {
		if _, err := stmt.ExecContext(ctx, tournamentID, s.Number, s.Group, s.TeamID, s.Placeholder); err != nil {
			return fmt.Errorf("failed to copy slot %d: %w", s.Number, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush slot copy: %w", err)
	}
	return nil
}
