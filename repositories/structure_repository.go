package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/models"
)

var ErrStructureRequiresTransaction = errors.New("database connection is required for structure replacement")

// StructureRepository replaces a tournament's slots and schedule together.
// Either both are replaced or neither is.
type StructureRepository interface {
	ReplaceStructure(ctx context.Context, tournamentID int, structure *models.Structure) error
}

type postgresStructureRepository struct {
	db           *sql.DB
	slotRepo     SlotRepository
	scheduleRepo ScheduleRepository
	logger       *slog.Logger
}

func NewPostgresStructureRepository(db *sql.DB, slotRepo SlotRepository, scheduleRepo ScheduleRepository, logger *slog.Logger) StructureRepository {
	return &postgresStructureRepository{db: db, slotRepo: slotRepo, scheduleRepo: scheduleRepo, logger: logger}
}

func (r *postgresStructureRepository) ReplaceStructure(ctx context.Context, tournamentID int, structure *models.Structure) (txErr error) {
	if r.db == nil {
		return ErrStructureRequiresTransaction
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			r.logger.Warn("rolling back structure replacement", slog.Int("tournament_id", tournamentID), slog.Any("error", txErr))
			if rbErr := tx.Rollback(); rbErr != nil {
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit structure of tournament %d: %w", tournamentID, cErr)
		}
	}()

	if txErr = r.slotRepo.ReplaceAll(ctx, tx, tournamentID, structure.Slots); txErr != nil {
		return txErr
	}
	if txErr = r.scheduleRepo.ReplaceAll(ctx, tx, tournamentID, structure.Entries); txErr != nil {
		return txErr
	}
	return nil
}
