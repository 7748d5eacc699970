package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetConfig(ctx context.Context, id int) (*models.TournamentConfig, error)
	// ListScheduled returns the ids of tournaments that have a stored schedule.
	ListScheduled(ctx context.Context) ([]int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetConfig(ctx context.Context, id int) (*models.TournamentConfig, error) {
	query := `
		SELECT id, name, team_count, group_count, knockout_rounds, classification_mode, starts_at, match_minutes
		FROM tournaments
		WHERE id = $1`

	var (
		cfg      models.TournamentConfig
		startsAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.TeamCount,
		&cfg.GroupCount,
		&cfg.KnockoutRounds,
		&cfg.ClassificationMode,
		&startsAt,
		&cfg.MatchMinutes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament config %d: %w", id, err)
	}
	if startsAt.Valid {
		t := startsAt.Time
		cfg.StartsAt = &t
	}
	return &cfg, nil
}

func (r *postgresTournamentRepository) ListScheduled(ctx context.Context) ([]int, error) {
	query := `
		SELECT t.id
		FROM tournaments t
		WHERE EXISTS (SELECT 1 FROM schedule_entries e WHERE e.tournament_id = t.id)
		ORDER BY t.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled tournaments: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tournament id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return ids, nil
}
