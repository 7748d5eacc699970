package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
)

// MatchResultRepository reads what the scoreboard collaborator recorded.
// This engine never writes results.
type MatchResultRepository interface {
	// ListByTournament returns finished results. A non-nil group keeps only
	// results of that group, comparing canonical labels.
	ListByTournament(ctx context.Context, tournamentID int, group *string) ([]models.MatchResult, error)
	// GetLiveSnapshot returns the match on the scoreboard, or nil when idle.
	GetLiveSnapshot(ctx context.Context, tournamentID int) (*models.LiveSnapshot, error)
}

type postgresMatchResultRepository struct {
	db *sql.DB
}

func NewPostgresMatchResultRepository(db *sql.DB) MatchResultRepository {
	return &postgresMatchResultRepository{db: db}
}

func (r *postgresMatchResultRepository) ListByTournament(ctx context.Context, tournamentID int, group *string) ([]models.MatchResult, error) {
	query := `
		SELECT id, tournament_id, code, group_label, home_team, away_team, home_score, away_score,
		       home_penalties, away_penalties, started_at, finished_at
		FROM match_results
		WHERE tournament_id = $1 AND finished_at IS NOT NULL
		ORDER BY finished_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	results := make([]models.MatchResult, 0)
	for rows.Next() {
		var (
			res              models.MatchResult
			code, groupLabel sql.NullString
		)
		if scanErr := rows.Scan(
			&res.ID,
			&res.TournamentID,
			&code,
			&groupLabel,
			&res.HomeTeam,
			&res.AwayTeam,
			&res.HomeScore,
			&res.AwayScore,
			&res.HomePenalties,
			&res.AwayPenalties,
			&res.StartedAt,
			&res.FinishedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match result row: %w", scanErr)
		}
		res.Code = code.String
		res.Group = groupLabel.String
		if group != nil && (res.Group == "" || !models.SameGroup(res.Group, *group)) {
			continue
		}
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match result rows iteration: %w", err)
	}
	return results, nil
}

func (r *postgresMatchResultRepository) GetLiveSnapshot(ctx context.Context, tournamentID int) (*models.LiveSnapshot, error) {
	query := `
		SELECT code, group_label, home_team, away_team, home_score, away_score, home_penalties, away_penalties
		FROM live_matches
		WHERE tournament_id = $1`

	var (
		snap             models.LiveSnapshot
		code, groupLabel sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&code,
		&groupLabel,
		&snap.HomeTeam,
		&snap.AwayTeam,
		&snap.HomeScore,
		&snap.AwayScore,
		&snap.HomePenalties,
		&snap.AwayPenalties,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan live snapshot for tournament %d: %w", tournamentID, err)
	}
	snap.Code = code.String
	snap.Group = groupLabel.String
	return &snap, nil
}
