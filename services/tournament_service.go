package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/realtime"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/standings"
	"github.com/Dosada05/tournament-engine/storage"
)

// Broadcaster delivers best-effort messages to a tournament's spectators.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// SnapshotPublisher stores a public copy of a resolved schedule.
type SnapshotPublisher interface {
	Publish(ctx context.Context, tournamentID int, doc interface{}) (*storage.UploadResult, error)
}

type TournamentService interface {
	RegenerateStructure(ctx context.Context, tournamentID int) (*models.Structure, error)
	GetQualifiers(ctx context.Context, tournamentID int) ([]models.Qualifiers, error)
	GetSchedule(ctx context.Context, tournamentID int) ([]models.ResolvedMatch, error)
	GetStandings(ctx context.Context, tournamentID int, group string) (*models.GroupTable, error)
	RefreshSnapshots(ctx context.Context) (int, error)
}

type StructureRegeneratedPayload struct {
	TournamentID int `json:"tournament_id"`
	Entries      int `json:"entries"`
	Slots        int `json:"slots"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	slotRepo       repositories.SlotRepository
	scheduleRepo   repositories.ScheduleRepository
	resultRepo     repositories.MatchResultRepository
	teamRepo       repositories.TeamRepository
	structureRepo  repositories.StructureRepository
	calculator     *standings.Calculator
	hub            Broadcaster
	publisher      SnapshotPublisher
	logger         *slog.Logger
}

// Dependencies groups what NewTournamentService needs. Hub and Publisher
// may be nil.
type Dependencies struct {
	TournamentRepo repositories.TournamentRepository
	SlotRepo       repositories.SlotRepository
	ScheduleRepo   repositories.ScheduleRepository
	ResultRepo     repositories.MatchResultRepository
	TeamRepo       repositories.TeamRepository
	StructureRepo  repositories.StructureRepository
	Calculator     *standings.Calculator
	Hub            Broadcaster
	Publisher      SnapshotPublisher
	Logger         *slog.Logger
}

func NewTournamentService(deps Dependencies) TournamentService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournamentRepo: deps.TournamentRepo,
		slotRepo:       deps.SlotRepo,
		scheduleRepo:   deps.ScheduleRepo,
		resultRepo:     deps.ResultRepo,
		teamRepo:       deps.TeamRepo,
		structureRepo:  deps.StructureRepo,
		calculator:     deps.Calculator,
		hub:            deps.Hub,
		publisher:      deps.Publisher,
		logger:         logger,
	}
}

func (s *tournamentService) loadConfig(ctx context.Context, tournamentID int) (*models.TournamentConfig, error) {
	cfg, err := s.tournamentRepo.GetConfig(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load config of tournament %d: %w", tournamentID, err)
	}
	return cfg, nil
}

// RegenerateStructure rebuilds slots and schedule from the stored config and
// replaces the persisted structure in one transaction. Nothing is written
// when validation or consistency checks fail.
func (s *tournamentService) RegenerateStructure(ctx context.Context, tournamentID int) (*models.Structure, error) {
	cfg, err := s.loadConfig(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	existing, err := s.slotRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots of tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("regenerating tournament structure",
		slog.Int("tournament_id", tournamentID),
		slog.Int("team_count", cfg.TeamCount),
		slog.Int("group_count", cfg.GroupCount),
		slog.Int("knockout_rounds", cfg.KnockoutRounds),
		slog.String("classification_mode", string(cfg.ClassificationMode)),
	)

	structure, err := brackets.RegenerateStructure(*cfg, existing)
	if err != nil {
		return nil, err
	}
	if err := s.structureRepo.ReplaceStructure(ctx, tournamentID, structure); err != nil {
		return nil, fmt.Errorf("failed to persist structure of tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("tournament structure replaced",
		slog.Int("tournament_id", tournamentID),
		slog.Int("slots", len(structure.Slots)),
		slog.Int("entries", len(structure.Entries)),
		slog.Int("knockout_rounds", structure.KnockoutRounds),
	)
	if structure.KnockoutRounds < cfg.KnockoutRounds {
		s.logger.Warn("fewer knockout rounds generated than requested",
			slog.Int("tournament_id", tournamentID),
			slog.Int("requested", cfg.KnockoutRounds),
			slog.Int("generated", structure.KnockoutRounds),
		)
	}

	if s.hub != nil {
		room := realtime.RoomID(tournamentID)
		s.hub.BroadcastToRoom(room, realtime.Message{
			Type:    realtime.MessageStructureRegenerated,
			RoomID:  room,
			Payload: StructureRegeneratedPayload{TournamentID: tournamentID, Entries: len(structure.Entries), Slots: len(structure.Slots)},
		})
	}
	if s.publisher != nil {
		if err := s.publishSnapshot(ctx, tournamentID); err != nil {
			s.logger.Error("schedule snapshot not updated", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		}
	}

	return structure, nil
}

func (s *tournamentService) publishSnapshot(ctx context.Context, tournamentID int) error {
	schedule, err := s.GetSchedule(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to resolve schedule for snapshot: %w", err)
	}
	result, err := s.publisher.Publish(ctx, tournamentID, schedule)
	if err != nil {
		return fmt.Errorf("failed to publish schedule snapshot: %w", err)
	}
	s.logger.Info("schedule snapshot published", slog.Int("tournament_id", tournamentID), slog.String("location", result.Location))
	return nil
}

// RefreshSnapshots republishes the snapshot of every scheduled tournament and
// returns how many were published. A failing tournament is logged and skipped.
func (s *tournamentService) RefreshSnapshots(ctx context.Context) (int, error) {
	if s.publisher == nil {
		return 0, ErrSnapshotsDisabled
	}
	ids, err := s.tournamentRepo.ListScheduled(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list scheduled tournaments: %w", err)
	}

	published := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		if err := s.publishSnapshot(ctx, id); err != nil {
			s.logger.Warn("snapshot refresh failed", slog.Int("tournament_id", id), slog.Any("error", err))
			continue
		}
		published++
	}
	return published, nil
}

// GetQualifiers reports how many teams each stored group sends to the knockout stage.
func (s *tournamentService) GetQualifiers(ctx context.Context, tournamentID int) ([]models.Qualifiers, error) {
	cfg, err := s.loadConfig(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := brackets.ValidateConfig(*cfg); err != nil {
		return nil, err
	}
	slots, err := s.slotRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots of tournament %d: %w", tournamentID, err)
	}

	groups := brackets.GroupsFromSlots(slots)
	if len(groups) == 0 {
		_, groups = brackets.BuildSlots(*cfg, nil)
	}
	return brackets.DistributeQualifiers(*cfg, groups), nil
}
