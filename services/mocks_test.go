package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/standings"
	"github.com/Dosada05/tournament-engine/storage"
	"golang.org/x/text/language"
)

var errNotImplemented = errors.New("not implemented")

type MockTournamentRepository struct {
	GetConfigFunc     func(ctx context.Context, id int) (*models.TournamentConfig, error)
	ListScheduledFunc func(ctx context.Context) ([]int, error)
}

func (m *MockTournamentRepository) GetConfig(ctx context.Context, id int) (*models.TournamentConfig, error) {
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockTournamentRepository) ListScheduled(ctx context.Context) ([]int, error) {
	if m.ListScheduledFunc != nil {
		return m.ListScheduledFunc(ctx)
	}
	return nil, errNotImplemented
}

type MockSlotRepository struct {
	ListByTournamentFunc func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Slot, error)
}

func (m *MockSlotRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Slot, error) {
	if m.ListByTournamentFunc != nil {
		return m.ListByTournamentFunc(ctx, exec, tournamentID)
	}
	return nil, errNotImplemented
}

func (m *MockSlotRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, tournamentID int, slots []models.Slot) error {
	return errNotImplemented
}

type MockScheduleRepository struct {
	ListByTournamentFunc func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.ScheduleEntry, error)
}

func (m *MockScheduleRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.ScheduleEntry, error) {
	if m.ListByTournamentFunc != nil {
		return m.ListByTournamentFunc(ctx, exec, tournamentID)
	}
	return nil, errNotImplemented
}

func (m *MockScheduleRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, tournamentID int, entries []models.ScheduleEntry) error {
	return errNotImplemented
}

type MockMatchResultRepository struct {
	ListByTournamentFunc func(ctx context.Context, tournamentID int, group *string) ([]models.MatchResult, error)
	GetLiveSnapshotFunc  func(ctx context.Context, tournamentID int) (*models.LiveSnapshot, error)
}

func (m *MockMatchResultRepository) ListByTournament(ctx context.Context, tournamentID int, group *string) ([]models.MatchResult, error) {
	if m.ListByTournamentFunc != nil {
		return m.ListByTournamentFunc(ctx, tournamentID, group)
	}
	return nil, errNotImplemented
}

func (m *MockMatchResultRepository) GetLiveSnapshot(ctx context.Context, tournamentID int) (*models.LiveSnapshot, error) {
	if m.GetLiveSnapshotFunc != nil {
		return m.GetLiveSnapshotFunc(ctx, tournamentID)
	}
	return nil, nil
}

type MockTeamRepository struct {
	ListNamesFunc func(ctx context.Context) (map[int]string, error)
}

func (m *MockTeamRepository) ListNames(ctx context.Context) (map[int]string, error) {
	if m.ListNamesFunc != nil {
		return m.ListNamesFunc(ctx)
	}
	return map[int]string{}, nil
}

type MockStructureRepository struct {
	ReplaceStructureFunc func(ctx context.Context, tournamentID int, structure *models.Structure) error
}

func (m *MockStructureRepository) ReplaceStructure(ctx context.Context, tournamentID int, structure *models.Structure) error {
	if m.ReplaceStructureFunc != nil {
		return m.ReplaceStructureFunc(ctx, tournamentID, structure)
	}
	return errNotImplemented
}

type recordedBroadcast struct {
	roomID  string
	message interface{}
}

type MockBroadcaster struct {
	mu       sync.Mutex
	messages []recordedBroadcast
}

func (m *MockBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, recordedBroadcast{roomID: roomID, message: message})
}

type MockSnapshotPublisher struct {
	PublishFunc func(ctx context.Context, tournamentID int, doc interface{}) (*storage.UploadResult, error)
}

func (m *MockSnapshotPublisher) Publish(ctx context.Context, tournamentID int, doc interface{}) (*storage.UploadResult, error) {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, tournamentID, doc)
	}
	return nil, errNotImplemented
}

// memoryStore backs the mocks with one tournament held in memory.
type memoryStore struct {
	mu      sync.Mutex
	config  models.TournamentConfig
	slots   []models.Slot
	entries []models.ScheduleEntry
	results []models.MatchResult
	teams   map[int]string
	live    *models.LiveSnapshot
	liveErr error
}

func (s *memoryStore) dependencies() Dependencies {
	return Dependencies{
		TournamentRepo: &MockTournamentRepository{
			GetConfigFunc: func(ctx context.Context, id int) (*models.TournamentConfig, error) {
				if id != s.config.ID {
					return nil, repositories.ErrTournamentNotFound
				}
				cfg := s.config
				return &cfg, nil
			},
		},
		SlotRepo: &MockSlotRepository{
			ListByTournamentFunc: func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Slot, error) {
				s.mu.Lock()
				defer s.mu.Unlock()
				return append([]models.Slot(nil), s.slots...), nil
			},
		},
		ScheduleRepo: &MockScheduleRepository{
			ListByTournamentFunc: func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.ScheduleEntry, error) {
				s.mu.Lock()
				defer s.mu.Unlock()
				return append([]models.ScheduleEntry(nil), s.entries...), nil
			},
		},
		ResultRepo: &MockMatchResultRepository{
			ListByTournamentFunc: func(ctx context.Context, tournamentID int, group *string) ([]models.MatchResult, error) {
				return s.results, nil
			},
			GetLiveSnapshotFunc: func(ctx context.Context, tournamentID int) (*models.LiveSnapshot, error) {
				return s.live, s.liveErr
			},
		},
		TeamRepo: &MockTeamRepository{
			ListNamesFunc: func(ctx context.Context) (map[int]string, error) {
				return s.teams, nil
			},
		},
		StructureRepo: &MockStructureRepository{
			ReplaceStructureFunc: func(ctx context.Context, tournamentID int, structure *models.Structure) error {
				s.mu.Lock()
				defer s.mu.Unlock()
				s.slots = structure.Slots
				s.entries = structure.Entries
				return nil
			},
		},
		Calculator: standings.NewCalculator(language.English),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
