// Copyright (c) 2026 Dugout. All rights reserved.

package assignment_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/assignment"
	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

const (
	playerA = "0190a6e2-0000-7000-8000-00000000000a"
	playerB = "0190a6e2-0000-7000-8000-00000000000b"
	drillX  = "0190a6e2-0000-7000-8000-0000000000d1"
	drillY  = "0190a6e2-0000-7000-8000-0000000000d2"
	session = "0190a6e2-0000-7000-8000-0000000000e1"
)

type pairKey struct{ player, drill string }

// memoryRepository is an in-memory [assignment.Repository].
type memoryRepository struct {
	players  map[string]bool
	drills   map[string]string
	sessions map[string]assignment.SessionOrigin
	owners   map[string]string
	rows     map[pairKey]*assignment.Assignment
	order    []pairKey
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		players: map[string]bool{playerA: true, playerB: true},
		drills:  map[string]string{drillX: "Tee work", drillY: "Long toss"},
		sessions: map[string]assignment.SessionOrigin{
			session: {SessionID: session, SessionType: "bullpen", Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
		owners: map[string]string{session: playerA},
		rows:   make(map[pairKey]*assignment.Assignment),
	}
}

func (m *memoryRepository) PlayerExists(_ context.Context, _ postgres.DBTX, id string) (bool, error) {
	return m.players[id], nil
}

func (m *memoryRepository) DrillExists(_ context.Context, _ postgres.DBTX, id string) (bool, error) {
	_, ok := m.drills[id]
	return ok, nil
}

func (m *memoryRepository) SessionPlayer(_ context.Context, _ postgres.DBTX, id string) (string, error) {
	owner, ok := m.owners[id]
	if !ok {
		return "", apperr.NotFound("Session")
	}
	return owner, nil
}

func (m *memoryRepository) Insert(_ context.Context, _ postgres.DBTX, a *assignment.Assignment) (bool, error) {
	key := pairKey{a.PlayerID, a.DrillID}
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	a.CreatedAt = time.Now()
	copied := *a
	m.rows[key] = &copied
	m.order = append(m.order, key)
	return true, nil
}

func (m *memoryRepository) Find(_ context.Context, _ postgres.DBTX, playerID, drillID string) (*assignment.Assignment, error) {
	row, ok := m.rows[pairKey{playerID, drillID}]
	if !ok {
		return nil, apperr.NotFound("Assignment")
	}
	copied := *row
	return &copied, nil
}

func (m *memoryRepository) Delete(_ context.Context, _ postgres.DBTX, playerID, drillID string) (bool, error) {
	key := pairKey{playerID, drillID}
	if _, ok := m.rows[key]; !ok {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}

func (m *memoryRepository) origin(a *assignment.Assignment) *assignment.SessionOrigin {
	if a.SessionID == nil {
		return nil
	}
	origin := m.sessions[*a.SessionID]
	return &origin
}

func (m *memoryRepository) DrillsForPlayer(_ context.Context, _ postgres.DBTX, playerID string) ([]*assignment.AssignedDrill, error) {
	drills := make([]*assignment.AssignedDrill, 0)
	for _, key := range m.order {
		row, ok := m.rows[key]
		if !ok || key.player != playerID {
			continue
		}
		drills = append(drills, &assignment.AssignedDrill{
			ID:            key.drill,
			Title:         m.drills[key.drill],
			AssignedDate:  row.DatePerformed,
			Notes:         row.Notes,
			SessionOrigin: m.origin(row),
		})
	}
	return drills, nil
}

func (m *memoryRepository) PlayersForDrill(_ context.Context, _ postgres.DBTX, drillID string) ([]*assignment.AssignedPlayer, error) {
	players := make([]*assignment.AssignedPlayer, 0)
	for _, key := range m.order {
		row, ok := m.rows[key]
		if !ok || key.drill != drillID {
			continue
		}
		players = append(players, &assignment.AssignedPlayer{
			ID:            key.player,
			AssignedDate:  row.DatePerformed,
			SessionOrigin: m.origin(row),
		})
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func newService(repo *memoryRepository) *assignment.Service {
	service := assignment.NewService(repo, postgres.Direct{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.SetClock(func() time.Time { return time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC) })
	return service
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an AppError, got %v", err)
	return ae.HTTPStatus
}

func TestService_Assign_DuplicateIsNoop(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	first, err := service.Assign(ctx, playerA, drillX, assignment.Input{SessionDate: "2025-06-01"})
	require.NoError(t, err)
	assert.False(t, first.AlreadyAssigned)

	second, err := service.Assign(ctx, playerA, drillX, assignment.Input{SessionDate: "2025-06-09"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyAssigned)

	require.Len(t, repo.rows, 1)
	require.NotNil(t, second.Assignment.DatePerformed)
	assert.Equal(t, "2025-06-01", second.Assignment.DatePerformed.Format("2006-01-02"))
}

func TestService_Assign_DefaultsDateToNow(t *testing.T) {
	service := newService(newMemoryRepository())

	result, err := service.Assign(context.Background(), playerA, drillX, assignment.Input{})
	require.NoError(t, err)
	require.NotNil(t, result.Assignment.DatePerformed)
	assert.Equal(t, time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC), *result.Assignment.DatePerformed)
}

func TestService_Assign_Errors(t *testing.T) {
	tests := []struct {
		name   string
		player string
		drill  string
		input  assignment.Input
		status int
	}{
		{name: "malformed date", player: playerA, drill: drillX, input: assignment.Input{SessionDate: "06/01/2025"}, status: http.StatusBadRequest},
		{name: "malformed session", player: playerA, drill: drillX, input: assignment.Input{SessionID: "abc"}, status: http.StatusBadRequest},
		{name: "missing player", player: "0190a6e2-0000-7000-8000-0000000000ff", drill: drillX, status: http.StatusNotFound},
		{name: "missing drill", player: playerA, drill: "0190a6e2-0000-7000-8000-0000000000ff", status: http.StatusNotFound},
		{name: "missing session", player: playerA, drill: drillX, input: assignment.Input{SessionID: "0190a6e2-0000-7000-8000-0000000000ff"}, status: http.StatusNotFound},
		{name: "foreign session", player: playerB, drill: drillX, input: assignment.Input{SessionID: session}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()
			_, err := newService(repo).Assign(context.Background(), tt.player, tt.drill, tt.input)
			assert.Equal(t, tt.status, statusOf(t, err))
			assert.Empty(t, repo.rows)
		})
	}
}

func TestService_Unassign(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	assert.Equal(t, http.StatusNotFound, statusOf(t, service.Unassign(ctx, playerA, drillX)))

	for _, p := range []string{playerA, playerB} {
		for _, d := range []string{drillX, drillY} {
			_, err := service.Assign(ctx, p, d, assignment.Input{})
			require.NoError(t, err)
		}
	}

	require.NoError(t, service.Unassign(ctx, playerA, drillX))
	assert.Len(t, repo.rows, 3)
	assert.NotContains(t, repo.rows, pairKey{playerA, drillX})
	assert.Contains(t, repo.rows, pairKey{playerA, drillY})
	assert.Contains(t, repo.rows, pairKey{playerB, drillX})
	assert.True(t, repo.players[playerA])
	assert.Contains(t, repo.drills, drillX)
}

func TestService_ListDrillsForPlayer_SessionOrigin(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	_, err := service.Assign(ctx, playerA, drillX, assignment.Input{SessionID: session})
	require.NoError(t, err)
	_, err = service.Assign(ctx, playerA, drillY, assignment.Input{})
	require.NoError(t, err)

	drills, err := service.ListDrillsForPlayer(ctx, playerA)
	require.NoError(t, err)
	require.Len(t, drills, 2)

	require.NotNil(t, drills[0].SessionOrigin)
	assert.Equal(t, "bullpen", drills[0].SessionOrigin.SessionType)
	assert.Nil(t, drills[1].SessionOrigin)

	_, err = service.ListDrillsForPlayer(ctx, "0190a6e2-0000-7000-8000-0000000000ff")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	players, err := service.ListPlayersForDrill(ctx, drillX)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, playerA, players[0].ID)
}
