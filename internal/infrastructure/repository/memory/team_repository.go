package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]roster.Team
}

func NewTeamRepository(teams []roster.Team) *TeamRepository {
	byID := make(map[string]roster.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}

	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (roster.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	if !ok {
		return roster.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []string) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if item, ok := r.teams[teamID]; ok {
			out = append(out, cloneTeam(item))
		}
	}

	return out, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID string) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0)
	for _, item := range r.teams {
		if item.UserID == userID {
			out = append(out, cloneTeam(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *TeamRepository) Insert(_ context.Context, item roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = cloneTeam(item)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = cloneTeam(item)
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[teamID]; !ok {
		return false, nil
	}
	delete(r.teams, teamID)

	return true, nil
}

func cloneTeam(item roster.Team) roster.Team {
	item.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return item
}
