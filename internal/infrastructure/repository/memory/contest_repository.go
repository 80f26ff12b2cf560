package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
)

type ContestRepository struct {
	mu       sync.RWMutex
	contests map[string]contest.Contest
}

func NewContestRepository(contests []contest.Contest) *ContestRepository {
	byID := make(map[string]contest.Contest, len(contests))
	for _, item := range contests {
		byID[item.ID] = item
	}

	return &ContestRepository{contests: byID}
}

func (r *ContestRepository) List(_ context.Context, filter contest.ListFilter) ([]contest.Contest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]contest.Contest, 0, len(r.contests))
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, item := range r.contests {
		if filter.Visibility != "" && item.Visibility != filter.Visibility {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Code), query) {
			continue
		}
		matched = append(matched, item)
	}

	// Newest window first; id keeps equal start times deterministic.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartAt.Equal(matched[j].StartAt) {
			return matched[i].StartAt.After(matched[j].StartAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if filter.Offset >= total {
		return []contest.Contest{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}

	out := make([]contest.Contest, end-filter.Offset)
	copy(out, matched[filter.Offset:end])

	return out, total, nil
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.contests[contestID]
	return item, ok, nil
}

func (r *ContestRepository) GetByCode(_ context.Context, code string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.contests {
		if strings.EqualFold(item.Code, code) {
			return item, true, nil
		}
	}

	return contest.Contest{}, false, nil
}

func (r *ContestRepository) Insert(_ context.Context, item contest.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contests[item.ID] = item
	return nil
}

func (r *ContestRepository) Update(_ context.Context, item contest.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contests[item.ID] = item
	return nil
}

func (r *ContestRepository) UpdateStatus(_ context.Context, contestID string, status contest.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.contests[contestID]
	if !ok {
		return nil
	}
	item.Status = status
	item.UpdatedAt = updatedAt
	r.contests[contestID] = item

	return nil
}

func (r *ContestRepository) Delete(_ context.Context, contestID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contests[contestID]; !ok {
		return false, nil
	}
	delete(r.contests, contestID)

	return true, nil
}
