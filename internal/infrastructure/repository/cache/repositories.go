package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	basecache "github.com/riskibarqy/fantasy-contests/internal/platform/cache"
)

// ContestRepository caches contest reads in front of another repository.
// Every write invalidates the affected keys plus the list keys, since list
// filters cannot be mapped back to a single entry.
type ContestRepository struct {
	next  contest.Repository
	cache *basecache.Store
}

func NewContestRepository(next contest.Repository, cache *basecache.Store) *ContestRepository {
	return &ContestRepository{next: next, cache: cache}
}

func (r *ContestRepository) List(ctx context.Context, filter contest.ListFilter) ([]contest.Contest, int, error) {
	key := contestListKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, total, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return cachedContestList{items: append([]contest.Contest(nil), items...), total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	cached, _ := v.(cachedContestList)
	return append([]contest.Contest(nil), cached.items...), cached.total, nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, contestByIDKey(contestID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, contestID)
		if err != nil {
			return nil, err
		}
		return cachedContest{value: item, exists: exists}, nil
	})
	if err != nil {
		return contest.Contest{}, false, err
	}

	cached, _ := v.(cachedContest)
	return cached.value, cached.exists, nil
}

func (r *ContestRepository) GetByCode(ctx context.Context, code string) (contest.Contest, bool, error) {
	key := contestByCodePrefix + strings.ToUpper(strings.TrimSpace(code))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return cachedContest{value: item, exists: exists}, nil
	})
	if err != nil {
		return contest.Contest{}, false, err
	}

	cached, _ := v.(cachedContest)
	return cached.value, cached.exists, nil
}

func (r *ContestRepository) Insert(ctx context.Context, item contest.Contest) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID, item.Code)
	return nil
}

func (r *ContestRepository) Update(ctx context.Context, item contest.Contest) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID, item.Code)
	return nil
}

func (r *ContestRepository) UpdateStatus(ctx context.Context, contestID string, status contest.Status, updatedAt time.Time) error {
	if err := r.next.UpdateStatus(ctx, contestID, status, updatedAt); err != nil {
		return err
	}
	r.invalidate(ctx, contestID, "")
	return nil
}

func (r *ContestRepository) Delete(ctx context.Context, contestID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, contestID)
	if err != nil {
		return false, err
	}
	if deleted {
		r.invalidate(ctx, contestID, "")
		r.cache.DeletePrefix(ctx, contestByCodePrefix)
	}
	return deleted, nil
}

func (r *ContestRepository) invalidate(ctx context.Context, contestID, code string) {
	r.cache.Delete(ctx, contestByIDKey(contestID))
	if code != "" {
		r.cache.Delete(ctx, contestByCodePrefix+strings.ToUpper(strings.TrimSpace(code)))
	}
	r.cache.DeletePrefix(ctx, contestListPrefix)
}

type cachedContest struct {
	value  contest.Contest
	exists bool
}

type cachedContestList struct {
	items []contest.Contest
	total int
}

const (
	contestListPrefix   = "contest:list:"
	contestByCodePrefix = "contest:code:"
)

func contestByIDKey(contestID string) string {
	return "contest:id:" + contestID
}

func contestListKey(filter contest.ListFilter) string {
	return contestListPrefix +
		string(filter.Visibility) + ":" +
		string(filter.Status) + ":" +
		strings.ToLower(strings.TrimSpace(filter.Query)) + ":" +
		strconv.Itoa(filter.Offset) + ":" +
		strconv.Itoa(filter.Limit)
}

// SlotRepository caches the slot rule set, which changes rarely but is read
// on every team validation.
type SlotRepository struct {
	next  slot.Repository
	cache *basecache.Store
}

func NewSlotRepository(next slot.Repository, cache *basecache.Store) *SlotRepository {
	return &SlotRepository{next: next, cache: cache}
}

func (r *SlotRepository) List(ctx context.Context) ([]slot.Slot, error) {
	v, err := r.cache.GetOrLoad(ctx, "slot:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]slot.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]slot.Slot)
	return append([]slot.Slot(nil), items...), nil
}

func (r *SlotRepository) GetByID(ctx context.Context, slotID string) (slot.Slot, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "slot:id:"+slotID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, slotID)
		if err != nil {
			return nil, err
		}
		return cachedSlot{value: item, exists: exists}, nil
	})
	if err != nil {
		return slot.Slot{}, false, err
	}

	cached, _ := v.(cachedSlot)
	return cached.value, cached.exists, nil
}

type cachedSlot struct {
	value  slot.Slot
	exists bool
}

// PlayerRepository caches player lookups keyed by the sorted id set.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := "player:ids:" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) CountBySlot(ctx context.Context, slotID string) (int, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:count:slot:"+slotID, func(ctx context.Context) (any, error) {
		count, err := r.next.CountBySlot(ctx, slotID)
		if err != nil {
			return nil, err
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	count, _ := v.(int)
	return count, nil
}
