package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-contests/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.Profile
}

func NewUserRepository(users []user.Profile) *UserRepository {
	byID := make(map[string]user.Profile, len(users))
	for _, item := range users {
		byID[item.ID] = item
	}

	return &UserRepository{users: byID}
}

func (r *UserRepository) GetByIDs(_ context.Context, userIDs []string) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0, len(userIDs))
	for _, userID := range userIDs {
		if item, ok := r.users[userID]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}
