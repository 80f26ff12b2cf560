package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
)

type EnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[string]enrollment.Enrollment
}

func NewEnrollmentRepository(enrollments []enrollment.Enrollment) *EnrollmentRepository {
	byID := make(map[string]enrollment.Enrollment, len(enrollments))
	for _, item := range enrollments {
		byID[item.ID] = item
	}

	return &EnrollmentRepository{enrollments: byID}
}

func (r *EnrollmentRepository) GetByID(_ context.Context, enrollmentID string) (enrollment.Enrollment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.enrollments[enrollmentID]
	return item, ok, nil
}

func (r *EnrollmentRepository) GetActive(_ context.Context, teamID, contestID string) (enrollment.Enrollment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.findActive(teamID, contestID)
	return item, ok, nil
}

func (r *EnrollmentRepository) ListActiveByContest(_ context.Context, contestID string) ([]enrollment.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, item := range r.enrollments {
		if item.ContestID == contestID && item.Status == enrollment.StatusActive {
			out = append(out, item)
		}
	}
	sortByEnrolledAt(out)

	return out, nil
}

func (r *EnrollmentRepository) ListActiveByUser(_ context.Context, userID string) ([]enrollment.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, item := range r.enrollments {
		if item.UserID == userID && item.Status == enrollment.StatusActive {
			out = append(out, item)
		}
	}
	sortByEnrolledAt(out)

	return out, nil
}

func (r *EnrollmentRepository) ListActiveByTeam(_ context.Context, teamID string) ([]enrollment.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, item := range r.enrollments {
		if item.TeamID == teamID && item.Status == enrollment.StatusActive {
			out = append(out, item)
		}
	}
	sortByEnrolledAt(out)

	return out, nil
}

func (r *EnrollmentRepository) HasActiveByUserAndContest(_ context.Context, userID, contestID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.enrollments {
		if item.UserID == userID && item.ContestID == contestID && item.Status == enrollment.StatusActive {
			return true, nil
		}
	}

	return false, nil
}

// Insert rejects a second active row for the same team and contest, matching
// the partial unique index the postgres implementation relies on.
func (r *EnrollmentRepository) Insert(_ context.Context, item enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findActive(item.TeamID, item.ContestID); ok {
		return enrollment.ErrDuplicateActive
	}
	r.enrollments[item.ID] = item

	return nil
}

func (r *EnrollmentRepository) MarkRemoved(_ context.Context, enrollmentID string, removedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.enrollments[enrollmentID]
	if !ok || item.Status != enrollment.StatusActive {
		return false, nil
	}
	item.Status = enrollment.StatusRemoved
	item.RemovedAt = &removedAt
	r.enrollments[enrollmentID] = item

	return true, nil
}

func (r *EnrollmentRepository) findActive(teamID, contestID string) (enrollment.Enrollment, bool) {
	for _, item := range r.enrollments {
		if item.TeamID == teamID && item.ContestID == contestID && item.Status == enrollment.StatusActive {
			return item, true
		}
	}
	return enrollment.Enrollment{}, false
}

func sortByEnrolledAt(items []enrollment.Enrollment) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EnrolledAt.Equal(items[j].EnrolledAt) {
			return items[i].EnrolledAt.Before(items[j].EnrolledAt)
		}
		return items[i].ID < items[j].ID
	})
}
