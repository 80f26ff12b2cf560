package user

import "context"

// Repository describes user profile reads needed by use cases.
type Repository interface {
	GetByIDs(ctx context.Context, userIDs []string) ([]Profile, error)
}
