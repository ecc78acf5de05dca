package organizations

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("organization not found")

// Repo stores one organization per user.
type Repo interface {
	Get(ctx context.Context, userID string) (Organization, error)
	Upsert(ctx context.Context, org Organization) (Organization, error)
	Delete(ctx context.Context, userID string) error
}
