package profiles

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("profile not found")

type Repo interface {
	Get(ctx context.Context, userID string) (Record, error)
	Upsert(ctx context.Context, rec Record) (Record, error)
}
