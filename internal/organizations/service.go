package organizations

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserIDRequired is returned for a blank user id.
var ErrUserIDRequired = errors.New("user id is required")

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Get(ctx context.Context, userID string) (Organization, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Organization{}, ErrUserIDRequired
	}
	return s.Repo.Get(ctx, userID)
}

// Save applies patch to the user's organization, creating it when absent,
// and refreshes last_updated.
func (s *Service) Save(ctx context.Context, userID string, patch Patch) (Organization, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Organization{}, ErrUserIDRequired
	}
	now := s.now()

	existing, err := s.Repo.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		existing = Organization{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	case err != nil:
		return Organization{}, err
	}

	org := patch.Apply(existing)
	org.LastUpdated = now
	return s.Repo.Upsert(ctx, org)
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIDRequired
	}
	return s.Repo.Delete(ctx, userID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
