package profiles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrUserIDRequired = errors.New("userId is required")

type Service struct {
	Repo Repo
	Box  *Box
}

func NewService(repo Repo, box *Box) *Service {
	return &Service{Repo: repo, Box: box}
}

func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return View{}, ErrUserIDRequired
	}
	rec, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return s.view(rec), nil
}

// Save stores apiKey for the user. An empty key clears the stored one.
func (s *Service) Save(ctx context.Context, userID, apiKey string) (View, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return View{}, ErrUserIDRequired
	}
	rec := Record{ID: uuid.NewString(), UserID: userID}
	if key := strings.TrimSpace(apiKey); key != "" {
		sealed, err := s.Box.Seal(key)
		if err != nil {
			return View{}, err
		}
		rec.SealedKey = sealed
	}
	stored, err := s.Repo.Upsert(ctx, rec)
	if err != nil {
		return View{}, err
	}
	return s.view(stored), nil
}

// APIKey returns the decrypted key, or "" when none is stored.
func (s *Service) APIKey(ctx context.Context, userID string) (string, error) {
	rec, err := s.Repo.Get(ctx, strings.TrimSpace(userID))
	if err != nil {
		return "", err
	}
	if rec.SealedKey == "" {
		return "", nil
	}
	return s.Box.Open(rec.SealedKey)
}

func (s *Service) view(rec Record) View {
	v := View{UserID: rec.UserID, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if rec.SealedKey == "" {
		return v
	}
	v.HasGeminiAPIKey = true
	if key, err := s.Box.Open(rec.SealedKey); err == nil {
		v.GeminiAPIKeyHint = maskKey(key)
	}
	return v
}

// Ensure creates an empty profile for userID if none exists.
func (s *Service) Ensure(ctx context.Context, userID string) error {
	_, err := s.Repo.Get(ctx, strings.TrimSpace(userID))
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err = s.Repo.Upsert(ctx, Record{ID: uuid.NewString(), UserID: strings.TrimSpace(userID)})
	return err
}
