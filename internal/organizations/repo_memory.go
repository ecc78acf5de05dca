package organizations

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	orgs map[string]Organization
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{orgs: make(map[string]Organization)}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Organization, error) {
	if err := ctx.Err(); err != nil {
		return Organization{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	org, ok := r.orgs[userID]
	if !ok {
		return Organization{}, ErrNotFound
	}
	return org, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, org Organization) (Organization, error) {
	if err := ctx.Err(); err != nil {
		return Organization{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.orgs[org.UserID]; ok {
		org.ID = existing.ID
		org.CreatedAt = existing.CreatedAt
	} else if org.CreatedAt.IsZero() {
		org.CreatedAt = org.LastUpdated
	}
	r.orgs[org.UserID] = org
	return org, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orgs, userID)
	return nil
}
