package profiles

import (
	"context"

	"github.com/pkg/errors"

	"jobpost-backend/internal/credentials"
	"jobpost-backend/internal/shared/auth"
)

// CredentialProvider supplies the stored key of the authenticated caller.
// Requests without verified claims never receive a stored key.
type CredentialProvider struct {
	Profiles *Service
}

func (p CredentialProvider) HasCredential(ctx context.Context) bool {
	_, ok := auth.ClaimsFromContext(ctx)
	return ok && p.Profiles != nil
}

func (p CredentialProvider) AcquireCredential(ctx context.Context) (credentials.Credential, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || p.Profiles == nil {
		return credentials.Credential{}, credentials.ErrAuthCancelled
	}
	key, err := p.Profiles.APIKey(ctx, claims.UserID())
	if errors.Is(err, ErrNotFound) || (err == nil && key == "") {
		return credentials.Credential{}, credentials.ErrAuthCancelled
	}
	if err != nil {
		return credentials.Credential{}, errors.Wrap(err, "load stored api key")
	}
	return credentials.Credential{APIKey: key, Source: credentials.SourceProfile}, nil
}

var _ credentials.Provider = CredentialProvider{}
