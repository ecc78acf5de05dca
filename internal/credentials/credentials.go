// Package credentials resolves the API key a generation call runs with.
package credentials

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Source names where a credential came from.
type Source string

const (
	SourceRequest Source = "request"
	SourceProfile Source = "profile"
	SourceStatic  Source = "static"
)

// Credential is an API key for the generation provider.
type Credential struct {
	APIKey string
	Source Source
}

// ErrAuthCancelled is returned when no credential could be acquired.
var ErrAuthCancelled = errors.New("credential acquisition cancelled")

// Provider supplies credentials to the generation pipeline.
type Provider interface {
	HasCredential(ctx context.Context) bool
	AcquireCredential(ctx context.Context) (Credential, error)
}

// Token is a credential supplied directly by the caller.
type Token struct {
	Value string
	From  Source
}

// FromRequest wraps the accessToken sent with a request.
func FromRequest(token string) Token {
	return Token{Value: token, From: SourceRequest}
}

func (t Token) HasCredential(context.Context) bool {
	return strings.TrimSpace(t.Value) != ""
}

func (t Token) AcquireCredential(ctx context.Context) (Credential, error) {
	if !t.HasCredential(ctx) {
		return Credential{}, ErrAuthCancelled
	}
	src := t.From
	if src == "" {
		src = SourceStatic
	}
	return Credential{APIKey: strings.TrimSpace(t.Value), Source: src}, nil
}

// Chain tries providers in order and returns the first credential acquired.
type Chain []Provider

func (c Chain) HasCredential(ctx context.Context) bool {
	for _, p := range c {
		if p != nil && p.HasCredential(ctx) {
			return true
		}
	}
	return false
}

func (c Chain) AcquireCredential(ctx context.Context) (Credential, error) {
	for _, p := range c {
		if p == nil || !p.HasCredential(ctx) {
			continue
		}
		cred, err := p.AcquireCredential(ctx)
		if errors.Is(err, ErrAuthCancelled) {
			continue
		}
		if err != nil {
			return Credential{}, err
		}
		return cred, nil
	}
	return Credential{}, ErrAuthCancelled
}
