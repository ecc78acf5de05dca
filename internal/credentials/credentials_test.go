package credentials

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

type stubProvider struct {
	has  bool
	cred Credential
	err  error
}

func (s stubProvider) HasCredential(context.Context) bool { return s.has }

func (s stubProvider) AcquireCredential(context.Context) (Credential, error) {
	return s.cred, s.err
}

func TestTokenProvider(t *testing.T) {
	ctx := context.Background()

	if FromRequest("   ").HasCredential(ctx) {
		t.Fatalf("blank token must not count as a credential")
	}
	if _, err := FromRequest("").AcquireCredential(ctx); !errors.Is(err, ErrAuthCancelled) {
		t.Fatalf("expected ErrAuthCancelled, got %v", err)
	}

	cred, err := FromRequest(" key-1 ").AcquireCredential(ctx)
	if err != nil {
		t.Fatalf("AcquireCredential: %v", err)
	}
	if cred.APIKey != "key-1" || cred.Source != SourceRequest {
		t.Fatalf("unexpected credential %+v", cred)
	}
}

func TestChainOrder(t *testing.T) {
	ctx := context.Background()
	chain := Chain{
		FromRequest(""),
		stubProvider{has: true, err: ErrAuthCancelled},
		stubProvider{has: true, cred: Credential{APIKey: "stored", Source: SourceProfile}},
		FromRequest("later"),
	}

	if !chain.HasCredential(ctx) {
		t.Fatalf("expected chain to report a credential")
	}
	cred, err := chain.AcquireCredential(ctx)
	if err != nil {
		t.Fatalf("AcquireCredential: %v", err)
	}
	if cred.APIKey != "stored" {
		t.Fatalf("expected stored credential, got %+v", cred)
	}
}

func TestChainEmptyAndFailing(t *testing.T) {
	ctx := context.Background()

	if _, err := (Chain{nil, FromRequest("")}).AcquireCredential(ctx); !errors.Is(err, ErrAuthCancelled) {
		t.Fatalf("expected ErrAuthCancelled, got %v", err)
	}

	boom := errors.New("decrypt failed")
	_, err := (Chain{stubProvider{has: true, err: boom}, FromRequest("k")}).AcquireCredential(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error to stop the chain, got %v", err)
	}
}
