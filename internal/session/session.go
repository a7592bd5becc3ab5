// Package session defines the session/identity collaborator consumed by
// the product cache and orchestrator. Token storage and login flows live
// in an external service; this package only models what the core reads.
package session

import (
	"context"
	"sync"
)

// Provider exposes the current tenant scope and credentials.
type Provider interface {
	// StoreURL returns the store (tenant) identifier scoping all data
	// access, or "" when no store is selected.
	StoreURL() string

	// Token returns the bearer token for upstream calls.
	Token(ctx context.Context) (string, error)

	// IsAuthenticated reports whether a usable token is present.
	IsAuthenticated() bool
}

// StaticProvider is a Provider backed by fixed configuration values.
// It suits single-tenant deployments where the store URL and token are
// provisioned out of band.
type StaticProvider struct {
	mu       sync.RWMutex
	storeURL string
	token    string
}

// NewStaticProvider creates a provider with a fixed store URL and token.
func NewStaticProvider(storeURL, token string) *StaticProvider {
	return &StaticProvider{storeURL: storeURL, token: token}
}

// StoreURL implements Provider.
func (p *StaticProvider) StoreURL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storeURL
}

// Token implements Provider.
func (p *StaticProvider) Token(_ context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, nil
}

// IsAuthenticated implements Provider.
func (p *StaticProvider) IsAuthenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token != ""
}

// Revoke discards the token. Called when the store uninstalls the app;
// the provider stays revoked until re-provisioned.
func (p *StaticProvider) Revoke() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
}
