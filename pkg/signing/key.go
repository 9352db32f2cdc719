package signing

import (
	"sync"

	"github.com/eficaz-commerce/eficaz-api/pkg/config"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
)

// KeyProvider resolves the HMAC secret used for token signing and
// verification. Both operations must share one provider instance so they can
// never disagree on the key material.
type KeyProvider struct {
	cfg  config.JWTConfig
	once sync.Once
	key  []byte
	err  error
}

// NewKeyProvider constructs a provider backed by the process configuration.
func NewKeyProvider(cfg config.JWTConfig) *KeyProvider {
	return &KeyProvider{cfg: cfg}
}

// Resolve returns the signing key. The lookup runs once; subsequent calls
// return the cached result. An empty secret is a fatal configuration error.
func (p *KeyProvider) Resolve() ([]byte, error) {
	p.once.Do(func() {
		if p.cfg.Secret == "" {
			p.err = appErrors.ErrSigningKeyMissing
			return
		}
		p.key = []byte(p.cfg.Secret)
	})
	return p.key, p.err
}
