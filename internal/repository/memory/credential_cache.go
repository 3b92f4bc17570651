package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CredentialCache keeps decrypted API keys in memory so hot users do
// not pay a database read plus a decryption on every translation call.
// Entries expire on their own; writes and deletes from the credential
// service invalidate eagerly.
type CredentialCache struct {
	cache *cache.Cache
}

func NewCredentialCache() *CredentialCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &CredentialCache{
		cache: c,
	}
}

func cacheKey(userId uuid.UUID, provider string) string {
	return fmt.Sprintf("%s:%s", userId, provider)
}

func (r *CredentialCache) Save(userId uuid.UUID, provider, apiKey string) {
	r.cache.Set(cacheKey(userId, provider), apiKey, cache.DefaultExpiration)
}

func (r *CredentialCache) Get(userId uuid.UUID, provider string) (string, bool) {
	if x, found := r.cache.Get(cacheKey(userId, provider)); found {
		return x.(string), true
	}
	return "", false
}

func (r *CredentialCache) Delete(userId uuid.UUID, provider string) {
	r.cache.Delete(cacheKey(userId, provider))
}
