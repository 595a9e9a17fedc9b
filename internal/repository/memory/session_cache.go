package memory

import (
	"time"

	"ai-advising-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionCache is a read-through cache for student sessions. Entries age out
// on the same one hour horizon the sessions themselves do; expiry decisions
// still come from the entity's CreatedAt, the cache TTL only bounds staleness.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Default expiration 1 hour, purge sweep every 10 minutes
	c := cache.New(entity.SessionTTL, 10*time.Minute)
	return &SessionCache{cache: c}
}

func (r *SessionCache) Save(session *entity.StudentSession) {
	r.cache.Set(session.SessionId.String(), session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionId uuid.UUID) (*entity.StudentSession, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*entity.StudentSession), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
