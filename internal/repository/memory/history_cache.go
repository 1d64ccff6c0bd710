package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
)

// HistoryCache is a write-through cache of full turn sequences keyed by
// thread id. It saves a database round trip on follow-up questions; the
// database stays authoritative and the cache is invalidated whenever a
// thread is cleared.
type HistoryCache struct {
	cache *cache.Cache
}

func NewHistoryCache() *HistoryCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &HistoryCache{cache: c}
}

func (r *HistoryCache) Save(threadId string, turns []*entity.ConversationTurn) {
	r.cache.Set(threadId, turns, cache.DefaultExpiration)
}

func (r *HistoryCache) Get(threadId string) ([]*entity.ConversationTurn, bool) {
	if x, found := r.cache.Get(threadId); found {
		return x.([]*entity.ConversationTurn), true
	}
	return nil, false
}

func (r *HistoryCache) Delete(threadId string) {
	r.cache.Delete(threadId)
}
