package memory

import (
	"context"
	"sync"
	"time"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type sessionRecord struct {
	mu        sync.Mutex
	exchanges []entity.Exchange
}

// SessionRepository keeps the bounded conversation history in go-cache with
// a 1 hour TTL, purging expired sessions every 10 minutes. Appends for one
// session id serialize on the record's own mutex.
type SessionRepository struct {
	cache      *cache.Cache
	mu         sync.Mutex // guards get-or-create of records
	maxHistory int
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(maxHistory int) *SessionRepository {
	if maxHistory <= 0 {
		maxHistory = 2
	}
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache:      c,
		maxHistory: maxHistory,
	}
}

func (r *SessionRepository) record(sessionId string) *sessionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(sessionId); found {
		return x.(*sessionRecord)
	}
	rec := &sessionRecord{}
	r.cache.Set(sessionId, rec, cache.DefaultExpiration)
	return rec
}

func (r *SessionRepository) Append(ctx context.Context, sessionId, userText, assistantText string) error {
	rec := r.record(sessionId)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.exchanges = append(rec.exchanges, entity.Exchange{
		UserText:      userText,
		AssistantText: assistantText,
	})
	// FIFO eviction above the cap: oldest exchange goes first.
	if len(rec.exchanges) > r.maxHistory {
		rec.exchanges = rec.exchanges[len(rec.exchanges)-r.maxHistory:]
	}

	// Refresh the TTL so active conversations stay alive.
	r.cache.Set(sessionId, rec, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) History(ctx context.Context, sessionId string) ([]entity.Exchange, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, nil
	}
	rec := x.(*sessionRecord)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]entity.Exchange, len(rec.exchanges))
	copy(out, rec.exchanges)
	return out, nil
}

func (r *SessionRepository) Clear(ctx context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
