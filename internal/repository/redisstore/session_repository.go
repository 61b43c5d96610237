// Package redisstore is the Redis-backed alternative to the in-memory
// session store, for deployments where conversation history must survive
// process restarts.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "coursechat:session:"
	sessionTTL = 1 * time.Hour
)

type SessionRepository struct {
	client     *redis.Client
	maxHistory int

	// Per-id lock striping serializes the read-modify-write append within
	// this process. Multi-process deployments would move this to a Redis
	// transaction; one process per store is the deployment model here.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(client *redis.Client, maxHistory int) *SessionRepository {
	if maxHistory <= 0 {
		maxHistory = 2
	}
	return &SessionRepository{
		client:     client,
		maxHistory: maxHistory,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (r *SessionRepository) lock(sessionId string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[sessionId]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[sessionId] = l
	return l
}

func (r *SessionRepository) Append(ctx context.Context, sessionId, userText, assistantText string) error {
	l := r.lock(sessionId)
	l.Lock()
	defer l.Unlock()

	exchanges, err := r.load(ctx, sessionId)
	if err != nil {
		return err
	}

	exchanges = append(exchanges, entity.Exchange{
		UserText:      userText,
		AssistantText: assistantText,
	})
	if len(exchanges) > r.maxHistory {
		exchanges = exchanges[len(exchanges)-r.maxHistory:]
	}

	data, err := json.Marshal(exchanges)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionId, err)
	}
	return r.client.Set(ctx, keyPrefix+sessionId, data, sessionTTL).Err()
}

func (r *SessionRepository) History(ctx context.Context, sessionId string) ([]entity.Exchange, error) {
	return r.load(ctx, sessionId)
}

func (r *SessionRepository) Clear(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	delete(r.locks, sessionId)
	r.mu.Unlock()
	return r.client.Del(ctx, keyPrefix+sessionId).Err()
}

func (r *SessionRepository) load(ctx context.Context, sessionId string) ([]entity.Exchange, error) {
	data, err := r.client.Get(ctx, keyPrefix+sessionId).Bytes()
	if err == redis.Nil {
		return nil, nil // unseen id is empty history, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionId, err)
	}
	var exchanges []entity.Exchange
	if err := json.Unmarshal(data, &exchanges); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionId, err)
	}
	return exchanges, nil
}
