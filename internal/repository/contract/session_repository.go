package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"
)

// SessionRepository is the bounded per-conversation history. Sessions are
// created lazily on first append; an unseen id yields empty history, never
// an error. Appends for the same session id must serialize.
type SessionRepository interface {
	Append(ctx context.Context, sessionId, userText, assistantText string) error
	History(ctx context.Context, sessionId string) ([]entity.Exchange, error)
	Clear(ctx context.Context, sessionId string) error
}
