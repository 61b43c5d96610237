package service

import (
	"context"
	"fmt"
	"strings"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/pkg/rag/orchestrator"
	"ai-coursechat-be/pkg/rag/tools"
)

type IAssistantService interface {
	Query(ctx context.Context, sessionId, query string) (*dto.QueryResponse, error)
	ClearSession(ctx context.Context, sessionId string) error
}

type assistantService struct {
	orchestrator *orchestrator.Orchestrator
	registry     *tools.Registry
	sessions     contract.SessionRepository
	sysLogger    logger.ILogger
}

func NewAssistantService(
	orch *orchestrator.Orchestrator,
	registry *tools.Registry,
	sessions contract.SessionRepository,
	sysLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		orchestrator: orch,
		registry:     registry,
		sessions:     sessions,
		sysLogger:    sysLogger,
	}
}

// Query answers one user question. Sources accumulate per top-level query,
// not per tool call, so they are cleared here before the loop runs and
// drained once the final answer is in hand. An empty session id skips
// history entirely.
func (s *assistantService) Query(ctx context.Context, sessionId, query string) (*dto.QueryResponse, error) {
	s.registry.ResetSources()

	var history string
	if sessionId != "" {
		exchanges, err := s.sessions.History(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		var parts []string
		for _, ex := range exchanges {
			parts = append(parts, fmt.Sprintf("User: %s\nAssistant: %s", ex.UserText, ex.AssistantText))
		}
		history = strings.Join(parts, "\n")
	}

	answer, err := s.orchestrator.Answer(ctx, query, history)
	if err != nil {
		return nil, err
	}

	sources := s.registry.DrainSources()

	if sessionId != "" {
		if err := s.sessions.Append(ctx, sessionId, query, answer); err != nil {
			return nil, err
		}
	}

	s.sysLogger.Debug("assistant", "query answered", map[string]interface{}{
		"session_id": sessionId,
		"sources":    len(sources),
	})

	return &dto.QueryResponse{
		Answer:    answer,
		Sources:   sources,
		SessionId: sessionId,
	}, nil
}

func (s *assistantService) ClearSession(ctx context.Context, sessionId string) error {
	return s.sessions.Clear(ctx, sessionId)
}
