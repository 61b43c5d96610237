// Package orchestrator drives one query to completion: it sends the
// conversation to the generation engine, executes any tool calls it
// requests, feeds the results back, and terminates within a bounded number
// of tool rounds.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/tools"
)

type Orchestrator struct {
	provider      llm.ToolCallingProvider
	registry      *tools.Registry
	systemPrompt  string
	maxToolRounds int
	temperature   float64
	maxTokens     int
}

func New(provider llm.ToolCallingProvider, registry *tools.Registry, systemPrompt string, maxToolRounds int, temperature float64, maxTokens int) *Orchestrator {
	if maxToolRounds <= 0 {
		maxToolRounds = 2
	}
	return &Orchestrator{
		provider:      provider,
		registry:      registry,
		systemPrompt:  systemPrompt,
		maxToolRounds: maxToolRounds,
		temperature:   temperature,
		maxTokens:     maxTokens,
	}
}

// Answer runs the bounded tool-use loop for one query. The model decides
// per query whether retrieval is needed; general knowledge questions come
// back as plain text on the first round. The returned text is always the
// model's final answer; tool-level problems are relayed to the model as
// tool results, never raised from here.
func (o *Orchestrator) Answer(ctx context.Context, query, history string) (string, error) {
	system := o.systemPrompt
	if history != "" {
		system = fmt.Sprintf("%s\n\nPrevious conversation:\n%s", o.systemPrompt, history)
	}

	messages := []llm.Message{{Role: llm.RoleUser, Text: query}}

	toolsAvailable := true
	for round := 0; ; round++ {
		req := &llm.Request{
			System:      system,
			Messages:    messages,
			Temperature: o.temperature,
			MaxTokens:   o.maxTokens,
		}
		if toolsAvailable {
			req.Tools = o.registry.Definitions()
		}

		resp, err := o.provider.GenerateWithTools(ctx, req)
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 || !toolsAvailable {
			return resp.Text, nil
		}

		results, toolFailed := o.executeAll(ctx, resp.ToolCalls)

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})
		messages = append(messages, llm.Message{
			Role:        llm.RoleUser,
			ToolResults: results,
		})

		// A failed tool gets one follow-up call to explain itself, then we
		// stop offering tools. Hitting the round cap likewise withdraws
		// them, so a text answer always emerges.
		if toolFailed || round+1 >= o.maxToolRounds {
			toolsAvailable = false
		}
	}
}

// executeAll runs the calls from one model turn concurrently (independent
// reads), then reassembles the results in the order the model requested
// them so resubmission stays deterministic.
func (o *Orchestrator) executeAll(ctx context.Context, calls []llm.ToolCall) ([]llm.ToolResult, bool) {
	results := make([]llm.ToolResult, len(calls))
	failures := make([]bool, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call llm.ToolCall) {
			defer wg.Done()
			content, err := o.registry.Execute(ctx, call.Name, call.Args)
			if err != nil && !errors.Is(err, tools.ErrToolNotFound) {
				content = fmt.Sprintf("Tool execution error: %v", err)
				failures[i] = true
			}
			results[i] = llm.ToolResult{ToolCallID: call.ID, Content: content}
		}(i, call)
	}
	wg.Wait()

	failed := false
	for _, f := range failures {
		if f {
			failed = true
		}
	}
	return results, failed
}
