package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/tools"
)

// scriptedProvider replays canned responses and records every request.
type scriptedProvider struct {
	responses []*llm.Response
	requests  []*llm.Request
	err       error
}

func (p *scriptedProvider) GenerateWithTools(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.responses) == 0 {
		return &llm.Response{Text: "out of script"}, nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

type echoTool struct {
	name   string
	err    error
	calls  int
	source string
}

func (e *echoTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{Name: e.name}
}

func (e *echoTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	q, _ := args["query"].(string)
	return "echo: " + q, nil
}

func (e *echoTool) LastSources() []string {
	if e.source == "" {
		return nil
	}
	return []string{e.source}
}

func (e *echoTool) ResetSources() {}

func newTestRegistry(tool tools.Tool) *tools.Registry {
	r := tools.NewRegistry()
	r.Register(tool)
	return r
}

func TestAnswerDirectResponse(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Text: "Paris is the capital of France."},
	}}
	tool := &echoTool{name: "echo"}
	o := New(provider, newTestRegistry(tool), "system", 2, 0, 800)

	answer, err := o.Answer(context.Background(), "capital of France?", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Paris is the capital of France." {
		t.Errorf("answer = %q", answer)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("provider called %d times", len(provider.requests))
	}
	if len(provider.requests[0].Tools) != 1 {
		t.Error("tools should be offered on the first round")
	}
	if tool.calls != 0 {
		t.Errorf("tool called %d times for a direct answer", tool.calls)
	}
}

func TestAnswerSingleToolRound(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "echo", Args: map[string]interface{}{"query": "retrieval"}}}},
		{Text: "Retrieval finds relevant text."},
	}}
	tool := &echoTool{name: "echo"}
	o := New(provider, newTestRegistry(tool), "system", 2, 0, 800)

	answer, err := o.Answer(context.Background(), "what is retrieval?", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Retrieval finds relevant text." {
		t.Errorf("answer = %q", answer)
	}
	if tool.calls != 1 {
		t.Errorf("tool calls = %d", tool.calls)
	}

	// Second request must carry the assistant tool call and the result.
	second := provider.requests[1]
	if len(second.Messages) != 3 {
		t.Fatalf("second request has %d messages", len(second.Messages))
	}
	resultMsg := second.Messages[2]
	if len(resultMsg.ToolResults) != 1 {
		t.Fatalf("tool results = %+v", resultMsg.ToolResults)
	}
	tr := resultMsg.ToolResults[0]
	if tr.ToolCallID != "c1" || tr.Content != "echo: retrieval" {
		t.Errorf("tool result = %+v", tr)
	}
}

func TestAnswerRoundCapWithdrawsTools(t *testing.T) {
	// The model keeps asking for tools; after the cap the final request
	// offers none and the scripted fallback text becomes the answer.
	call := llm.ToolCall{ID: "c", Name: "echo", Args: map[string]interface{}{"query": "x"}}
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{call}},
		{ToolCalls: []llm.ToolCall{call}},
		{Text: "final synthesis"},
	}}
	tool := &echoTool{name: "echo"}
	o := New(provider, newTestRegistry(tool), "system", 2, 0, 800)

	answer, err := o.Answer(context.Background(), "q", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "final synthesis" {
		t.Errorf("answer = %q", answer)
	}
	if len(provider.requests) != 3 {
		t.Fatalf("provider called %d times", len(provider.requests))
	}
	if len(provider.requests[2].Tools) != 0 {
		t.Error("tools still offered after the round cap")
	}
	if tool.calls != 2 {
		t.Errorf("tool calls = %d", tool.calls)
	}
}

func TestAnswerToolFailureRelayedToModel(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "echo", Args: map[string]interface{}{}}}},
		{Text: "I could not search, but here is what I know."},
	}}
	tool := &echoTool{name: "echo", err: errors.New("index unavailable")}
	o := New(provider, newTestRegistry(tool), "system", 4, 0, 800)

	answer, err := o.Answer(context.Background(), "q", "")
	if err != nil {
		t.Fatalf("tool failure must not fail the query: %v", err)
	}
	if answer != "I could not search, but here is what I know." {
		t.Errorf("answer = %q", answer)
	}

	second := provider.requests[1]
	tr := second.Messages[2].ToolResults[0]
	if !strings.HasPrefix(tr.Content, "Tool execution error:") {
		t.Errorf("tool result = %q", tr.Content)
	}
	// One failure withdraws tools for the follow-up even below the cap.
	if len(second.Tools) != 0 {
		t.Error("tools still offered after a tool failure")
	}
}

func TestAnswerUnknownToolNameRecoverable(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "nope", Args: map[string]interface{}{}}}},
		{Text: "answered anyway"},
	}}
	tool := &echoTool{name: "echo"}
	o := New(provider, newTestRegistry(tool), "system", 3, 0, 800)

	answer, err := o.Answer(context.Background(), "q", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "answered anyway" {
		t.Errorf("answer = %q", answer)
	}

	second := provider.requests[1]
	tr := second.Messages[2].ToolResults[0]
	if tr.Content != "Tool 'nope' not found" {
		t.Errorf("tool result = %q", tr.Content)
	}
	// An unknown name is a model mistake, not a tool failure: tools stay.
	if len(second.Tools) == 0 {
		t.Error("tools withdrawn after unknown tool name")
	}
}

func TestAnswerHistoryAppendedToSystem(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Text: "ok"},
	}}
	o := New(provider, newTestRegistry(&echoTool{name: "echo"}), "base prompt", 2, 0, 800)

	if _, err := o.Answer(context.Background(), "q", "User: hi\nAssistant: hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sys := provider.requests[0].System
	if !strings.HasPrefix(sys, "base prompt") {
		t.Errorf("system = %q", sys)
	}
	if !strings.Contains(sys, "Previous conversation:\nUser: hi\nAssistant: hello") {
		t.Errorf("history missing from system prompt: %q", sys)
	}
}

func TestAnswerProviderErrorPropagates(t *testing.T) {
	wantErr := errors.New("api down")
	provider := &scriptedProvider{err: wantErr}
	o := New(provider, newTestRegistry(&echoTool{name: "echo"}), "system", 2, 0, 800)

	_, err := o.Answer(context.Background(), "q", "")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestAnswerConcurrentCallsKeepOrder(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{
			{ID: "c1", Name: "echo", Args: map[string]interface{}{"query": "first"}},
			{ID: "c2", Name: "echo", Args: map[string]interface{}{"query": "second"}},
		}},
		{Text: "done"},
	}}
	tool := &echoTool{name: "echo"}
	o := New(provider, newTestRegistry(tool), "system", 2, 0, 800)

	if _, err := o.Answer(context.Background(), "q", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := provider.requests[1].Messages[2].ToolResults
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].ToolCallID != "c1" || results[0].Content != "echo: first" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].ToolCallID != "c2" || results[1].Content != "echo: second" {
		t.Errorf("results[1] = %+v", results[1])
	}
}
