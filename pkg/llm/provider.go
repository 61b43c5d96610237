package llm

import (
	"context"
)

// Role constants shared across providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one conversation turn in a provider-agnostic format.
// A turn carries plain text, tool invocation requests (assistant turns) or
// tool results (user turns); providers map these onto their own wire shapes.
type Message struct {
	Role        string
	Text        string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// ToolCall is a model request to invoke a named tool with JSON arguments.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]interface{}
}

// ToolResult feeds a tool's textual output back to the model.
type ToolResult struct {
	ToolCallID string
	Content    string
}

// ToolDefinition declares a tool for the model's capability negotiation.
// InputSchema is a JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
}

// Request is one round-trip to the generation engine. Leaving Tools empty
// tells the model no tools are available, forcing a plain text answer.
type Request struct {
	System      string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float64
	MaxTokens   int
	Model       string // override default model
}

// Response is what the engine returned: final text, or one or more tool
// calls the caller must execute and resubmit.
type Response struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
}

// ToolCallingProvider defines the contract for any LLM backend that supports
// the iterative tool-use resubmission pattern.
type ToolCallingProvider interface {
	GenerateWithTools(ctx context.Context, req *Request) (*Response, error)
}
