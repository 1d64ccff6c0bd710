package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system", "tool"
	Content string

	// ToolCalls is set on assistant messages that request a tool invocation
	// instead of answering directly.
	ToolCalls []ToolCall

	// ToolCallID links a tool message back to the assistant call it answers.
	ToolCallID string
}

// ToolCall is a structured request from the model to invoke a named tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON arguments as produced by the model
}

// Tool describes a callable capability exposed to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema for the arguments object
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatWithTools sends a chat history plus tool definitions. The returned
	// message either carries plain Content or one or more ToolCalls.
	ChatWithTools(ctx context.Context, history []Message, tools []Tool, options ...Option) (Message, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
