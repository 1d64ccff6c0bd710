package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sihanyu03/LawTriposChatbot/internal/constant"
	"github.com/sihanyu03/LawTriposChatbot/pkg/llm"
	"github.com/sihanyu03/LawTriposChatbot/pkg/store"
)

// Retriever is the search capability the loop invokes when the model asks
// for context instead of answering directly.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]store.RetrievedChunk, error)
}

var ErrEmptyDecision = errors.New("model returned neither an answer nor a tool call")

// Loop runs one conversation step: the model first decides whether to answer
// from history or to retrieve, and if it retrieves, a second call generates
// the answer grounded in the fetched context.
type Loop struct {
	model        llm.LLMProvider
	retriever    Retriever
	numDocuments int
	logger       *log.Logger
}

func NewLoop(model llm.LLMProvider, retriever Retriever, numDocuments int, logger *log.Logger) *Loop {
	return &Loop{
		model:        model,
		retriever:    retriever,
		numDocuments: numDocuments,
		logger:       logger,
	}
}

// Run appends the model's turns for one user query to history and returns the
// extended sequence. The final message is always an assistant answer.
func (l *Loop) Run(ctx context.Context, history []llm.Message) ([]llm.Message, error) {
	decision, err := l.model.ChatWithTools(ctx, history, []llm.Tool{retrieveTool()})
	if err != nil {
		return nil, fmt.Errorf("decide step failed: %w", err)
	}

	if len(decision.ToolCalls) == 0 {
		if decision.Content == "" {
			return nil, ErrEmptyDecision
		}
		l.logger.Printf("[DEBUG] Model answered directly without retrieval")
		return append(history, decision), nil
	}

	// One tool exchange per assistant turn: stored turns carry a single
	// call id, so the decision is truncated to its first call and exactly
	// one tool turn answers it. Execution and persistence must agree or a
	// reloaded thread presents orphaned tool messages to the model.
	decision.ToolCalls = decision.ToolCalls[:1]
	call := decision.ToolCalls[0]

	query, err := parseRetrieveArguments(call.Arguments)
	if err != nil {
		return nil, fmt.Errorf("malformed %s arguments: %w", call.Name, err)
	}

	chunks, err := l.retriever.Search(ctx, query, l.numDocuments)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	l.logger.Printf("[DEBUG] Retrieved %d chunks for tool call %s", len(chunks), call.ID)

	messages := append(history, decision)
	messages = append(messages, llm.Message{
		Role:       constant.TurnRoleTool,
		Content:    formatChunks(chunks),
		ToolCallID: call.ID,
	})

	answer, err := l.generate(ctx, messages)
	if err != nil {
		return nil, err
	}
	return append(messages, answer), nil
}

// generate asks the model for the final answer. The retrieved context is
// folded into a system prompt and tool exchanges are stripped from the
// conversation the model sees, so only clean dialogue plus context remains.
func (l *Loop) generate(ctx context.Context, messages []llm.Message) (llm.Message, error) {
	systemPrompt := constant.AnswerSystemPromptV1 + "\n\n" + trailingToolContent(messages)

	conversation := make([]llm.Message, 0, len(messages)+1)
	conversation = append(conversation, llm.Message{
		Role:    constant.TurnRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range messages {
		switch msg.Role {
		case constant.TurnRoleUser, constant.TurnRoleSystem:
			conversation = append(conversation, msg)
		case constant.TurnRoleAssistant:
			if len(msg.ToolCalls) == 0 {
				conversation = append(conversation, msg)
			}
		}
	}

	content, err := l.model.Chat(ctx, conversation)
	if err != nil {
		return llm.Message{}, fmt.Errorf("generate step failed: %w", err)
	}
	return llm.Message{Role: constant.TurnRoleAssistant, Content: content}, nil
}

func retrieveTool() llm.Tool {
	return llm.Tool{
		Name:        constant.RetrieveToolName,
		Description: constant.RetrieveToolDescription,
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query to retrieve context for",
				},
			},
			"required": []string{"query"},
		},
	}
}

func parseRetrieveArguments(arguments string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", err
	}
	if args.Query == "" {
		return "", errors.New("missing query")
	}
	return args.Query, nil
}

// formatChunks serializes retrieved passages into the tagged text form the
// citation extractor parses back out of stored tool turns.
func formatChunks(chunks []store.RetrievedChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		tag, _ := json.Marshal(struct {
			Source string `json:"source"`
			Page   int    `json:"page"`
		}{chunk.Source, chunk.Page})
		parts[i] = fmt.Sprintf("Source: %s\nContent: %s", tag, chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}

// trailingToolContent gathers the content of the tool messages at the tail of
// the sequence, most recent exchange only.
func trailingToolContent(messages []llm.Message) string {
	var recent []llm.Message
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != constant.TurnRoleTool {
			break
		}
		recent = append(recent, messages[i])
	}

	parts := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		parts = append(parts, recent[i].Content)
	}
	return strings.Join(parts, "\n\n")
}
