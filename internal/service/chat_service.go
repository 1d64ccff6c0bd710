package service

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sihanyu03/LawTriposChatbot/internal/constant"
	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/pkg/llm"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/citation"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/graph"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/history"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/message"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/search"
)

// ErrInconsistentLoopState means the conversation loop returned a sequence
// that does not end in an assistant answer for the submitted query.
var ErrInconsistentLoopState = errors.New("conversation loop produced an inconsistent message sequence")

type IChatService interface {
	// GetAnswer runs one conversational turn for the user's thread and
	// persists the extended history.
	GetAnswer(ctx context.Context, username string, req *dto.QueryRequest) (*dto.AnswerResponse, error)

	// GetResponse answers a single query with no thread and no persistence.
	GetResponse(ctx context.Context, req *dto.QueryRequest) (*dto.SingleTurnResponse, error)
}

type chatService struct {
	loop           *graph.Loop
	historyStore   *history.Store
	messageFactory *message.Factory
	llmLogger      *log.Logger
}

func NewChatService(
	llmProvider llm.LLMProvider,
	retriever *search.Retriever,
	historyStore *history.Store,
	numDocuments int,
	llmLogger *log.Logger,
) IChatService {
	return &chatService{
		loop:           graph.NewLoop(llmProvider, retriever, numDocuments, llmLogger),
		historyStore:   historyStore,
		messageFactory: message.NewFactory(),
		llmLogger:      llmLogger,
	}
}

func (s *chatService) GetAnswer(ctx context.Context, username string, req *dto.QueryRequest) (*dto.AnswerResponse, error) {
	turns, err := s.historyStore.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	messages := s.messageFactory.ToMessages(turns)
	messages = append(messages, llm.Message{
		Role:    constant.TurnRoleUser,
		Content: req.Query,
	})

	updated, err := s.loop.Run(ctx, messages)
	if err != nil {
		return nil, err
	}
	if err := validateLoopOutput(messages, updated); err != nil {
		return nil, err
	}

	newTurns := s.messageFactory.ToTurns(username, updated, time.Now())
	if err := s.historyStore.ReplaceAll(ctx, username, newTurns); err != nil {
		return nil, err
	}

	answer := updated[len(updated)-1].Content
	citations := citationsForAnswer(updated)

	files := make([]string, len(citations))
	pages := make([]int, len(citations))
	for i, c := range citations {
		files[i] = c.Source
		pages[i] = c.Page
	}

	s.llmLogger.Printf("[INFO] Answered query for thread %s with %d citations", username, len(citations))
	return &dto.AnswerResponse{Files: files, Pages: pages, Answer: answer}, nil
}

func (s *chatService) GetResponse(ctx context.Context, req *dto.QueryRequest) (*dto.SingleTurnResponse, error) {
	messages := []llm.Message{{
		Role:    constant.TurnRoleUser,
		Content: req.Query,
	}}

	updated, err := s.loop.Run(ctx, messages)
	if err != nil {
		return nil, err
	}
	if err := validateLoopOutput(messages, updated); err != nil {
		return nil, err
	}

	resp := &dto.SingleTurnResponse{
		Response: updated[len(updated)-1].Content,
	}
	if citations := citationsForAnswer(updated); len(citations) > 0 {
		resp.File = &citations[0].Source
		resp.Page = &citations[0].Page
	}
	return resp, nil
}

// validateLoopOutput rejects sequences the loop must never produce: nothing
// appended, or a final message that is not an assistant answer.
func validateLoopOutput(input, output []llm.Message) error {
	if len(output) <= len(input) {
		return ErrInconsistentLoopState
	}
	final := output[len(output)-1]
	if final.Role != constant.TurnRoleAssistant || len(final.ToolCalls) > 0 {
		return ErrInconsistentLoopState
	}
	return nil
}

// citationsForAnswer extracts citations from the tool exchange directly
// backing the final answer. Older retrievals in the thread are not re-cited.
func citationsForAnswer(messages []llm.Message) []citation.Citation {
	// Final message is the answer; walk the tool messages just before it.
	var text string
	for i := len(messages) - 2; i >= 0; i-- {
		if messages[i].Role != constant.TurnRoleTool {
			break
		}
		text = messages[i].Content + "\n\n" + text
	}
	return citation.Extract(text)
}

// NewLLMLogger builds the shared RAG trace logger, falling back to stdout if
// the log file cannot be opened.
func NewLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "[LLM-RAG] ", log.LstdFlags)
}
