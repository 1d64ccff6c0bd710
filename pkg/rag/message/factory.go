package message

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sihanyu03/LawTriposChatbot/internal/constant"
	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/pkg/llm"
)

// Factory converts between persisted conversation turns and the in-flight
// message representation used by the orchestration loop.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// ToMessages rebuilds the loop representation of a stored thread. Assistant
// retrieval requests are restored with their tool call so history filtering
// and provider APIs see the original structure.
func (f *Factory) ToMessages(turns []*entity.ConversationTurn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		msg := llm.Message{
			Role:    t.Role,
			Content: t.Content,
		}
		switch t.Role {
		case constant.TurnRoleAssistant:
			if t.ToolCallId != "" {
				args, _ := json.Marshal(retrieveArguments{Query: t.ToolQuery})
				msg.ToolCalls = []llm.ToolCall{{
					ID:        t.ToolCallId,
					Name:      constant.RetrieveToolName,
					Arguments: string(args),
				}}
			}
		case constant.TurnRoleTool:
			msg.ToolCallID = t.ToolCallId
		}
		messages = append(messages, msg)
	}
	return messages
}

// ToTurns maps a full message sequence back to turn rows for persistence,
// assigning positions from zero. Retrieval queries are recovered from the
// tool call arguments so every tool exchange keeps its own back-reference.
func (f *Factory) ToTurns(threadId string, messages []llm.Message, now time.Time) []*entity.ConversationTurn {
	// queryByCallID lets each tool turn reference the query that produced it.
	queryByCallID := make(map[string]string)

	turns := make([]*entity.ConversationTurn, 0, len(messages))
	for i, msg := range messages {
		turn := &entity.ConversationTurn{
			Id:        uuid.New(),
			ThreadId:  threadId,
			Position:  i,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: now,
		}
		switch msg.Role {
		case constant.TurnRoleAssistant:
			if len(msg.ToolCalls) > 0 {
				call := msg.ToolCalls[0]
				query := parseQueryArgument(call.Arguments)
				queryByCallID[call.ID] = query
				turn.ToolCallId = call.ID
				turn.ToolQuery = query
			}
		case constant.TurnRoleTool:
			turn.ToolCallId = msg.ToolCallID
			turn.ToolQuery = queryByCallID[msg.ToolCallID]
		}
		turns = append(turns, turn)
	}
	return turns
}

type retrieveArguments struct {
	Query string `json:"query"`
}

func parseQueryArgument(arguments string) string {
	var args retrieveArguments
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}
	return args.Query
}
