package message

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/google/uuid"

	"github.com/sihanyu03/LawTriposChatbot/internal/constant"
	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/pkg/llm"
)

func TestToTurnsAssignsPositionsAndToolMetadata(t *testing.T) {
	factory := NewFactory()
	now := time.Now()

	messages := []llm.Message{
		{Role: constant.TurnRoleUser, Content: "What is a trust?"},
		{Role: constant.TurnRoleAssistant, ToolCalls: []llm.ToolCall{{
			ID:        "call_1",
			Name:      constant.RetrieveToolName,
			Arguments: `{"query":"trusts equity"}`,
		}}},
		{Role: constant.TurnRoleTool, Content: "ctx", ToolCallID: "call_1"},
		{Role: constant.TurnRoleAssistant, Content: "A trust splits legal and equitable title."},
	}

	turns := factory.ToTurns("alice", messages, now)

	assert.Len(t, turns, 4)
	for i, turn := range turns {
		assert.Equal(t, i, turn.Position)
		assert.Equal(t, "alice", turn.ThreadId)
		assert.Equal(t, now, turn.CreatedAt)
	}

	assert.Equal(t, "call_1", turns[1].ToolCallId)
	assert.Equal(t, "trusts equity", turns[1].ToolQuery)
	assert.Equal(t, "call_1", turns[2].ToolCallId)
	assert.Equal(t, "trusts equity", turns[2].ToolQuery)
	assert.Empty(t, turns[3].ToolCallId)
}

func TestToMessagesEncodesQueryAsValidJSON(t *testing.T) {
	factory := NewFactory()

	queries := []string{
		"plain query",
		"control chars \x01\x02\x7f inside",
		"newline\nand\ttab",
		`quotes "and" backslash \`,
		"non-ASCII: négligence délictuelle — 过失",
	}

	for _, query := range queries {
		turns := []*entity.ConversationTurn{{
			Id:         uuid.New(),
			ThreadId:   "alice",
			Role:       constant.TurnRoleAssistant,
			ToolCallId: "call_1",
			ToolQuery:  query,
		}}

		restored := factory.ToMessages(turns)
		if !assert.Len(t, restored[0].ToolCalls, 1, "query %q", query) {
			continue
		}

		var args struct {
			Query string `json:"query"`
		}
		err := json.Unmarshal([]byte(restored[0].ToolCalls[0].Arguments), &args)
		assert.NoError(t, err, "arguments for query %q must be valid JSON", query)
		assert.Equal(t, query, args.Query)
	}
}

func TestRoundTripPreservesToolCalls(t *testing.T) {
	factory := NewFactory()

	original := []llm.Message{
		{Role: constant.TurnRoleUser, Content: "q1"},
		{Role: constant.TurnRoleAssistant, ToolCalls: []llm.ToolCall{{
			ID:        "call_9",
			Name:      constant.RetrieveToolName,
			Arguments: `{"query":"habeas corpus"}`,
		}}},
		{Role: constant.TurnRoleTool, Content: "retrieved text", ToolCallID: "call_9"},
		{Role: constant.TurnRoleAssistant, Content: "answer"},
		{Role: constant.TurnRoleUser, Content: "q2"},
		{Role: constant.TurnRoleAssistant, Content: "direct answer"},
	}

	turns := factory.ToTurns("bob", original, time.Now())
	restored := factory.ToMessages(turns)

	assert.Len(t, restored, len(original))
	for i := range original {
		assert.Equal(t, original[i].Role, restored[i].Role, "message %d role", i)
		assert.Equal(t, original[i].Content, restored[i].Content, "message %d content", i)
	}

	if assert.Len(t, restored[1].ToolCalls, 1) {
		call := restored[1].ToolCalls[0]
		assert.Equal(t, "call_9", call.ID)
		assert.Equal(t, constant.RetrieveToolName, call.Name)
		assert.JSONEq(t, `{"query":"habeas corpus"}`, call.Arguments)
	}
	assert.Equal(t, "call_9", restored[2].ToolCallID)
	assert.Empty(t, restored[3].ToolCalls)
}
