package constant

const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
	TurnRoleSystem    = "system"
	TurnRoleTool      = "tool"
)

// RetrieveToolName is the single capability exposed to the model during the
// decide step of the conversation loop.
const RetrieveToolName = "retrieve"

const RetrieveToolDescription = "Retrieve information related to a query"

// AnswerSystemPromptV1 frames the generation step. The retrieved context is
// appended after the instruction; the model must answer from it alone.
const AnswerSystemPromptV1 = "You are an assistant for question-answering tasks. " +
	"Use the following pieces of retrieved context to answer the question. " +
	"If you don't know the answer, say that you don't know."
