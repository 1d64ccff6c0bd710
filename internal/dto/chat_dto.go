package dto

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// AnswerResponse carries the answer for an authenticated conversational turn
// with its citations. Files and Pages are parallel slices; both are empty,
// not null, when the answer was given without retrieval.
type AnswerResponse struct {
	Files  []string `json:"files"`
	Pages  []int    `json:"pages"`
	Answer string   `json:"answer"`
}

// SingleTurnResponse is the stateless variant with at most one citation.
// File and Page are null when the model answered without retrieving.
type SingleTurnResponse struct {
	File     *string `json:"file"`
	Page     *int    `json:"page"`
	Response string  `json:"response"`
}
