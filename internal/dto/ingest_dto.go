package dto

// EmbedChunkMessage is the payload published per document chunk on the
// ingest topic. Page is zero-based.
type EmbedChunkMessage struct {
	Source  string `json:"source"`
	Page    int    `json:"page"`
	Content string `json:"content"`
}
