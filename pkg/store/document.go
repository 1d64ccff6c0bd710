package store

// RetrievedChunk is one passage returned by similarity search, together with
// the metadata needed to cite it. Page is zero-based as stored; the API layer
// exposes one-based page numbers.
type RetrievedChunk struct {
	Source  string
	Page    int
	Content string
	Score   float64
}
