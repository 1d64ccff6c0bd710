package citation

import (
	"encoding/json"
	"regexp"
	"sort"
)

// Citation points at a page of a source document backing an answer.
// Page is one-based, as shown to readers; stored chunks are zero-based.
type Citation struct {
	Source string
	Page   int
}

var sourceTagPattern = regexp.MustCompile(`Source:\s*(\{.*?\})`)

// Extract scans retrieval output for Source tags and returns the cited
// (source, page) pairs deduplicated and sorted by source then page.
// Malformed tags and tags missing either field are skipped.
func Extract(text string) []Citation {
	matches := sourceTagPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[Citation]struct{})
	citations := make([]Citation, 0, len(matches))
	for _, match := range matches {
		var tag struct {
			Source *string `json:"source"`
			Page   *int    `json:"page"`
		}
		if err := json.Unmarshal([]byte(match[1]), &tag); err != nil {
			continue
		}
		if tag.Source == nil || tag.Page == nil {
			continue
		}

		c := Citation{Source: *tag.Source, Page: *tag.Page + 1}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		citations = append(citations, c)
	}

	sort.Slice(citations, func(i, j int) bool {
		if citations[i].Source != citations[j].Source {
			return citations[i].Source < citations[j].Source
		}
		return citations[i].Page < citations[j].Page
	})
	return citations
}
