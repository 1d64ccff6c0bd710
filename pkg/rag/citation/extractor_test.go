package citation

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Citation
	}{
		{
			name: "no tags",
			text: "Plain answer with no retrieved context.",
			want: []Citation{},
		},
		{
			name: "single tag",
			text: "Source: {\"source\":\"contract_law.pdf\",\"page\":4}\nContent: offer and acceptance",
			want: []Citation{{Source: "contract_law.pdf", Page: 5}},
		},
		{
			name: "multiple tags sorted by source then page",
			text: "Source: {\"source\":\"tort.pdf\",\"page\":9}\nContent: a\n\n" +
				"Source: {\"source\":\"contract_law.pdf\",\"page\":4}\nContent: b\n\n" +
				"Source: {\"source\":\"contract_law.pdf\",\"page\":1}\nContent: c",
			want: []Citation{
				{Source: "contract_law.pdf", Page: 2},
				{Source: "contract_law.pdf", Page: 5},
				{Source: "tort.pdf", Page: 10},
			},
		},
		{
			name: "duplicate tags collapse",
			text: "Source: {\"source\":\"tort.pdf\",\"page\":2}\nContent: a\n\n" +
				"Source: {\"source\":\"tort.pdf\",\"page\":2}\nContent: b",
			want: []Citation{{Source: "tort.pdf", Page: 3}},
		},
		{
			name: "malformed json skipped",
			text: "Source: {not json}\n\nSource: {\"source\":\"x.pdf\",\"page\":0}\nContent: ok",
			want: []Citation{{Source: "x.pdf", Page: 1}},
		},
		{
			name: "missing page skipped",
			text: "Source: {\"source\":\"x.pdf\"}",
			want: []Citation{},
		},
		{
			name: "missing source skipped",
			text: "Source: {\"page\":3}",
			want: []Citation{},
		},
		{
			name: "zero page becomes one",
			text: "Source: {\"source\":\"x.pdf\",\"page\":0}",
			want: []Citation{{Source: "x.pdf", Page: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}
