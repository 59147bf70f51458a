package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		name       string
		values     RecordValues
		candidates []string
		want       string
	}{
		{
			name:       "first candidate wins",
			values:     RecordValues{"name": {{Value: "Ada Lovelace"}}},
			candidates: DefaultNameSlugs,
			want:       "Ada Lovelace",
		},
		{
			name: "priority order respected",
			values: RecordValues{
				"email_addresses": {{Value: "ada@example.com"}},
				"name":            {{Value: "Ada Lovelace"}},
			},
			candidates: DefaultNameSlugs,
			want:       "Ada Lovelace",
		},
		{
			name:       "falls through empty values",
			values:     RecordValues{"name": {{Value: "  "}}, "title": {{Value: "Q3 Planning"}}},
			candidates: DefaultNameSlugs,
			want:       "Q3 Planning",
		},
		{
			name:       "nested personal name",
			values:     RecordValues{"name": {{Value: map[string]any{"full_name": "Ada Lovelace", "first_name": "Ada"}}}},
			candidates: DefaultNameSlugs,
			want:       "Ada Lovelace",
		},
		{
			name:       "no candidate present",
			values:     RecordValues{"budget": {{Value: 12.5}}},
			candidates: DefaultNameSlugs,
			want:       UntitledName,
		},
		{
			name:       "empty field list",
			values:     RecordValues{"name": {}},
			candidates: DefaultNameSlugs,
			want:       UntitledName,
		},
		{
			name:       "custom candidate list is data not code",
			values:     RecordValues{"ticker": {{Value: "COVE"}}, "name": {{Value: "Coveline"}}},
			candidates: []string{"ticker"},
			want:       "COVE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.values, tt.candidates))
		})
	}
}

func TestFlattenValues(t *testing.T) {
	values := RecordValues{
		"name":    {{Value: "Coveline"}},
		"domains": {{Value: "coveline.io"}, {Value: "coveline.dev"}},
		"stage":   {{Value: nil}},
	}

	got := FlattenValues(values)

	// Slug order is sorted, nil values are dropped.
	assert.Equal(t, "domains: coveline.io, coveline.dev\nname: Coveline", got)
}

func TestFlattenValuesEmpty(t *testing.T) {
	assert.Equal(t, "", FlattenValues(RecordValues{}))
	assert.Equal(t, "", FlattenValues(nil))
}
