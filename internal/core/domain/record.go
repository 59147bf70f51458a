package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FieldValue is one typed value object inside a record's field-value map.
// The source API attaches more keys (attribute_type, active_from, ...) but
// only the value itself matters for indexing.
type FieldValue struct {
	Value any `json:"value"`
}

// RecordValues maps a field slug to its list of typed value objects.
type RecordValues map[string][]FieldValue

// UntitledName is the placeholder title for records whose naming field is
// not in the candidate list.
const UntitledName = "Untitled"

// DefaultNameSlugs is the ordered priority list of field slugs probed when
// extracting a record's display name. The heuristic is data, not code:
// callers may supply their own list.
var DefaultNameSlugs = []string{
	"name",
	"title",
	"full_name",
	"company_name",
	"email_addresses",
	"domains",
	"description",
}

// ExtractName probes the candidate slugs in order and returns the first
// non-empty scalar value, falling back to UntitledName. Best effort: a
// record named through a field outside the candidate list is mis-titled,
// not rejected.
func ExtractName(values RecordValues, candidates []string) string {
	for _, slug := range candidates {
		vals, ok := values[slug]
		if !ok || len(vals) == 0 {
			continue
		}
		if s := scalarString(vals[0].Value); s != "" {
			return s
		}
	}
	return UntitledName
}

// FieldString returns the first value of one field slug as a display
// string, or empty string when the field is absent.
func FieldString(values RecordValues, slug string) string {
	vals, ok := values[slug]
	if !ok || len(vals) == 0 {
		return ""
	}
	return scalarString(vals[0].Value)
}

// scalarString renders a field value as a display string.
// Nested objects (e.g. personal-name structures) fall back to their
// full_name key when present.
func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if full, ok := val["full_name"].(string); ok {
			return strings.TrimSpace(full)
		}
		return ""
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return ""
	}
}

// FlattenValues renders the whole field-value map as one search-ready text
// blob, one "slug: v1, v2" line per field in slug order. This is the
// Content for record rows: a stringified dump of all field values.
func FlattenValues(values RecordValues) string {
	slugs := make([]string, 0, len(values))
	for slug := range values {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	var sb strings.Builder
	for _, slug := range slugs {
		rendered := make([]string, 0, len(values[slug]))
		for _, fv := range values[slug] {
			if s := scalarString(fv.Value); s != "" {
				rendered = append(rendered, s)
			}
		}
		if len(rendered) == 0 {
			continue
		}
		sb.WriteString(slug)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(rendered, ", "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
