package domain

import "time"

// IndexedItem represents one CRM entity in the search index.
// It is the canonical row shape every entity kind is normalised into.
type IndexedItem struct {
	// ID is the source system's native identifier for the entity.
	ID string

	// ParentID identifies an owning entity (e.g. the record a note is
	// attached to). Display context only, never enforced as a foreign key.
	ParentID *string

	// Type is the entity kind tag. Open set: person, company, note, task,
	// comment, list, list_entry, call_recording, object_config, plus any
	// object slug discovered from the source schema.
	Type string

	// Title is the display string derived per-type.
	Title string

	// Content is the free-text body used for full-text search.
	Content string

	// URL is a best-effort deep link back to the source system's web UI.
	URL string

	// Metadata contains auxiliary facts (timestamps, authorship, parent
	// object slug). Null values are stripped before persistence.
	Metadata map[string]any

	// CreatedAt is when the item was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the item was last upserted.
	UpdatedAt time.Time
}

// Key identifies an item in the index. The composite key guards against
// id collisions across entity kinds; source ids are only documented to be
// unique within their own namespace.
type Key struct {
	Type string
	ID   string
}

// Key returns the item's index key.
func (it *IndexedItem) Key() Key {
	return Key{Type: it.Type, ID: it.ID}
}

// StripNullMetadata removes nil-valued keys from the metadata map.
// Called before persistence so the index never stores JSON nulls.
func (it *IndexedItem) StripNullMetadata() {
	for k, v := range it.Metadata {
		if v == nil {
			delete(it.Metadata, k)
		}
	}
}

// Timestamp extracts the item's creation time from metadata, probing
// created_at then start. Returns false when neither is present or
// parseable; callers treat that as "no date", not an error.
func (it *IndexedItem) Timestamp() (time.Time, bool) {
	for _, key := range []string{"created_at", "start"} {
		raw, ok := it.Metadata[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// KnownTypes is the default set of entity kinds offered as type filters.
// Object slugs discovered at sync time extend this set in the index itself.
var KnownTypes = []string{
	"person",
	"company",
	"note",
	"task",
	"comment",
	"list",
	"list_entry",
	"call_recording",
	"object_config",
}
