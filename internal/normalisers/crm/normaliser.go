package crm

import (
	"fmt"
	"strings"

	connector "github.com/coveline/crmdex/internal/connectors/crm"
	"github.com/coveline/crmdex/internal/core/domain"
)

// Ensure Normaliser implements the mapper.
var _ connector.ItemMapper = (*Normaliser)(nil)

// UntitledNote is the placeholder title for notes without one.
const UntitledNote = "Untitled Note"

// Normaliser converts wire entities into domain.IndexedItem rows.
type Normaliser struct {
	webURL    string
	nameSlugs []string
}

// New creates a normaliser. webURL is the web UI root for deep links;
// nameSlugs is the priority list probed for record display names.
func New(webURL string, nameSlugs []string) *Normaliser {
	if len(nameSlugs) == 0 {
		nameSlugs = domain.DefaultNameSlugs
	}
	return &Normaliser{
		webURL:    strings.TrimRight(webURL, "/"),
		nameSlugs: nameSlugs,
	}
}

// List maps a workspace list.
func (n *Normaliser) List(l connector.List) domain.IndexedItem {
	listID := l.ID.Get("list_id")
	return domain.IndexedItem{
		ID:      listID,
		Type:    "list",
		Title:   "List: " + l.Name,
		Content: "Workspace list. Slug: " + l.APISlug,
		URL:     n.webURL + "/workspace/lists/" + listID,
		Metadata: map[string]any{
			"created_at": l.CreatedAt,
		},
	}
}

// ListEntry maps one entry of a list. Entries are mostly pointers, so
// the row exists to make list membership searchable.
func (n *Normaliser) ListEntry(e connector.Entry, parent connector.List) domain.IndexedItem {
	entryID := e.ID.Get("entry_id")
	listID := parent.ID.Get("list_id")

	content := "Entry ID " + entryID
	if e.ParentRecordID != "" {
		content = "Entry pointing to record " + e.ParentRecordID
	}

	return domain.IndexedItem{
		ID:       entryID,
		ParentID: &listID,
		Type:     "list_entry",
		Title:    "Entry in " + parent.Name,
		Content:  content,
		URL:      n.webURL + "/workspace/lists/" + listID,
		Metadata: map[string]any{
			"created_at":       e.CreatedAt,
			"parent_record_id": e.ParentRecordID,
		},
	}
}

// Note maps a note.
func (n *Normaliser) Note(note connector.Note) domain.IndexedItem {
	noteID := note.ID.Get("note_id")

	title := note.Title
	if title == "" {
		title = UntitledNote
	}

	item := domain.IndexedItem{
		ID:      noteID,
		Type:    "note",
		Title:   title,
		Content: note.ContentPlaintext,
		URL:     n.webURL + "/workspace/note/" + noteID,
		Metadata: map[string]any{
			"created_at":    note.CreatedAt,
			"parent_object": note.ParentObject,
		},
	}
	if note.ParentRecordID != "" {
		parent := note.ParentRecordID
		item.ParentID = &parent
	}
	return item
}

// Task maps a task. The task text is the only reliable display string
// the API offers, so it doubles as the title.
func (n *Normaliser) Task(t connector.Task, parentName string) domain.IndexedItem {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Completed: %t", t.IsCompleted)
	if parentName != "" {
		sb.WriteString(". Linked to ")
		sb.WriteString(parentName)
	}

	item := domain.IndexedItem{
		ID:      t.ID.Get("task_id"),
		Type:    "task",
		Title:   "Task: " + t.ContentPlaintext,
		Content: sb.String(),
		// The web UI has no per-task deep link; the tasks view is the
		// generic fallback.
		URL: n.webURL + "/workspace/tasks",
		Metadata: map[string]any{
			"created_at": t.CreatedAt,
			"deadline":   t.DeadlineAt,
		},
	}
	if len(t.LinkedRecords) > 0 {
		parent := t.LinkedRecords[0].TargetRecordID
		item.ParentID = &parent
	}
	return item
}

// Comment maps a timeline comment on the named record.
func (n *Normaliser) Comment(cm connector.Comment, objectSlug, recordID, recordName string) domain.IndexedItem {
	parent := recordID
	return domain.IndexedItem{
		ID:       cm.ID.Get("comment_id"),
		ParentID: &parent,
		Type:     "comment",
		Title:    "Comment on " + recordName,
		Content:  cm.ContentPlaintext,
		URL:      n.recordURL(objectSlug, recordID),
		Metadata: map[string]any{
			"created_at": cm.CreatedAt,
			"author":     cm.Author,
		},
	}
}

// ObjectConfig maps one entry of the object schema.
func (n *Normaliser) ObjectConfig(o connector.Object) domain.IndexedItem {
	return domain.IndexedItem{
		ID:      o.ID.Get("object_id"),
		Type:    "object_config",
		Title:   "Object: " + o.SingularNoun,
		Content: o.Description,
		URL:     n.webURL + "/settings/objects/" + o.APISlug,
		Metadata: map[string]any{
			"created_at": o.CreatedAt,
			"slug":       o.APISlug,
		},
	}
}

// Record maps a record. The row's type is the object slug itself, so
// new object types in the workspace appear in the index automatically.
func (n *Normaliser) Record(r connector.Record, objectSlug string) (domain.IndexedItem, string) {
	recordID := r.ID.Get("record_id")
	name := domain.ExtractName(r.Values, n.nameSlugs)

	item := domain.IndexedItem{
		ID:      recordID,
		Type:    objectSlug,
		Title:   name,
		Content: domain.FlattenValues(r.Values),
		URL:     n.recordURL(objectSlug, recordID),
		Metadata: map[string]any{
			"created_at": r.CreatedAt,
			"object":     objectSlug,
		},
	}
	return item, name
}

// CallRecording maps one recording of a call record.
func (n *Normaliser) CallRecording(rec connector.CallRecording, call connector.Record, transcript, objectSlug string) domain.IndexedItem {
	callID := call.ID.Get("record_id")
	parent := callID
	return domain.IndexedItem{
		ID:       rec.ID.Get("call_recording_id"),
		ParentID: &parent,
		Type:     "call_recording",
		Title:    callTitle(call),
		Content:  transcript,
		URL:      n.recordURL(objectSlug, callID),
		Metadata: map[string]any{
			"start": rec.StartedAt,
			"end":   rec.EndedAt,
		},
	}
}

// CallRecord maps a call record without recording children, using the
// transcript attribute on the record itself.
func (n *Normaliser) CallRecord(call connector.Record, transcript, objectSlug string) domain.IndexedItem {
	callID := call.ID.Get("record_id")
	return domain.IndexedItem{
		ID:      callID,
		Type:    "call_recording",
		Title:   callTitle(call),
		Content: transcript,
		URL:     n.recordURL(objectSlug, callID),
		Metadata: map[string]any{
			"created_at": call.CreatedAt,
		},
	}
}

func (n *Normaliser) recordURL(objectSlug, recordID string) string {
	return n.webURL + "/workspace/record/" + objectSlug + "/" + recordID
}

// callTitle extracts a display title for a call record.
func callTitle(call connector.Record) string {
	if t := domain.FieldString(call.Values, "title"); t != "" {
		return t
	}
	if t := domain.FieldString(call.Values, "name"); t != "" {
		return t
	}
	return "Call"
}
