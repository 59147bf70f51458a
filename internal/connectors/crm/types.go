package crm

import "github.com/coveline/crmdex/internal/core/domain"

// ID is the nested identifier envelope the API wraps every entity id
// in, e.g. {"workspace_id": "...", "record_id": "..."}.
type ID map[string]string

// Get returns the id component under key, or empty string.
func (id ID) Get(key string) string {
	return id[key]
}

// List is a workspace list.
type List struct {
	ID        ID     `json:"id"` // list_id
	Name      string `json:"name"`
	APISlug   string `json:"api_slug"`
	CreatedAt string `json:"created_at"`
}

// Entry is one row inside a list. Entries are mostly pointers to
// records.
type Entry struct {
	ID             ID     `json:"id"` // entry_id
	ParentRecordID string `json:"parent_record_id"`
	ParentObject   string `json:"parent_object"`
	CreatedAt      string `json:"created_at"`
}

// Note is a workspace note, optionally attached to a record.
type Note struct {
	ID               ID     `json:"id"` // note_id
	ParentObject     string `json:"parent_object"`
	ParentRecordID   string `json:"parent_record_id"`
	Title            string `json:"title"`
	ContentPlaintext string `json:"content_plaintext"`
	CreatedAt        string `json:"created_at"`
}

// Task is a workspace task.
type Task struct {
	ID               ID         `json:"id"` // task_id
	ContentPlaintext string     `json:"content_plaintext"`
	DeadlineAt       string     `json:"deadline_at"`
	IsCompleted      bool       `json:"is_completed"`
	LinkedRecords    []TaskLink `json:"linked_records"`
	CreatedAt        string     `json:"created_at"`
}

// TaskLink points a task at a record.
type TaskLink struct {
	TargetObject   string `json:"target_object"`
	TargetRecordID string `json:"target_record_id"`
}

// Comment is a timeline comment on a record.
type Comment struct {
	ID               ID             `json:"id"` // comment_id
	ContentPlaintext string         `json:"content_plaintext"`
	Author           map[string]any `json:"author"`
	CreatedAt        string         `json:"created_at"`
}

// Object is one entry of the workspace's object schema.
type Object struct {
	ID           ID     `json:"id"` // object_id
	APISlug      string `json:"api_slug"`
	SingularNoun string `json:"singular_noun"`
	PluralNoun   string `json:"plural_noun"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}

// Record is one record of an object.
type Record struct {
	ID        ID                  `json:"id"` // record_id
	Values    domain.RecordValues `json:"values"`
	CreatedAt string              `json:"created_at"`
}

// CallRecording is a recording attached to a call record.
type CallRecording struct {
	ID        ID     `json:"id"` // call_recording_id
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
}

// Transcript is the text of one call recording.
type Transcript struct {
	Plaintext string `json:"plaintext"`
}
