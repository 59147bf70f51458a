package crm

import "github.com/coveline/crmdex/internal/core/domain"

// ItemMapper converts wire entities into index rows. The concrete
// implementation lives in the normalisers tree so deep-link and naming
// policy stay out of the transport code.
type ItemMapper interface {
	// List maps a workspace list.
	List(l List) domain.IndexedItem

	// ListEntry maps one entry of a list.
	ListEntry(e Entry, parent List) domain.IndexedItem

	// Note maps a note.
	Note(n Note) domain.IndexedItem

	// Task maps a task. parentName may be empty when the linked record
	// is unknown.
	Task(t Task, parentName string) domain.IndexedItem

	// Comment maps a timeline comment on the named record.
	Comment(cm Comment, objectSlug, recordID, recordName string) domain.IndexedItem

	// ObjectConfig maps one entry of the object schema.
	ObjectConfig(o Object) domain.IndexedItem

	// Record maps a record and returns its display name alongside.
	Record(r Record, objectSlug string) (domain.IndexedItem, string)

	// CallRecording maps one recording of a call record, with its
	// transcript text.
	CallRecording(rec CallRecording, call Record, transcript, objectSlug string) domain.IndexedItem

	// CallRecord maps a call record that has no recording children,
	// using the transcript attribute on the record itself.
	CallRecord(call Record, transcript, objectSlug string) domain.IndexedItem
}
