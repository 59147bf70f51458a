// Package crm maps CRM wire entities into index rows.
//
// Deep-link construction and display naming live here, not in the
// connector: the connector moves bytes, this package decides what a
// list, note, task, comment, record, or call recording looks like in
// the index.
package crm
