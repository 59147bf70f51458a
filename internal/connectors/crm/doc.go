// Package crm fetches indexable entities from an Attio-compatible CRM
// REST API.
//
// The connector walks the workspace sequentially: lists and their
// entries, workspace notes and tasks, every object's schema and records
// (with per-record comments and attached notes), and finally the calls
// object with its recordings and transcripts. Every response is wrapped
// in a `{"data": [...]}` envelope; listing endpoints page by offset and
// stop on a short page.
//
// # Failure model
//
// Each sync unit fails soft: a failed page, record, or sub-resource is
// reported on the error channel as a driven.ItemError and the walk
// continues. Only context cancellation and credential rejection abort a
// run.
//
// # Rate limiting
//
// Requests pass through an x/time/rate token bucket (~8 req/s). A 429
// response is retried once after honouring Retry-After, capped so a
// hostile header cannot stall the run.
package crm
