// Package postgres implements the item index on PostgreSQL full-text
// search. Rows live in a single items table keyed (type, id) with a
// generated tsvector column, so an upsert is one statement and a batch
// is one round trip.
//
// Cancellation, statement timeouts and query syntax failures are mapped
// onto the domain sentinel errors so callers can react without knowing
// the driver.
package postgres
