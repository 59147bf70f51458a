// Package domain defines the core business entities for crmdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IndexedItem: The denormalised, search-ready representation of one CRM entity
//   - RecordValues: A CRM record's field-value map
//   - NameCache: Parent-name lookups shared across a sync run
//   - SearchOptions / SearchResult: Search inputs and hits
//   - SyncRun: The journal row written after each ingestion run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
