// Package connectors provides implementations of the Connector interface
// for external entity sources. Each connector knows how to walk one
// source system and emit its entities as indexable items.
package connectors
