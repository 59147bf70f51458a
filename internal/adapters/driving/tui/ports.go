// Package tui provides an interactive terminal user interface for crmdex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/coveline/crmdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Sync orchestrates CRM ingestion, used for the status line.
	Sync driving.SyncOrchestrator
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, sync driving.SyncOrchestrator) *Ports {
	return &Ports{
		Search: search,
		Sync:   sync,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
