// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The snippet and rank helpers live here too: pure functions shared by
// every surface that renders search results.
package services
