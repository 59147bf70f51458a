package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driving"
)

// mockSearchService returns canned results and records the options.
type mockSearchService struct {
	lastQuery string
	lastOpts  domain.SearchOptions
	results   []domain.SearchResult
	err       error
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockSyncOrchestrator returns a canned run and status.
type mockSyncOrchestrator struct {
	run    *domain.SyncRun
	status *driving.SyncStatus
	err    error
}

func (m *mockSyncOrchestrator) Sync(_ context.Context) (*domain.SyncRun, error) {
	return m.run, m.err
}

func (m *mockSyncOrchestrator) Status(_ context.Context) (*driving.SyncStatus, error) {
	if m.status == nil {
		return &driving.SyncStatus{}, nil
	}
	return m.status, nil
}

// mockRunStore serves a fixed run history.
type mockRunStore struct {
	runs []domain.SyncRun
}

func (m *mockRunStore) Save(_ context.Context, _ domain.SyncRun) error {
	return nil
}

func (m *mockRunStore) Latest(_ context.Context) (*domain.SyncRun, error) {
	if len(m.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.runs[0], nil
}

func (m *mockRunStore) List(_ context.Context, limit int) ([]domain.SyncRun, error) {
	if limit > len(m.runs) {
		limit = len(m.runs)
	}
	return m.runs[:limit], nil
}

func (m *mockRunStore) Close() error {
	return nil
}

func testRun() *domain.SyncRun {
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.SyncRun{
		ID:            "run-1",
		StartedAt:     started,
		FinishedAt:    started.Add(42 * time.Second),
		ItemsUpserted: 120,
		TypeCounts:    map[string]int{"note": 80, "person": 40},
	}
}

// setupTestServices injects mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	return setupTestServicesWith(
		&mockSearchService{
			results: []domain.SearchResult{
				{
					Item:    domain.IndexedItem{Type: "note", ID: "n1", Title: "Meeting notes"},
					Score:   0.42,
					Snippet: "Discussed the [[analytical]] engine roadmap.",
				},
			},
		},
		&mockSyncOrchestrator{run: testRun()},
		&mockRunStore{runs: []domain.SyncRun{*testRun()}},
	)
}

func setupTestServicesWith(
	search driving.SearchService,
	sync driving.SyncOrchestrator,
	runs *mockRunStore,
) func() {
	prevSearch := searchService
	prevSync := syncOrchestrator
	prevRuns := runStore

	SetServices(search, sync, runs)

	return func() {
		searchService = prevSearch
		syncOrchestrator = prevSync
		runStore = prevRuns
	}
}

// resetFlags restores flag variables to their defaults. Values stick
// between Execute calls otherwise.
func resetFlags() {
	searchLimit = 10
	searchJSON = false
	searchTypes = nil
	searchFrom = ""
	searchTo = ""
	searchRerank = false
	statusRuns = 5
	verbose = false
}

// execute runs the root command with the given args and captures output.
func execute(args ...string) (string, error) {
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "crmdex", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"search", "sync", "status", "tui", "version"} {
		assert.True(t, names[want], "command %q should be registered", want)
	}
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	// Empty keeps the current value.
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}
