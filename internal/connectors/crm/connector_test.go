package crm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coveline/crmdex/internal/adapters/driven/storage/memory"
	crm "github.com/coveline/crmdex/internal/connectors/crm"
	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
	"github.com/coveline/crmdex/internal/core/services"
	normaliser "github.com/coveline/crmdex/internal/normalisers/crm"
)

// fixtureWorkspace serves a small but complete workspace: one list with
// one entry, one note, one person record with a comment, one task
// linked to that record, and one call with a recorded transcript.
func fixtureWorkspace(t *testing.T, overrides map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	route := func(pattern, body string) {
		if h, ok := overrides[pattern]; ok {
			mux.HandleFunc(pattern, h)
			return
		}
		mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body))
		})
	}

	route("GET /lists", `{"data":[
		{"id":{"list_id":"l1"},"name":"Prospects","api_slug":"prospects","created_at":"2024-04-01T09:00:00Z"}
	]}`)
	route("GET /lists/l1/entries", `{"data":[
		{"id":{"entry_id":"e1"},"parent_record_id":"r1","parent_object":"people"}
	]}`)

	mux.HandleFunc("GET /notes", func(w http.ResponseWriter, r *http.Request) {
		if h, ok := overrides["GET /notes"]; ok {
			h(w, r)
			return
		}
		// The per-record lookup repeats what the global listing already
		// returned; keep it empty so each fixture row appears once.
		if r.URL.Query().Get("parent_record_id") != "" {
			w.Write([]byte(`{"data":[]}`))
			return
		}
		w.Write([]byte(`{"data":[
			{"id":{"note_id":"n1"},"parent_object":"people","parent_record_id":"r1",
			 "title":"Meeting with Ada Lovelace",
			 "content_plaintext":"Discussed the analytical engine roadmap.",
			 "created_at":"2024-05-02T10:00:00Z"}
		]}`))
	})

	route("GET /tasks", `{"data":[
		{"id":{"task_id":"t1"},"content_plaintext":"Send follow-up",
		 "is_completed":false,
		 "linked_records":[{"target_object":"people","target_record_id":"r1"}],
		 "created_at":"2024-05-03T08:00:00Z"}
	]}`)

	route("GET /objects", `{"data":[
		{"id":{"object_id":"obj-people"},"api_slug":"people","singular_noun":"Person",
		 "description":"People you work with"}
	]}`)
	route("POST /objects/people/records/query", `{"data":[
		{"id":{"record_id":"r1"},
		 "values":{"name":[{"value":"Ada Lovelace"}],"email_addresses":[{"value":"ada@example.com"}]},
		 "created_at":"2024-01-15T12:00:00Z"}
	]}`)
	route("GET /objects/people/records/r1/comments", `{"data":[
		{"id":{"comment_id":"c1"},"content_plaintext":"Loop in engineering before the demo.",
		 "created_at":"2024-05-04T15:00:00Z"}
	]}`)

	route("POST /objects/calls/records/query", `{"data":[
		{"id":{"record_id":"call1"},
		 "values":{"title":[{"value":"Kickoff call"}]},
		 "created_at":"2024-05-05T16:00:00Z"}
	]}`)
	route("GET /objects/calls/records/call1/call-recordings", `{"data":[
		{"id":{"call_recording_id":"rec1"},
		 "started_at":"2024-05-05T16:00:00Z","ended_at":"2024-05-05T16:30:00Z"}
	]}`)
	route("GET /objects/calls/records/call1/call-recordings/rec1/transcript",
		`{"data":{"plaintext":"We agreed to ship the prototype by June."}}`)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func fixtureConnector(t *testing.T, server *httptest.Server) *crm.Connector {
	t.Helper()
	cfg := crm.Config{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		RequestsPerSecond: 1000,
	}
	mapper := normaliser.New(crm.DefaultWebURL, nil)
	return crm.New(cfg, mapper, domain.NewNameCache())
}

// collect drains both sync channels until they close.
func collect(ctx context.Context, conn *crm.Connector) ([]domain.IndexedItem, []error) {
	itemsCh, errsCh := conn.FullSync(ctx)

	var items []domain.IndexedItem
	var errs []error
	for itemsCh != nil || errsCh != nil {
		select {
		case item, ok := <-itemsCh:
			if !ok {
				itemsCh = nil
				continue
			}
			items = append(items, item)
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			errs = append(errs, err)
		}
	}
	return items, errs
}

func TestConnector_Type(t *testing.T) {
	conn := fixtureConnector(t, fixtureWorkspace(t, nil))
	assert.Equal(t, "crm", conn.Type())
}

func TestConnector_Validate(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		conn := fixtureConnector(t, fixtureWorkspace(t, nil))
		assert.NoError(t, conn.Validate(context.Background()))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		server := fixtureWorkspace(t, map[string]http.HandlerFunc{
			"GET /objects": func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
			},
		})
		conn := fixtureConnector(t, server)

		err := conn.Validate(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	})

	t.Run("missing api key", func(t *testing.T) {
		server := fixtureWorkspace(t, nil)
		conn := crm.New(crm.Config{BaseURL: server.URL}, normaliser.New(crm.DefaultWebURL, nil), domain.NewNameCache())
		assert.ErrorIs(t, conn.Validate(context.Background()), crm.ErrMissingAPIKey)
	})

	t.Run("closed", func(t *testing.T) {
		conn := fixtureConnector(t, fixtureWorkspace(t, nil))
		require.NoError(t, conn.Close())
		assert.ErrorIs(t, conn.Validate(context.Background()), domain.ErrConnectorClosed)
	})
}

func TestConnector_FullSync(t *testing.T) {
	conn := fixtureConnector(t, fixtureWorkspace(t, nil))

	items, errs := collect(context.Background(), conn)
	require.Empty(t, errs)
	require.Len(t, items, 8)

	byKey := make(map[domain.Key]domain.IndexedItem, len(items))
	for _, item := range items {
		byKey[domain.Key{Type: item.Type, ID: item.ID}] = item
	}

	list := byKey[domain.Key{Type: "list", ID: "l1"}]
	assert.Equal(t, "List: Prospects", list.Title)

	entry := byKey[domain.Key{Type: "list_entry", ID: "e1"}]
	assert.Equal(t, "Entry in Prospects", entry.Title)
	require.NotNil(t, entry.ParentID)
	assert.Equal(t, "l1", *entry.ParentID)

	note := byKey[domain.Key{Type: "note", ID: "n1"}]
	assert.Equal(t, "Meeting with Ada Lovelace", note.Title)
	assert.Equal(t, "Discussed the analytical engine roadmap.", note.Content)

	object := byKey[domain.Key{Type: "object_config", ID: "obj-people"}]
	assert.Equal(t, "Object: Person", object.Title)

	record := byKey[domain.Key{Type: "people", ID: "r1"}]
	assert.Equal(t, "Ada Lovelace", record.Title)
	assert.Contains(t, record.Content, "email_addresses: ada@example.com")
	assert.Contains(t, record.URL, "/workspace/record/people/r1")

	comment := byKey[domain.Key{Type: "comment", ID: "c1"}]
	assert.Equal(t, "Comment on Ada Lovelace", comment.Title)

	// Records are walked before tasks, so the linked name resolves.
	task := byKey[domain.Key{Type: "task", ID: "t1"}]
	assert.Equal(t, "Task: Send follow-up", task.Title)
	assert.Equal(t, "Completed: false. Linked to Ada Lovelace", task.Content)

	recording := byKey[domain.Key{Type: "call_recording", ID: "rec1"}]
	assert.Equal(t, "Kickoff call", recording.Title)
	assert.Equal(t, "We agreed to ship the prototype by June.", recording.Content)
	require.NotNil(t, recording.ParentID)
	assert.Equal(t, "call1", *recording.ParentID)
}

func TestConnector_FullSync_CallWithoutRecordings(t *testing.T) {
	server := fixtureWorkspace(t, map[string]http.HandlerFunc{
		"POST /objects/calls/records/query": func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":[
				{"id":{"record_id":"call2"},
				 "values":{"title":[{"value":"Debrief"}],
				           "transcript":[{"value":"Short recap of the quarter."}]},
				 "created_at":"2024-05-06T09:00:00Z"}
			]}`))
		},
		"GET /objects/calls/records/call2/call-recordings": func(w http.ResponseWriter, _ *http.Request) {
			http.NotFound(w, nil)
		},
	})
	conn := fixtureConnector(t, server)

	items, errs := collect(context.Background(), conn)
	require.Empty(t, errs)

	var call *domain.IndexedItem
	for i := range items {
		if items[i].Type == "call_recording" && items[i].ID == "call2" {
			call = &items[i]
		}
	}
	require.NotNil(t, call, "call record should fall back to its transcript attribute")
	assert.Equal(t, "Debrief", call.Title)
	assert.Equal(t, "Short recap of the quarter.", call.Content)
}

func TestConnector_FullSync_NoCallsObject(t *testing.T) {
	server := fixtureWorkspace(t, map[string]http.HandlerFunc{
		"POST /objects/calls/records/query": func(w http.ResponseWriter, _ *http.Request) {
			http.NotFound(w, nil)
		},
	})
	conn := fixtureConnector(t, server)

	items, errs := collect(context.Background(), conn)
	assert.Empty(t, errs)
	assert.Len(t, items, 7)
}

func TestConnector_FullSync_UnitFailureIsSoft(t *testing.T) {
	server := fixtureWorkspace(t, map[string]http.HandlerFunc{
		"GET /objects/people/records/r1/comments": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	conn := fixtureConnector(t, server)

	items, errs := collect(context.Background(), conn)

	require.Len(t, errs, 1)
	itemErr, ok := driven.AsItemError(errs[0])
	require.True(t, ok)
	assert.Equal(t, "record r1 comments", itemErr.Unit)

	// Everything but the comment still arrives.
	require.Len(t, items, 7)
	for _, item := range items {
		assert.NotEqual(t, "comment", item.Type)
	}
}

func TestConnector_FullSync_UnauthorizedAborts(t *testing.T) {
	server := fixtureWorkspace(t, map[string]http.HandlerFunc{
		"GET /lists": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
		},
	})
	conn := fixtureConnector(t, server)

	items, errs := collect(context.Background(), conn)
	assert.Empty(t, items)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrAuthInvalid)
}

func TestConnector_FullSync_Closed(t *testing.T) {
	conn := fixtureConnector(t, fixtureWorkspace(t, nil))
	require.NoError(t, conn.Close())

	items, errs := collect(context.Background(), conn)
	assert.Empty(t, items)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrConnectorClosed)
}

func TestConnector_FullSync_Cancelled(t *testing.T) {
	conn := fixtureConnector(t, fixtureWorkspace(t, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, errs := collect(ctx, conn)
	assert.Empty(t, items)
	assert.Empty(t, errs)
}

// TestConnector_EndToEnd runs the full pipeline: walk the fixture
// workspace, index it in memory, then search it.
func TestConnector_EndToEnd(t *testing.T) {
	conn := fixtureConnector(t, fixtureWorkspace(t, nil))
	store := memory.NewItemStore()
	runs := memory.NewSyncRunStore()

	orchestrator := services.NewSyncOrchestrator(conn, store, runs, 0)
	run, err := orchestrator.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, run.ItemsUpserted)
	assert.Equal(t, 0, run.ErrorCount)

	search := services.NewSearchService(store, 0)
	results, err := search.Search(context.Background(), "analytical engine", domain.SearchOptions{
		Types: []string{"note"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n1", results[0].Item.ID)
	assert.Contains(t, results[0].Snippet, "[[analytical]]")
}
