package crm

import (
	"context"
	"fmt"
	"sync"

	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector fetches indexable entities from the CRM.
type Connector struct {
	cfg    Config
	client *Client
	mapper ItemMapper
	names  *domain.NameCache

	mu     sync.Mutex
	closed bool
}

// New creates a new CRM connector. The name cache is injected so each
// run (and each test) gets isolated parent-name state.
func New(cfg Config, mapper ItemMapper, names *domain.NameCache) *Connector {
	cfg = cfg.withDefaults()
	return &Connector{
		cfg:    cfg,
		client: NewClient(context.Background(), cfg),
		mapper: mapper,
		names:  names,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "crm"
}

// Validate checks credentials with a lightweight schema call.
func (c *Connector) Validate(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrConnectorClosed
	}
	c.mu.Unlock()

	if c.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}

	if _, err := c.client.ListObjects(ctx); err != nil {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
		}
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// FullSync walks the whole workspace sequentially on one goroutine.
// The channel is delivery, not fan-out; every API call blocks the walk.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.IndexedItem, <-chan error) {
	itemsCh := make(chan domain.IndexedItem)
	errsCh := make(chan error, 1)

	go func() {
		defer close(itemsCh)
		defer close(errsCh)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errsCh <- domain.ErrConnectorClosed
			return
		}
		c.mu.Unlock()

		w := &walker{
			cfg:    c.cfg,
			client: c.client,
			mapper: c.mapper,
			names:  c.names,
			items:  itemsCh,
			errs:   errsCh,
		}
		if err := w.run(ctx); err != nil && ctx.Err() == nil {
			errsCh <- err
		}
	}()

	return itemsCh, errsCh
}

// Close releases resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// walker holds the state of one full sync pass.
type walker struct {
	cfg    Config
	client *Client
	mapper ItemMapper
	names  *domain.NameCache
	items  chan<- domain.IndexedItem
	errs   chan<- error
}

// run walks the traversal plan. Objects come before tasks so the name
// cache is warm when task rows resolve their linked records.
func (w *walker) run(ctx context.Context) error {
	steps := []func(context.Context) error{
		w.syncLists,
		w.syncNotes,
		w.syncObjects,
		w.syncTasks,
		w.syncCalls,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// emit delivers one item, honouring cancellation.
func (w *walker) emit(ctx context.Context, item domain.IndexedItem) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case w.items <- item:
		return nil
	}
}

// softFail reports a recoverable unit failure on the error channel and
// returns nil so the walk continues. Cancellation and credential
// rejection are returned instead; they abort the run.
func (w *walker) softFail(ctx context.Context, unit string, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if IsUnauthorized(err) {
		return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case w.errs <- &driven.ItemError{Unit: unit, Err: err}:
		return nil
	}
}

func (w *walker) syncLists(ctx context.Context) error {
	lists, err := w.client.ListLists(ctx)
	if err != nil {
		return w.softFail(ctx, "lists", err)
	}

	for _, l := range lists {
		if err := w.emit(ctx, w.mapper.List(l)); err != nil {
			return err
		}

		listID := l.ID.Get("list_id")
		entries, err := w.client.ListEntries(ctx, listID, w.cfg.PageLimit)
		if err != nil {
			if err := w.softFail(ctx, "list "+listID+" entries", err); err != nil {
				return err
			}
			continue
		}
		for _, e := range entries {
			if err := w.emit(ctx, w.mapper.ListEntry(e, l)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) syncNotes(ctx context.Context) error {
	notes, err := w.client.ListNotes(ctx, "", "", w.cfg.PageLimit)
	if err != nil {
		return w.softFail(ctx, "notes", err)
	}

	for _, n := range notes {
		if err := w.emit(ctx, w.mapper.Note(n)); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) syncTasks(ctx context.Context) error {
	tasks, err := w.client.ListTasks(ctx, w.cfg.PageLimit)
	if err != nil {
		return w.softFail(ctx, "tasks", err)
	}

	for _, t := range tasks {
		var parentName string
		if len(t.LinkedRecords) > 0 {
			parentName, _ = w.names.Get(t.LinkedRecords[0].TargetRecordID)
		}
		if err := w.emit(ctx, w.mapper.Task(t, parentName)); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) syncObjects(ctx context.Context) error {
	objects, err := w.client.ListObjects(ctx)
	if err != nil {
		return w.softFail(ctx, "objects", err)
	}

	for _, obj := range objects {
		if err := w.emit(ctx, w.mapper.ObjectConfig(obj)); err != nil {
			return err
		}
		if err := w.syncRecords(ctx, obj.APISlug); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) syncRecords(ctx context.Context, slug string) error {
	records, err := w.client.QueryRecords(ctx, slug, w.cfg.PageLimit)
	if err != nil {
		return w.softFail(ctx, "object "+slug+" records", err)
	}

	for _, rec := range records {
		recordID := rec.ID.Get("record_id")

		item, name := w.mapper.Record(rec, slug)
		w.names.Set(recordID, name)
		if err := w.emit(ctx, item); err != nil {
			return err
		}

		comments, err := w.client.ListComments(ctx, slug, recordID)
		if err != nil {
			if err := w.softFail(ctx, "record "+recordID+" comments", err); err != nil {
				return err
			}
		}
		for _, cm := range comments {
			if err := w.emit(ctx, w.mapper.Comment(cm, slug, recordID, name)); err != nil {
				return err
			}
		}

		notes, err := w.client.ListNotes(ctx, slug, recordID, w.cfg.PageLimit)
		if err != nil {
			if err := w.softFail(ctx, "record "+recordID+" notes", err); err != nil {
				return err
			}
		}
		for _, n := range notes {
			if err := w.emit(ctx, w.mapper.Note(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) syncCalls(ctx context.Context) error {
	slug := w.cfg.CallsObject

	calls, err := w.client.QueryRecords(ctx, slug, w.cfg.PageLimit)
	if err != nil {
		// Workspaces without a calls object are common; 404 is silence,
		// not noise.
		if IsNotFound(err) {
			return nil
		}
		return w.softFail(ctx, "calls", err)
	}

	for _, call := range calls {
		callID := call.ID.Get("record_id")

		recordings, err := w.client.ListCallRecordings(ctx, slug, callID)
		if err != nil && !IsNotFound(err) {
			if err := w.softFail(ctx, "call "+callID+" recordings", err); err != nil {
				return err
			}
			continue
		}

		if len(recordings) == 0 {
			transcript := domain.FieldString(call.Values, w.cfg.TranscriptSlug)
			if err := w.emit(ctx, w.mapper.CallRecord(call, transcript, slug)); err != nil {
				return err
			}
			continue
		}

		for _, rec := range recordings {
			recordingID := rec.ID.Get("call_recording_id")

			transcript := ""
			if t, err := w.client.GetTranscript(ctx, slug, callID, recordingID); err != nil {
				if err := w.softFail(ctx, "recording "+recordingID+" transcript", err); err != nil {
					return err
				}
			} else {
				transcript = t.Plaintext
			}

			if err := w.emit(ctx, w.mapper.CallRecording(rec, call, transcript, slug)); err != nil {
				return err
			}
		}
	}
	return nil
}
