package crm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListNotes fetches workspace notes. With a non-empty parentRecordID it
// returns only the notes attached to that record.
func (c *Client) ListNotes(ctx context.Context, parentObject, parentRecordID string, pageLimit int) ([]Note, error) {
	var notes []Note

	err := forEachPage(pageLimit, func(offset, limit int) (int, error) {
		query := url.Values{
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		}
		if parentRecordID != "" {
			query.Set("parent_record_id", parentRecordID)
			query.Set("parent_object", parentObject)
		}
		var page []Note
		if err := c.Get(ctx, "notes", query, &page); err != nil {
			return 0, err
		}
		notes = append(notes, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// ListTasks fetches every workspace task.
func (c *Client) ListTasks(ctx context.Context, pageLimit int) ([]Task, error) {
	var tasks []Task

	err := forEachPage(pageLimit, func(offset, limit int) (int, error) {
		query := url.Values{
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		}
		var page []Task
		if err := c.Get(ctx, "tasks", query, &page); err != nil {
			return 0, err
		}
		tasks = append(tasks, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListComments fetches the timeline comments of one record.
func (c *Client) ListComments(ctx context.Context, objectSlug, recordID string) ([]Comment, error) {
	var comments []Comment
	path := "objects/" + objectSlug + "/records/" + recordID + "/comments"
	if err := c.Get(ctx, path, nil, &comments); err != nil {
		return nil, fmt.Errorf("list comments of %s: %w", recordID, err)
	}
	return comments, nil
}
