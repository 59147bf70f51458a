package crm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListLists fetches every workspace list.
func (c *Client) ListLists(ctx context.Context) ([]List, error) {
	var lists []List
	if err := c.Get(ctx, "lists", nil, &lists); err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

// ListEntries fetches every entry of one list.
func (c *Client) ListEntries(ctx context.Context, listID string, pageLimit int) ([]Entry, error) {
	var entries []Entry

	err := forEachPage(pageLimit, func(offset, limit int) (int, error) {
		query := url.Values{
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		}
		var page []Entry
		if err := c.Get(ctx, "lists/"+listID+"/entries", query, &page); err != nil {
			return 0, err
		}
		entries = append(entries, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, fmt.Errorf("list entries of %s: %w", listID, err)
	}
	return entries, nil
}
