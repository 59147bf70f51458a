package crm

import (
	"context"
	"fmt"
)

// ListObjects fetches the workspace's object schema.
func (c *Client) ListObjects(ctx context.Context) ([]Object, error) {
	var objects []Object
	if err := c.Get(ctx, "objects", nil, &objects); err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	return objects, nil
}

// recordQuery is the body of the record query endpoint.
type recordQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// QueryRecords fetches every record of one object.
func (c *Client) QueryRecords(ctx context.Context, objectSlug string, pageLimit int) ([]Record, error) {
	var records []Record

	err := forEachPage(pageLimit, func(offset, limit int) (int, error) {
		var page []Record
		body := recordQuery{Limit: limit, Offset: offset}
		if err := c.Post(ctx, "objects/"+objectSlug+"/records/query", body, &page); err != nil {
			return 0, err
		}
		records = append(records, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, fmt.Errorf("query records of %s: %w", objectSlug, err)
	}
	return records, nil
}
