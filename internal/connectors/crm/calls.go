package crm

import (
	"context"
	"fmt"
)

// ListCallRecordings fetches the recordings attached to one call
// record. A workspace without the recording feature returns 404, which
// callers treat as "no recordings".
func (c *Client) ListCallRecordings(ctx context.Context, objectSlug, recordID string) ([]CallRecording, error) {
	var recordings []CallRecording
	path := "objects/" + objectSlug + "/records/" + recordID + "/call-recordings"
	if err := c.Get(ctx, path, nil, &recordings); err != nil {
		return nil, fmt.Errorf("list recordings of %s: %w", recordID, err)
	}
	return recordings, nil
}

// GetTranscript fetches the transcript of one recording.
func (c *Client) GetTranscript(ctx context.Context, objectSlug, recordID, recordingID string) (*Transcript, error) {
	var transcript Transcript
	path := "objects/" + objectSlug + "/records/" + recordID + "/call-recordings/" + recordingID + "/transcript"
	if err := c.Get(ctx, path, nil, &transcript); err != nil {
		return nil, fmt.Errorf("get transcript of %s: %w", recordingID, err)
	}
	return &transcript, nil
}
