package celonis

import (
	"context"
	"net/http"

	"celonis-push/internal/model"
)

// pushTypeDelta appends pushed records to the existing table content.
// Repeated runs therefore accumulate rows; dedup is the platform's concern.
const pushTypeDelta = "DELTA"

// CreatePushJob opens a data-push session targeting the named pool table and
// returns its identifier. One session covers all chunks of one source file.
func (c *Client) CreatePushJob(ctx context.Context, targetName string) (string, error) {
	payload := createPushJobRequest{
		TargetName: targetName,
		Type:       pushTypeDelta,
		DataPoolID: c.poolID,
	}

	var job PushJob
	if err := c.doJSON(ctx, "create push job", http.MethodPost, c.pushURL("/jobs/"), payload, &job); err != nil {
		return "", err
	}

	return job.ID, nil
}

// PushChunk uploads one chunk's rows to the push job. The column header
// repeats on every chunk and matches the generated DDL exactly.
func (c *Client) PushChunk(ctx context.Context, pushJobID string, columns []string, chunk model.Chunk) error {
	payload := chunkPayload{Columns: columns, Records: chunk.Rows}
	url := c.pushURL("/jobs/%s/chunks", pushJobID)
	return c.doJSON(ctx, "push chunk", http.MethodPost, url, payload, nil)
}

// SealPushJob marks the push job complete so the platform starts ingesting
// the uploaded chunks
func (c *Client) SealPushJob(ctx context.Context, pushJobID string) error {
	return c.doJSON(ctx, "seal push job", http.MethodPost, c.pushURL("/jobs/%s", pushJobID), nil, nil)
}
