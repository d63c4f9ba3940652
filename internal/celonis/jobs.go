package celonis

import (
	"context"
	"net/http"
)

// EnsureJob looks up the data job by name within the pool and creates it if
// absent. Idempotent across runs; returns the job identifier.
func (c *Client) EnsureJob(ctx context.Context, name string) (string, error) {
	var jobs []DataJob
	err := c.doJSON(ctx, "list jobs", http.MethodGet, c.poolURL("/jobs"), nil, &jobs)
	if err != nil {
		return "", err
	}

	for _, job := range jobs {
		if job.Name == name {
			return job.ID, nil
		}
	}

	var created DataJob
	payload := createJobRequest{Name: name, DataPoolID: c.poolID}
	err = c.doJSON(ctx, "create job", http.MethodPost, c.poolURL("/jobs"), payload, &created)
	if err != nil {
		return "", err
	}

	return created.ID, nil
}

// GetJob fetches the current state of one data job
func (c *Client) GetJob(ctx context.Context, jobID string) (*DataJob, error) {
	var job DataJob
	err := c.doJSON(ctx, "get job", http.MethodGet, c.poolURL("/jobs/%s", jobID), nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
