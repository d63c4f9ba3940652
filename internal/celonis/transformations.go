package celonis

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	executePollInterval = 1 * time.Second
	executeMaxAttempts  = 300
)

// EnsureTable writes the CREATE TABLE statement into the fixed-name
// transformation of the job (creating the transformation if absent) and
// executes the job, blocking until the platform reports completion or
// failure.
func (c *Client) EnsureTable(ctx context.Context, jobID, transformationName, statement string) error {
	transformation, err := c.ensureTransformation(ctx, jobID, transformationName)
	if err != nil {
		return err
	}

	payload := updateTransformationRequest{Name: transformationName, Statement: statement}
	url := c.poolURL("/jobs/%s/transformations/%s", jobID, transformation.ID)
	if err := c.doJSON(ctx, "update transformation", http.MethodPut, url, payload, nil); err != nil {
		return err
	}

	if err := c.doJSON(ctx, "execute job", http.MethodPost, c.poolURL("/jobs/%s/run", jobID), nil, nil); err != nil {
		return err
	}

	return c.waitForJob(ctx, jobID)
}

func (c *Client) ensureTransformation(ctx context.Context, jobID, name string) (*Transformation, error) {
	var transformations []Transformation
	url := c.poolURL("/jobs/%s/transformations", jobID)
	if err := c.doJSON(ctx, "list transformations", http.MethodGet, url, nil, &transformations); err != nil {
		return nil, err
	}

	for _, t := range transformations {
		if t.Name == name {
			return &t, nil
		}
	}

	var created Transformation
	payload := createTransformationRequest{Name: name}
	if err := c.doJSON(ctx, "create transformation", http.MethodPost, url, payload, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// waitForJob polls the job until its execution reaches a terminal status
func (c *Client) waitForJob(ctx context.Context, jobID string) error {
	attempts := 0

	for {
		attempts++
		if attempts > executeMaxAttempts {
			return fmt.Errorf("job execution timeout after %d attempts", attempts)
		}

		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			return err
		}

		switch job.Status {
		case "SUCCESS", "SUCCESSFUL":
			return nil
		case "FAIL", "FAILED", "CANCEL", "CANCELED":
			return fmt.Errorf("job execution ended with status %s", job.Status)
		case "", "NEW", "QUEUED", "RUNNING":
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(executePollInterval):
				continue
			}
		default:
			return fmt.Errorf("unknown job status: %s", job.Status)
		}
	}
}
