package celonis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celonis-push/internal/model"
)

// fakePool is a minimal in-memory Celonis Integration API
type fakePool struct {
	mu              sync.Mutex
	jobs            []DataJob
	transformations []Transformation
	statements      map[string]string
	jobStatus       string
	pushChunks      []chunkPayload
	sealed          []string
	failEnsure      bool
}

func (p *fakePool) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	requireAuth := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("/integration/api/pools/pool-1/jobs", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(p.jobs)
		case http.MethodPost:
			var req createJobRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			job := DataJob{ID: "job-1", Name: req.Name, DataPoolID: req.DataPoolID}
			p.jobs = append(p.jobs, job)
			json.NewEncoder(w).Encode(job)
		}
	})

	mux.HandleFunc("/integration/api/pools/pool-1/jobs/job-1", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		json.NewEncoder(w).Encode(DataJob{ID: "job-1", Status: p.jobStatus})
	})

	mux.HandleFunc("/integration/api/pools/pool-1/jobs/job-1/transformations", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(p.transformations)
		case http.MethodPost:
			var req createTransformationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			created := Transformation{ID: "task-1", Name: req.Name}
			p.transformations = append(p.transformations, created)
			json.NewEncoder(w).Encode(created)
		}
	})

	mux.HandleFunc("/integration/api/pools/pool-1/jobs/job-1/transformations/task-1", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		var req updateTransformationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.statements == nil {
			p.statements = map[string]string{}
		}
		p.statements["task-1"] = req.Statement
	})

	mux.HandleFunc("/integration/api/pools/pool-1/jobs/job-1/run", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.failEnsure {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid statement"}`))
			return
		}
		p.jobStatus = "SUCCESS"
	})

	mux.HandleFunc("/integration/api/v1/data-push/pool-1/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		switch r.URL.Path {
		case "/integration/api/v1/data-push/pool-1/jobs/":
			var req createPushJobRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "DELTA", req.Type)
			json.NewEncoder(w).Encode(PushJob{ID: "push-1", TargetName: req.TargetName, Type: req.Type})
		case "/integration/api/v1/data-push/pool-1/jobs/push-1/chunks":
			var req chunkPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			p.pushChunks = append(p.pushChunks, req)
		case "/integration/api/v1/data-push/pool-1/jobs/push-1":
			p.sealed = append(p.sealed, "push-1")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	return mux
}

func newTestClient(t *testing.T, pool *fakePool) *Client {
	t.Helper()
	server := httptest.NewServer(pool.handler(t))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "pool-1", "test-key")
	require.NoError(t, err)
	return client
}

func TestEnsureJobCreatesWhenAbsent(t *testing.T) {
	pool := &fakePool{}
	client := newTestClient(t, pool)

	jobID, err := client.EnsureJob(context.Background(), "TEST_DATA_JOB")
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	require.Len(t, pool.jobs, 1)
	assert.Equal(t, "TEST_DATA_JOB", pool.jobs[0].Name)
}

func TestEnsureJobFindsExisting(t *testing.T) {
	pool := &fakePool{jobs: []DataJob{{ID: "job-1", Name: "TEST_DATA_JOB"}}}
	client := newTestClient(t, pool)

	jobID, err := client.EnsureJob(context.Background(), "TEST_DATA_JOB")
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Len(t, pool.jobs, 1)
}

func TestEnsureTableWritesStatementAndWaits(t *testing.T) {
	pool := &fakePool{jobStatus: "RUNNING"}
	client := newTestClient(t, pool)

	statement := `CREATE TABLE IF NOT EXISTS "orders" ("id" INT);`
	err := client.EnsureTable(context.Background(), "job-1", "TEST_TRANSFORMATION", statement)
	require.NoError(t, err)

	assert.Equal(t, statement, pool.statements["task-1"])
	require.Len(t, pool.transformations, 1)
	assert.Equal(t, "TEST_TRANSFORMATION", pool.transformations[0].Name)
}

func TestEnsureTableUpdatesExistingTransformation(t *testing.T) {
	pool := &fakePool{
		jobStatus:       "RUNNING",
		transformations: []Transformation{{ID: "task-1", Name: "TEST_TRANSFORMATION"}},
	}
	client := newTestClient(t, pool)

	err := client.EnsureTable(context.Background(), "job-1", "TEST_TRANSFORMATION", "CREATE TABLE x;")
	require.NoError(t, err)
	assert.Len(t, pool.transformations, 1)
}

func TestEnsureTableSurfacesAPIError(t *testing.T) {
	pool := &fakePool{failEnsure: true}
	client := newTestClient(t, pool)

	err := client.EnsureTable(context.Background(), "job-1", "TEST_TRANSFORMATION", "CREATE TABLE x;")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "invalid statement")
}

func TestPushChunksInOrder(t *testing.T) {
	pool := &fakePool{}
	client := newTestClient(t, pool)
	ctx := context.Background()

	pushJobID, err := client.CreatePushJob(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "push-1", pushJobID)

	columns := []string{"id", "name"}
	for i := 0; i < 3; i++ {
		chunk := model.Chunk{Index: i, Rows: [][]interface{}{{i, "x"}}}
		require.NoError(t, client.PushChunk(ctx, pushJobID, columns, chunk))
	}
	require.NoError(t, client.SealPushJob(ctx, pushJobID))

	require.Len(t, pool.pushChunks, 3)
	for i, chunk := range pool.pushChunks {
		assert.Equal(t, columns, chunk.Columns)
		assert.Equal(t, float64(i), chunk.Records[0][0])
	}
	assert.Equal(t, []string{"push-1"}, pool.sealed)
}

func TestBadKeyYieldsAPIError(t *testing.T) {
	pool := &fakePool{}
	server := httptest.NewServer(pool.handler(t))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "pool-1", "wrong-key")
	require.NoError(t, err)

	_, err = client.EnsureJob(context.Background(), "TEST_DATA_JOB")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
