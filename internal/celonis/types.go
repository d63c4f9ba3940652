package celonis

// DataJob is a named container resource in the pool that groups
// transformations and receives pushed data
type DataJob struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DataPoolID string `json:"dataPoolId,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Transformation is a named SQL script resource within a data job,
// executable on demand
type Transformation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Statement string `json:"statement,omitempty"`
}

type createJobRequest struct {
	Name       string `json:"name"`
	DataPoolID string `json:"dataPoolId"`
}

type createTransformationRequest struct {
	Name string `json:"name"`
}

type updateTransformationRequest struct {
	Name      string `json:"name"`
	Statement string `json:"statement"`
}

// PushJob is one data-push session targeting a pool table. Type DELTA
// appends; the platform owns the append/upsert semantics.
type PushJob struct {
	ID         string `json:"id"`
	TargetName string `json:"targetName"`
	Type       string `json:"type"`
	Status     string `json:"status,omitempty"`
}

type createPushJobRequest struct {
	TargetName string `json:"targetName"`
	Type       string `json:"type"`
	DataPoolID string `json:"dataPoolId"`
}

// chunkPayload is one uploaded chunk: the ordered column header and
// row-oriented records in the same order
type chunkPayload struct {
	Columns []string        `json:"columns"`
	Records [][]interface{} `json:"records"`
}
