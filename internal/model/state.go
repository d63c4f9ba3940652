package model

// FileState tracks a source file through the upload pipeline
type FileState string

const (
	StatePending        FileState = "pending"
	StateRead           FileState = "read"
	StateSchemaInferred FileState = "schema_inferred"
	StateTableEnsured   FileState = "table_ensured"
	StateUploading      FileState = "uploading"
	StateDone           FileState = "done"
	StateFailed         FileState = "failed"
)

// Terminal reports whether the state ends the pipeline for a file
func (s FileState) Terminal() bool {
	return s == StateDone || s == StateFailed
}
