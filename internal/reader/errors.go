package reader

import "fmt"

// UnsupportedFormatError marks a file whose extension is outside the
// supported format set
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s", e.Ext, e.Path)
}

// FileReadError wraps an open or parse failure for one source file
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// EmptyDataError marks a file that parsed cleanly but produced zero data rows
type EmptyDataError struct {
	Path string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("file %s contains no data rows", e.Path)
}
