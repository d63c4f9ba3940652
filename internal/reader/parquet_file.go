package reader

import (
	"os"

	"github.com/xitongsys/parquet-go/source"
)

// localFile adapts a local file to the source.ParquetFile interface the
// parquet reader and writer expect.
type localFile struct {
	path string
	file *os.File
}

func openLocalParquet(path string) (source.ParquetFile, error) {
	return (&localFile{}).Open(path)
}

func createLocalParquet(path string) (source.ParquetFile, error) {
	return (&localFile{}).Create(path)
}

// Open opens an existing file for reading
func (f *localFile) Open(name string) (source.ParquetFile, error) {
	if name == "" {
		name = f.path
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &localFile{path: name, file: file}, nil
}

// Create truncates or creates a file for writing
func (f *localFile) Create(name string) (source.ParquetFile, error) {
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &localFile{path: name, file: file}, nil
}

func (f *localFile) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

func (f *localFile) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

func (f *localFile) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

func (f *localFile) Close() error {
	return f.file.Close()
}
