package export

import (
	"context"
	"os"
	"path/filepath"
)

// Reference locates a stored report for delivery.
type Reference struct {
	Dir      string `json:"dir,omitempty"`
	Filename string `json:"filename"`
	Location string `json:"location"`
}

// ReportStore persists a finished workbook under filename.
type ReportStore interface {
	Store(ctx context.Context, data []byte, filename string) (Reference, error)
}

// FileStore keeps reports in a directory on the local filesystem.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Store writes data to Dir/filename.
func (s *FileStore) Store(_ context.Context, data []byte, filename string) (Reference, error) {
	path, err := WriteReport(s.Dir, filename, data)
	if err != nil {
		return Reference{}, err
	}
	return Reference{Dir: s.Dir, Filename: filename, Location: path}, nil
}

// WriteReport creates dir if needed and writes data to dir/filename,
// replacing any existing file. The content is staged in a temporary file and
// renamed into place, so readers never observe a partial report.
func WriteReport(dir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &StorageError{Op: "create directory", Path: dir, Err: err}
	}

	path := filepath.Join(dir, filename)
	tmp, err := os.CreateTemp(dir, "."+filename+".*")
	if err != nil {
		return "", &StorageError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Op: "close", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Op: "rename", Path: path, Err: err}
	}
	return path, nil
}
