package export

import (
	"errors"
	"fmt"
)

// UnresolvedPartitionError reports a partition name with no matching partition.
type UnresolvedPartitionError struct {
	Name string
}

func (e *UnresolvedPartitionError) Error() string {
	return fmt.Sprintf("domain name '%s' could not be resolved", e.Name)
}

// DirectoryAccessError wraps a failure of the directory provider while
// enumerating a partition.
type DirectoryAccessError struct {
	Partition string
	Err       error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("directory access for %q failed: %v", e.Partition, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// SerializationError wraps a failure of the spreadsheet engine.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("workbook serialization failed: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// StorageError wraps a failure to create the report directory or write the file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// KindOf names the failure class of err for logs and metrics.
func KindOf(err error) string {
	var (
		dae *DirectoryAccessError
		se  *SerializationError
		ste *StorageError
		upe *UnresolvedPartitionError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &dae):
		return "directory_access"
	case errors.As(err, &se):
		return "serialization"
	case errors.As(err, &ste):
		return "storage"
	case errors.As(err, &upe):
		return "unresolved_partition"
	default:
		return "unknown"
	}
}
