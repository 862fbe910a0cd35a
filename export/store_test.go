package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/lugatuic/domainreport/export"
)

func TestWriteReport(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		is := is.New(t)
		dir := filepath.Join(t.TempDir(), "data", "reports")

		path, err := export.WriteReport(dir, "r.xlsx", []byte("one"))
		is.NoErr(err)
		is.Equal(path, filepath.Join(dir, "r.xlsx"))

		got, err := os.ReadFile(path)
		is.NoErr(err)
		is.Equal(string(got), "one")
	})

	t.Run("overwrites an existing report", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()

		_, err := export.WriteReport(dir, "r.xlsx", []byte("first"))
		is.NoErr(err)
		path, err := export.WriteReport(dir, "r.xlsx", []byte("second"))
		is.NoErr(err)

		got, err := os.ReadFile(path)
		is.NoErr(err)
		is.Equal(string(got), "second")

		entries, err := os.ReadDir(dir)
		is.NoErr(err)
		is.Equal(len(entries), 1) // no temp files left behind
	})

	t.Run("concurrent writers share the directory", func(t *testing.T) {
		is := is.New(t)
		dir := filepath.Join(t.TempDir(), "reports")

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := export.WriteReport(dir, "same.xlsx", []byte("x"))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			is.NoErr(err)
		}
	})

	t.Run("directory blocked by a file is a StorageError", func(t *testing.T) {
		is := is.New(t)
		blocker := filepath.Join(t.TempDir(), "reports")
		is.NoErr(os.WriteFile(blocker, []byte("not a dir"), 0o644))

		_, err := export.WriteReport(blocker, "r.xlsx", []byte("x"))
		var se *export.StorageError
		is.True(errors.As(err, &se))
		is.Equal(se.Op, "create directory")
	})
}

func TestFileStore(t *testing.T) {
	is := is.New(t)
	dir := filepath.Join(t.TempDir(), "reports")
	store := export.NewFileStore(dir)

	ref, err := store.Store(context.Background(), []byte("data"), "UserReport-x.xlsx")
	is.NoErr(err)
	is.Equal(ref.Dir, dir)
	is.Equal(ref.Filename, "UserReport-x.xlsx")
	is.Equal(ref.Location, filepath.Join(dir, "UserReport-x.xlsx"))
}
