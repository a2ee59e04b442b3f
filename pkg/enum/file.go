package enum

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/TheApac/stringcheese/pkg/types"
)

// FileEnumerator yields a single file.
type FileEnumerator struct {
	path string
}

// NewFileEnumerator creates an enumerator for one file.
func NewFileEnumerator(path string) *FileEnumerator {
	return &FileEnumerator{path: path}
}

// Enumerate reads the file and invokes the callback once.
func (e *FileEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", e.path, err)
	}
	return callback(content, types.FileProvenance{FilePath: e.path})
}

// ReaderEnumerator yields everything readable from a reader as one buffer.
type ReaderEnumerator struct {
	r    io.Reader
	name string
}

// NewReaderEnumerator creates an enumerator over r, reported under name.
func NewReaderEnumerator(r io.Reader, name string) *ReaderEnumerator {
	return &ReaderEnumerator{r: r, name: name}
}

// Enumerate reads r to EOF and invokes the callback once.
func (e *ReaderEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := io.ReadAll(e.r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", e.name, err)
	}
	return callback(content, types.StreamProvenance{Name: e.name})
}
