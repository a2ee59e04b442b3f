package enum

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/TheApac/stringcheese/pkg/types"
)

// Callback receives each buffer to scan with its provenance. Enumerators call
// it from a single goroutine.
type Callback func(content []byte, prov types.Provenance) error

// Enumerator discovers content to scan from a source.
type Enumerator interface {
	// Enumerate yields buffers from the source.
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Stdin is read when Root is "-" (nil = os.Stdin).
	Stdin io.Reader
}

// New picks an enumerator for cfg.Root: "-" reads stdin, a directory is
// walked, anything else is read as a single file.
func New(cfg Config) (Enumerator, error) {
	if cfg.Root == "-" {
		in := cfg.Stdin
		if in == nil {
			in = os.Stdin
		}
		return NewReaderEnumerator(in, "stdin"), nil
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("target does not exist: %s", cfg.Root)
	}
	if info.IsDir() {
		return NewFilesystemEnumerator(cfg), nil
	}
	return NewFileEnumerator(cfg.Root), nil
}
