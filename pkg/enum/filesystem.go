package enum

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/TheApac/stringcheese/pkg/types"
	"golang.org/x/sync/errgroup"
)

// FilesystemEnumerator enumerates files from a filesystem directory.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

type loadedFile struct {
	seq     int
	path    string
	content []byte
}

// Enumerate walks the tree, reads eligible files on a pool of readers and
// hands them to the callback one at a time in walk order.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	files, err := e.collect(ctx)
	if err != nil {
		return err
	}

	numReaders := max(runtime.NumCPU(), 1)

	origCtx := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	pathsCh := make(chan int, numReaders*2)
	loaded := make(chan loadedFile, numReaders)

	g.Go(func() error {
		defer close(pathsCh)
		for i := range files {
			select {
			case pathsCh <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	readers, readCtx := errgroup.WithContext(gctx)
	for i := 0; i < numReaders; i++ {
		readers.Go(func() error {
			for seq := range pathsCh {
				content, err := os.ReadFile(files[seq])
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", files[seq], err)
				}
				select {
				case loaded <- loadedFile{seq: seq, path: files[seq], content: content}:
				case <-readCtx.Done():
					return readCtx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(loaded)
		return readers.Wait()
	})

	pending := make(map[int]loadedFile)
	next := 0
	var cbErr error
	for f := range loaded {
		if cbErr != nil {
			continue
		}
		pending[f.seq] = f
		for cbErr == nil {
			ready, ok := pending[next]
			if !ok {
				break
			}
			if cbErr = origCtx.Err(); cbErr != nil {
				break
			}
			delete(pending, next)
			next++
			cbErr = callback(ready.content, types.FileProvenance{FilePath: ready.path})
		}
		if cbErr != nil {
			cancel()
		}
	}

	groupErr := g.Wait()
	if cbErr != nil {
		return cbErr
	}
	if groupErr != nil {
		return groupErr
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	return origCtx.Err()
}

// collect walks the tree and returns the eligible file paths.
func (e *FilesystemEnumerator) collect(ctx context.Context) ([]string, error) {
	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	var files []string
	err := filepath.Walk(e.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if path != e.config.Root && !e.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}

		if !e.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}

		if e.config.MaxFileSize > 0 && info.Size() > e.config.MaxFileSize {
			return nil
		}

		if ignore != nil {
			relPath, err := filepath.Rel(e.config.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
