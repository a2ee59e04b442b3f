package types

// Provenance tracks where a scanned buffer came from.
type Provenance interface {
	Kind() string
	// Path returns displayable path (if applicable)
	Path() string
}

// FileProvenance for filesystem files.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// StreamProvenance for data read from a pipe or other reader, usually stdin.
type StreamProvenance struct {
	Name string
}

// Kind returns "stream".
func (s StreamProvenance) Kind() string {
	return "stream"
}

// Path returns the stream name, "stdin" when unnamed.
func (s StreamProvenance) Path() string {
	if s.Name == "" {
		return "stdin"
	}
	return s.Name
}
