package schema

import "path/filepath"

// SourceKind tells whether a schema was read from disk or from an fs.FS.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Source records where a store entry was read from. The zero value marks a
// schema added without a backing file.
type Source struct {
	kind SourceKind
	path string
}

// SourceFromFile names a schema file on disk.
func SourceFromFile(path string) Source {
	return Source{kind: SourceKindFile, path: filepath.Clean(path)}
}

// SourceFromFS names a schema inside an fs.FS, relative to its root.
func SourceFromFS(name string) Source {
	return Source{kind: SourceKindFS, path: name}
}

func (s Source) Kind() SourceKind { return s.kind }

// Location is the file path or fs.FS name the schema came from.
func (s Source) Location() string { return s.path }

func (s Source) String() string {
	if s.kind == "" {
		return "<inline>"
	}
	return string(s.kind) + ":" + s.path
}
