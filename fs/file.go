// Package fs defines the small, read-only filesystem surface the uploader and
// the config loader need. Implementations live in subpackages (see fs/billy).
package fs

import "io/fs"

// File is an open, readable upload source. Seek is needed to rewind after
// content sniffing.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	Seek(offset int64, whence int) (int64, error)
	Stat() (fs.FileInfo, error)
}

// Filesystem is the set of operations the uploader, the config loader and
// their tests need.
type Filesystem interface {
	// Open opens the named file for reading.
	Open(name string) (File, error)

	// Stat returns file info for name.
	Stat(name string) (fs.FileInfo, error)

	// Exists reports whether name exists. A missing path is not an error.
	Exists(name string) (bool, error)

	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file, creating it and its parent
	// directories if necessary.
	WriteFile(name string, data []byte, perm fs.FileMode) error
}
