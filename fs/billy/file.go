package billy

import (
	"errors"
	"io"
	iofs "io/fs"

	"github.com/go-git/go-billy/v5"
)

// File is a read-only handle returned by FS.Open.
// Errors carry the path the file was opened with.
type File struct {
	src      billy.File
	name     string
	resolved string
	fs       billy.Filesystem
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Read reads from the file. io.EOF is returned unwrapped.
func (f *File) Read(p []byte) (int, error) {
	n, err := f.src.Read(p)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		return n, io.EOF
	default:
		return n, pathError("read", f.name, err)
	}
}

// Seek sets the offset for the next Read.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	pos, err := f.src.Seek(offset, whence)
	if err != nil {
		return pos, pathError("seek", f.name, err)
	}
	return pos, nil
}

// Stat describes the opened file.
func (f *File) Stat() (iofs.FileInfo, error) {
	info, err := f.fs.Stat(f.resolved)
	if err != nil {
		return nil, pathError("stat", f.name, err)
	}
	return info, nil
}

// Close releases the handle.
func (f *File) Close() error {
	if err := f.src.Close(); err != nil {
		return pathError("close", f.name, err)
	}
	return nil
}
