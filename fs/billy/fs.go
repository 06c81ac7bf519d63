// Package billy provides an fs.Filesystem backed by go-billy.
//
// Three flavours are available: NewNativeFS for real uploads, NewOSFS for a
// directory tree confined to a root, and NewInMemoryFS for tests.
package billy

import (
	"errors"
	iofs "io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	parentfs "github.com/input-output-hk/gofile-uploader/fs"
)

// FS implements fs.Filesystem using go-billy.
type FS struct {
	fs billy.Filesystem

	// resolve maps a caller path onto a path inside fs. Nil keeps it as is.
	resolve func(string) (string, error)
}

// Exists implements Filesystem.Exists.
func (b *FS) Exists(name string) (bool, error) {
	_, err := b.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Open implements Filesystem.Open. The returned File reports name, not the
// resolved path, in Name and in its errors.
//
//nolint:ireturn // API returns the fs.File interface.
func (b *FS) Open(name string) (parentfs.File, error) {
	p, err := b.path("open", name)
	if err != nil {
		return nil, err
	}
	f, err := b.fs.Open(p)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return &File{src: f, name: name, resolved: p, fs: b.fs}, nil
}

// ReadFile implements Filesystem.ReadFile.
func (b *FS) ReadFile(name string) ([]byte, error) {
	p, err := b.path("read", name)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(b.fs, p)
	if err != nil {
		return nil, pathError("read", name, err)
	}
	return data, nil
}

// Stat implements Filesystem.Stat.
func (b *FS) Stat(name string) (iofs.FileInfo, error) {
	p, err := b.path("stat", name)
	if err != nil {
		return nil, err
	}
	info, err := b.fs.Stat(p)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	return info, nil
}

// WriteFile implements Filesystem.WriteFile. Missing parent directories are created.
func (b *FS) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	p, err := b.path("write", name)
	if err != nil {
		return err
	}
	if err := util.WriteFile(b.fs, p, data, perm); err != nil {
		return pathError("write", name, err)
	}
	return nil
}

func (b *FS) path(op, name string) (string, error) {
	if b.resolve == nil {
		return name, nil
	}
	p, err := b.resolve(name)
	if err != nil {
		return "", pathError(op, name, err)
	}
	return p, nil
}

// pathError records the caller's path so errors name the file the user asked for.
func pathError(op, name string, err error) error {
	var pe *iofs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &iofs.PathError{Op: "billy: " + op, Path: name, Err: err}
}

// NewNativeFS returns a filesystem spanning the whole host. Relative paths
// resolve against the working directory at the time of each call.
func NewNativeFS() *FS {
	return &FS{
		fs:      osfs.New(string(filepath.Separator)),
		resolve: filepath.Abs,
	}
}

// NewOSFS creates an OS filesystem rooted at path. Paths cannot escape the root.
func NewOSFS(path string) *FS {
	return &FS{
		fs: osfs.New(path),
	}
}

// NewInMemoryFS creates a new in-memory filesystem.
func NewInMemoryFS() *FS {
	return &FS{
		fs: memfs.New(),
	}
}
