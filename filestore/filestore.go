package filestore

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

var errIsDirectory = errors.New("is a directory")

// Root exposes a read-only billy filesystem as an http.FileSystem.
// Errors from the underlying filesystem are returned unchanged so the
// file server can map them to 404 and 403.
type Root struct {
	fs billy.Filesystem
}

// New roots the store at dir on the local disk
func New(dir string) *Root {
	return NewFromBilly(osfs.New(dir))
}

func NewFromBilly(fs billy.Filesystem) *Root {
	return &Root{fs: fs}
}

// Open implements http.FileSystem
func (r *Root) Open(name string) (http.File, error) {
	name = relative(name)

	info, err := r.fs.Stat(name)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return &dir{fs: r.fs, name: name, info: info}, nil
	}

	f, err := r.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return &file{File: f, info: info}, nil
}

// relative turns a slash-rooted request name into a clean path relative to
// the filesystem root; "." names the root itself.
func relative(name string) string {
	p := strings.TrimPrefix(path.Clean("/"+name), "/")
	if p == "" {
		return "."
	}
	return p
}

type file struct {
	billy.File
	info os.FileInfo
}

func (f *file) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

func (f *file) Readdir(count int) ([]fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "readdir", Path: f.Name(), Err: errors.New("not a directory")}
}

// dir is never opened on the underlying filesystem; memfs refuses to
// open directories and listing only needs ReadDir.
type dir struct {
	fs      billy.Filesystem
	name    string
	info    os.FileInfo
	entries []os.FileInfo
	loaded  bool
}

func (d *dir) Close() error { return nil }

func (d *dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: errIsDirectory}
}

func (d *dir) Seek(int64, int) (int64, error) { return 0, nil }

func (d *dir) Stat() (fs.FileInfo, error) {
	return d.info, nil
}

// Readdir follows os.File.Readdir: count <= 0 returns everything left with a
// nil error; count > 0 returns at most count entries and io.EOF when drained.
func (d *dir) Readdir(count int) ([]fs.FileInfo, error) {
	if !d.loaded {
		entries, err := d.fs.ReadDir(d.name)
		if err != nil {
			return nil, err
		}
		d.entries = entries
		d.loaded = true
	}

	if count <= 0 {
		rest := d.entries
		d.entries = nil
		return rest, nil
	}

	if len(d.entries) == 0 {
		return nil, io.EOF
	}

	n := min(count, len(d.entries))
	out := d.entries[:n]
	d.entries = d.entries[n:]
	return out, nil
}
