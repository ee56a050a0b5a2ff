package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrPathEscape   = errors.New("source: path escape violation")
	ErrFileTooLarge = errors.New("source: file size limit exceeded")
	ErrNotRegular   = errors.New("source: not a regular file")
)

// DefaultMaxFileSize bounds a single source file. Token offsets are 32-bit.
const DefaultMaxFileSize = 5 * 1024 * 1024

// File is a fully loaded source buffer. Content must not be modified while
// tokens referencing it are alive.
type File struct {
	Path    string
	Content []byte
}

// FromBytes wraps in-memory content, e.g. a REPL line.
func FromBytes(path string, content []byte) *File {
	return &File{Path: path, Content: content}
}

// Lines splits the content for diagnostic snippets. A trailing \r is
// dropped from every line.
func (f *File) Lines() []string {
	lines := strings.Split(string(f.Content), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Loader reads source files jailed under Root.
type Loader struct {
	Root        string
	MaxFileSize int64
}

func NewLoader(root string, maxFileSize int64) *Loader {
	absRoot, _ := filepath.Abs(root)
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Loader{
		Root:        absRoot,
		MaxFileSize: maxFileSize,
	}
}

// Load reads path fully into memory.
func (l *Loader) Load(path string) (*File, error) {
	cleanPath, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrapf(err, "source: stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrap(ErrNotRegular, path)
	}
	if info.Size() > l.MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", path, info.Size(), l.MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrapf(err, "source: read %s", path)
	}

	return &File{Path: path, Content: data}, nil
}

// resolve checks path lexically and then again after following symlinks,
// so a link inside Root cannot point outside it.
func (l *Loader) resolve(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		cleanPath = filepath.Join(l.Root, cleanPath)
	}
	if !within(l.Root, cleanPath) {
		return "", errors.Wrap(ErrPathEscape, path)
	}

	realPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", errors.Wrapf(err, "source: resolve %s", path)
	}
	realRoot, err := filepath.EvalSymlinks(l.Root)
	if err != nil {
		realRoot = l.Root
	}
	if !within(realRoot, realPath) {
		return "", errors.Wrap(ErrPathEscape, path)
	}
	return realPath, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
