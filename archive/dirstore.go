package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type Opener interface {
	Open(string) (io.ReadCloser, error)
}

type fileOpener struct{}

func (fileOpener) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

// DirStore keeps archive objects as files below Root. Tags are not stored.
type DirStore struct {
	Root   string
	opener Opener
}

type DirStoreOption func(*DirStore)

// WithOpener replaces os.Open for reads.
func WithOpener(o Opener) DirStoreOption {
	return func(s *DirStore) {
		s.opener = o
	}
}

func NewDirStore(root string, opts ...DirStoreOption) *DirStore {
	s := &DirStore{Root: root, opener: fileOpener{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *DirStore) filename(path string) string {
	return filepath.Join(s.Root, filepath.FromSlash(path))
}

// Put writes to a temporary file and renames it over the destination, so a
// reader never sees a partial object.
func (s *DirStore) Put(_ context.Context, path string, data []byte, _ map[string]string) error {
	name := s.filename(path)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, name)
	}
	if err != nil {
		_ = os.Remove(tmp)
	}
	return err
}

func (s *DirStore) Get(_ context.Context, path string) ([]byte, error) {
	r, err := s.opener.Open(s.filename(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
