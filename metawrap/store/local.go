package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
	"github.com/nikwrt/metacat/metawrap/logger"
)

// LocalStore serves objects from a directory tree. Object names are
// slash-separated paths relative to the root.
type LocalStore struct {
	root string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// List walks the root and returns all regular files, sorted by name.
func (s *LocalStore) List(ctx context.Context) ([]ObjectInfo, error) {
	logger.Debug("listing objects under %s", s.root)

	var infos []ObjectInfo
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		infos = append(infos, ObjectInfo{
			Name: filepath.ToSlash(rel),
			Size: fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Open opens the named object for reading.
func (s *LocalStore) Open(ctx context.Context, name string) (Object, error) {
	if strings.Contains(name, "..") {
		return nil, metaerrors.ErrObjectNotFound.WithDetail("name", name)
	}

	path := filepath.Join(s.root, filepath.FromSlash(name))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, metaerrors.ErrObjectNotFound.WithDetail("name", name)
		}
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, metaerrors.ErrObjectNotFound.WithDetail("name", name)
	}

	logger.Debug("opened object %s (%d bytes)", name, fi.Size())
	return &localObject{f: f, size: fi.Size()}, nil
}

type localObject struct {
	f    *os.File
	size int64
}

func (o *localObject) Read(p []byte) (int, error) {
	return o.f.Read(p)
}

func (o *localObject) Seek(offset int64, whence int) (int64, error) {
	return o.f.Seek(offset, whence)
}

func (o *localObject) Close() error {
	return o.f.Close()
}

func (o *localObject) Size() int64 {
	return o.size
}
