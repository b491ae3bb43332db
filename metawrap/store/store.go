package store

import (
	"context"
	"io"
)

// ObjectInfo describes an object available from a store.
type ObjectInfo struct {
	Name string
	Size int64
}

// Object is an opened object: readable, seekable, with a known total size.
// The size covers the whole object, metadata block included.
type Object interface {
	io.ReadSeekCloser
	Size() int64
}

// Store abstracts enumeration and access to metadata-prefixed objects.
type Store interface {
	List(ctx context.Context) ([]ObjectInfo, error)
	Open(ctx context.Context, name string) (Object, error)
}
