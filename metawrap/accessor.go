package metawrap

import (
	"context"
	"io"
	"sync"

	"github.com/nikwrt/metacat/metawrap/logger"
	"github.com/nikwrt/metacat/metawrap/store"
)

// PayloadReader reads an object's payload. Size is the payload size in the
// store, before any decompression. Closing the reader closes the underlying
// object handle.
type PayloadReader struct {
	io.Reader
	Size int64

	obj store.Object
}

func (p *PayloadReader) Close() error {
	return p.obj.Close()
}

// ObjectAccessor resolves metadata and payloads of objects in a Store.
type ObjectAccessor interface {
	List(ctx context.Context) ([]store.ObjectInfo, error)

	// Meta returns the object's metadata pairs in file order.
	Meta(ctx context.Context, name string) ([]Pair, error)

	// PayloadSize returns the object's payload size in bytes.
	PayloadSize(ctx context.Context, name string) (int64, error)

	// OpenPayload opens the object's payload for reading. With decompress
	// set, a gzip payload is transparently inflated.
	OpenPayload(ctx context.Context, name string, decompress bool) (*PayloadReader, error)

	// Verify checks the payload against the checksum metadata key. It
	// returns (false, nil) when the object carries no checksum.
	Verify(ctx context.Context, name string) (bool, error)
}

func NewObjectAccessor(st store.Store) ObjectAccessor {
	return &objectAccessor{
		store:     st,
		metaCache: make(map[string][]Pair),
	}
}

type objectAccessor struct {
	store store.Store

	mu        sync.Mutex
	metaCache map[string][]Pair
}

// openStream opens the object and drives header parsing to completion, so the
// returned pairs are complete and the stream sits at payload offset 0. The
// caller owns closing obj.
func (a *objectAccessor) openStream(ctx context.Context, name string) (store.Object, *Stream, []Pair, error) {
	obj, err := a.store.Open(ctx, name)
	if err != nil {
		return nil, nil, nil, err
	}

	collector := NewCollector()
	stream := NewStream(NewReaderSource(obj, obj.Size()), collector.Sink())
	if _, err := stream.Stat(false); err != nil {
		obj.Close()
		return nil, nil, nil, err
	}

	pairs := collector.Pairs()
	a.mu.Lock()
	a.metaCache[name] = pairs
	a.mu.Unlock()

	logger.Debug("parsed %d metadata pairs from %s", len(pairs), name)
	return obj, stream, pairs, nil
}

func (a *objectAccessor) List(ctx context.Context) ([]store.ObjectInfo, error) {
	return a.store.List(ctx)
}

func (a *objectAccessor) Meta(ctx context.Context, name string) ([]Pair, error) {
	a.mu.Lock()
	if pairs, ok := a.metaCache[name]; ok {
		a.mu.Unlock()
		return pairs, nil
	}
	a.mu.Unlock()

	obj, _, pairs, err := a.openStream(ctx, name)
	if err != nil {
		return nil, err
	}
	obj.Close()
	return pairs, nil
}

func (a *objectAccessor) PayloadSize(ctx context.Context, name string) (int64, error) {
	obj, stream, _, err := a.openStream(ctx, name)
	if err != nil {
		return -1, err
	}
	defer obj.Close()
	return stream.Stat(true)
}

func (a *objectAccessor) OpenPayload(ctx context.Context, name string, decompress bool) (*PayloadReader, error) {
	obj, stream, _, err := a.openStream(ctx, name)
	if err != nil {
		return nil, err
	}

	size, err := stream.Stat(false)
	if err != nil {
		obj.Close()
		return nil, err
	}

	var r io.Reader = stream
	if decompress {
		r, err = Decompress(stream)
		if err != nil {
			obj.Close()
			return nil, err
		}
	}

	return &PayloadReader{Reader: r, Size: size, obj: obj}, nil
}

func (a *objectAccessor) Verify(ctx context.Context, name string) (bool, error) {
	obj, stream, pairs, err := a.openStream(ctx, name)
	if err != nil {
		return false, err
	}
	defer obj.Close()
	return VerifyPayload(pairs, stream)
}
