package metawrap

import (
	"errors"
	"fmt"
	"io"
	"strings"

	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
)

// streamState tracks which side of the metadata terminator the stream is on.
// The transition is one-way: once the blank line has been consumed the stream
// never re-enters header parsing.
type streamState int

const (
	stateHeader streamState = iota
	statePassthrough
)

// SinkFunc receives one decoded metadata pair per header line, in file order.
// The key is everything before the first ':', the value everything after it;
// neither side is trimmed. The contract is one-way: a sink cannot abort
// parsing, so a sink that needs to fail records its own state and the caller
// inspects it afterwards.
type SinkFunc func(key, value string)

// Stream exposes the payload of a metadata-prefixed object. It decodes the
// leading key:value block exactly once, hands each pair to the sink, and from
// then on forwards raw payload bytes, with logical offset 0 pinned to the
// first payload byte regardless of header length.
//
// A Stream does not own its source: it never closes it, and the source must
// stay valid for the stream's lifetime. Streams are not seekable and not safe
// for concurrent use.
type Stream struct {
	src  Source
	sink SinkFunc

	state  streamState
	start  int64 // absolute offset of the first payload byte, valid in statePassthrough
	offset int64 // logical read offset into the payload
	err    error // sticky header parse failure
}

// NewStream wraps src. sink may be nil when the caller does not care about
// the metadata pairs.
func NewStream(src Source, sink SinkFunc) *Stream {
	return &Stream{src: src, sink: sink}
}

// advanceHeader consumes header lines until the blank terminator and performs
// the state transition. ErrWouldBlock passes through with no state change;
// all partial-line buffering lives in the source, so the caller simply
// retries. Any other failure is recorded and returned on every later call.
func (s *Stream) advanceHeader() error {
	if s.err != nil {
		return s.err
	}
	for {
		line, err := s.src.ReadLine()
		if err != nil {
			switch {
			case errors.Is(err, ErrWouldBlock):
				return ErrWouldBlock
			case errors.Is(err, io.EOF):
				s.err = metaerrors.ErrTruncatedMetadata
				return s.err
			default:
				s.err = metaerrors.ErrTruncatedMetadata.WithCause(err)
				return s.err
			}
		}
		if line == "" {
			s.start = s.src.Offset()
			s.state = statePassthrough
			return nil
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			s.err = metaerrors.ErrFormat.WithDetail("line", line)
			return s.err
		}
		if s.sink != nil {
			s.sink(key, value)
		}
	}
}

// Read implements io.Reader over the payload. While the header is still being
// parsed it drives the parser first; completing the header falls through to a
// passthrough read in the same call. A non-blocking source surfaces as
// ErrWouldBlock with no state lost.
func (s *Stream) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.state == stateHeader {
		if err := s.advanceHeader(); err != nil {
			return 0, err
		}
	}
	if err := s.src.Seek(s.start + s.offset); err != nil {
		return 0, err
	}
	n, err := s.src.Read(p)
	s.offset += int64(n)
	return n, err
}

// Stat reports the payload size: the source's total size minus the header
// length. When the header is not complete yet it drives parsing first; if a
// non-blocking source cannot complete it, Stat returns (-1, nil) meaning not
// yet known. A source size smaller than the header is a defect in the source
// and panics.
func (s *Stream) Stat(exact bool) (int64, error) {
	size, err := s.src.Stat(exact)
	if err != nil {
		return -1, err
	}
	if size < 0 {
		return -1, nil
	}
	if s.state == stateHeader {
		if err := s.advanceHeader(); err != nil {
			if errors.Is(err, ErrWouldBlock) {
				return -1, nil
			}
			return -1, err
		}
	}
	if size < s.start {
		panic(fmt.Sprintf("metawrap: source size %d smaller than payload start %d", size, s.start))
	}
	return size - s.start, nil
}

// Offset returns the logical payload offset of the next Read.
func (s *Stream) Offset() int64 {
	return s.offset
}

// Blocking reports the source's blocking mode.
func (s *Stream) Blocking() bool {
	return s.src.Blocking()
}

// Fd returns the source's file descriptor when it exposes one.
func (s *Stream) Fd() (uintptr, bool) {
	if f, ok := s.src.(fdSource); ok {
		return f.Fd()
	}
	return 0, false
}
