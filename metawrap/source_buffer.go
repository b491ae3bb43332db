package metawrap

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// BufferSource is a blocking in-memory Source over a byte slice.
type BufferSource struct {
	data []byte
	pos  int64
}

var _ Source = (*BufferSource)(nil)

// NewBufferSource wraps data. The slice is not copied; the caller must not
// mutate it while the source is in use.
func NewBufferSource(data []byte) *BufferSource {
	return &BufferSource{data: data}
}

func (s *BufferSource) ReadLine() (string, error) {
	if s.pos >= int64(len(s.data)) {
		return "", io.EOF
	}
	rest := s.data[s.pos:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		// Unterminated trailing line.
		s.pos = int64(len(s.data))
		return "", io.EOF
	}
	line := string(rest[:i])
	s.pos += int64(i) + 1
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *BufferSource) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *BufferSource) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(s.data)) {
		return fmt.Errorf("metawrap: seek out of range: %d", offset)
	}
	s.pos = offset
	return nil
}

func (s *BufferSource) Offset() int64 {
	return s.pos
}

func (s *BufferSource) Blocking() bool {
	return true
}

func (s *BufferSource) Stat(exact bool) (int64, error) {
	return int64(len(s.data)), nil
}
