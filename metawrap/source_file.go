package metawrap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSource is a blocking Source over a seekable reader. Line reads go
// through a bufio.Reader; the absolute offset tracks bytes handed out to the
// caller, not bytes read ahead into the buffer.
type FileSource struct {
	r      io.ReadSeeker
	br     *bufio.Reader
	offset int64
	size   int64 // -1 until discovered
	fd     uintptr
	hasFd  bool
}

var _ Source = (*FileSource)(nil)

// NewFileSource wraps an open file, starting at its current position. The
// source does not own the file; the caller closes it.
func NewFileSource(f *os.File) *FileSource {
	s := NewReaderSource(f, -1)
	s.fd = f.Fd()
	s.hasFd = true
	return s
}

// NewReaderSource wraps any seekable reader, starting at its current
// position. Pass size -1 to have Stat discover it by seeking to the end.
func NewReaderSource(r io.ReadSeeker, size int64) *FileSource {
	offset, _ := r.Seek(0, io.SeekCurrent)
	return &FileSource{
		r:      r,
		br:     bufio.NewReader(r),
		offset: offset,
		size:   size,
	}
}

func (s *FileSource) ReadLine() (string, error) {
	line, err := s.br.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			// An unterminated trailing line does not count as a line.
			s.offset += int64(len(line))
			return "", io.EOF
		}
		return "", err
	}
	s.offset += int64(len(line))
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (s *FileSource) Read(p []byte) (int, error) {
	n, err := s.br.Read(p)
	s.offset += int64(n)
	return n, err
}

func (s *FileSource) Seek(offset int64) error {
	if offset == s.offset {
		// The buffer already sits at this offset; keep it.
		return nil
	}
	if offset < 0 {
		return fmt.Errorf("metawrap: seek to negative offset %d", offset)
	}
	if _, err := s.r.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	s.br.Reset(s.r)
	s.offset = offset
	return nil
}

func (s *FileSource) Offset() int64 {
	return s.offset
}

func (s *FileSource) Blocking() bool {
	return true
}

func (s *FileSource) Stat(exact bool) (int64, error) {
	if s.size >= 0 && !exact {
		return s.size, nil
	}
	if f, ok := s.r.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return -1, err
		}
		s.size = fi.Size()
		return s.size, nil
	}
	// Generic readers: measure by seeking to the end, then restore the
	// cursor. The line buffer is discarded because the underlying position
	// moved under it.
	end, err := s.r.Seek(0, io.SeekEnd)
	if err != nil {
		return -1, err
	}
	if _, err := s.r.Seek(s.offset, io.SeekStart); err != nil {
		return -1, err
	}
	s.br.Reset(s.r)
	s.size = end
	return end, nil
}

// Fd reports the file descriptor of a file-backed source.
func (s *FileSource) Fd() (uintptr, bool) {
	return s.fd, s.hasFd
}
