package metawrap

import "errors"

// ErrWouldBlock is returned by non-blocking sources when no data is currently
// available. It is a retry signal, not a failure: the caller retries the same
// call once the source becomes readable again.
var ErrWouldBlock = errors.New("metawrap: operation would block")

// Source is the line-oriented byte stream a Stream reads from. ReadLine and
// Read advance the same cursor; offsets are absolute positions in the
// underlying stream.
type Source interface {
	// ReadLine returns the next line without its terminator ("\n" or
	// "\r\n"). It returns io.EOF at end of input, including when trailing
	// bytes form an unterminated line. Non-blocking sources return
	// ErrWouldBlock while no complete line is buffered yet.
	ReadLine() (string, error)

	// Read copies raw bytes from the current offset.
	Read(p []byte) (int, error)

	// Seek repositions the cursor to an absolute offset.
	Seek(offset int64) error

	// Offset returns the absolute offset of the next unconsumed byte.
	Offset() int64

	// Blocking reports whether reads wait for data instead of returning
	// ErrWouldBlock.
	Blocking() bool

	// Stat returns the total size of the source in bytes, or -1 when it
	// is not known. exact forces a fresh size lookup.
	Stat(exact bool) (int64, error)
}

// fdSource is implemented by sources backed by a file descriptor.
type fdSource interface {
	Fd() (uintptr, bool)
}
