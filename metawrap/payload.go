package metawrap

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"

	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
)

// Decompress wraps r with a gzip inflater when the payload starts with the
// gzip magic; anything else passes through unchanged. Sniffing needs a small
// read-ahead, so this is only usable over blocking sources.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			// Payload too short to be gzip.
			return br, nil
		}
		return nil, err
	}
	if magic[0] != 0x1f || magic[1] != 0x8b {
		return br, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, metaerrors.ErrPayloadOpen.WithCause(err)
	}
	return gz, nil
}
