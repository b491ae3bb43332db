package metawrap

import (
	"io"
	"strings"

	"github.com/opencontainers/go-digest"

	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
)

// ChecksumPair returns the first metadata pair whose key names a digest
// algorithm registered with go-digest (for example "sha256").
func ChecksumPair(pairs []Pair) (digest.Algorithm, string, bool) {
	for _, p := range pairs {
		algo := digest.Algorithm(p.Key)
		if algo.Available() {
			return algo, p.Value, true
		}
	}
	return "", "", false
}

// VerifyPayload streams r to completion and checks it against the checksum
// carried in the metadata pairs. The value may be bare hex or a full
// "algo:hex" digest string. It returns (false, nil) when the metadata has no
// checksum key, and ErrChecksumMismatch when the payload disagrees.
func VerifyPayload(pairs []Pair, r io.Reader) (bool, error) {
	algo, want, ok := ChecksumPair(pairs)
	if !ok {
		return false, nil
	}
	want = strings.TrimPrefix(want, string(algo)+":")

	digester := algo.Digester()
	if _, err := io.Copy(digester.Hash(), r); err != nil {
		return false, err
	}
	got := digester.Digest().Encoded()
	if got != want {
		return false, metaerrors.ErrChecksumMismatch.
			WithDetail("algorithm", string(algo)).
			WithDetail("want", want).
			WithDetail("got", got)
	}
	return true, nil
}
