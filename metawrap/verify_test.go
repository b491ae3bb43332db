package metawrap

import (
	"errors"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"

	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
)

func TestVerifyPayload(t *testing.T) {
	payload := "payload bytes"
	sum := digest.FromString(payload)

	tests := []struct {
		name     string
		pairs    []Pair
		payload  string
		wantOK   bool
		wantCode string
	}{
		{
			name:    "bare hex value",
			pairs:   []Pair{{"sha256", sum.Encoded()}},
			payload: payload,
			wantOK:  true,
		},
		{
			name:    "full digest value",
			pairs:   []Pair{{"sha256", sum.String()}},
			payload: payload,
			wantOK:  true,
		},
		{
			name:    "checksum among other keys",
			pairs:   []Pair{{"from", "x"}, {"sha256", sum.Encoded()}},
			payload: payload,
			wantOK:  true,
		},
		{
			name:     "mismatch",
			pairs:    []Pair{{"sha256", sum.Encoded()}},
			payload:  "tampered",
			wantCode: "CHECKSUM_MISMATCH",
		},
		{
			name:    "no checksum key",
			pairs:   []Pair{{"from", "x"}},
			payload: payload,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPayload(tt.pairs, strings.NewReader(tt.payload))
			if tt.wantCode != "" {
				if err == nil || metaerrors.GetErrorCode(err) != tt.wantCode {
					t.Fatalf("VerifyPayload() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyPayload() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("VerifyPayload() = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestVerifyPayload_MismatchIsMetaError(t *testing.T) {
	pairs := []Pair{{"sha256", digest.FromString("x").Encoded()}}
	_, err := VerifyPayload(pairs, strings.NewReader("y"))
	if !errors.Is(err, metaerrors.ErrChecksumMismatch) {
		t.Errorf("error = %v, want ErrChecksumMismatch", err)
	}
}

func TestChecksumPair(t *testing.T) {
	algo, value, ok := ChecksumPair([]Pair{{"from", "x"}, {"sha256", "abc"}})
	if !ok || algo != digest.SHA256 || value != "abc" {
		t.Errorf("ChecksumPair() = (%v, %q, %v), want (sha256, abc, true)", algo, value, ok)
	}

	if _, _, ok := ChecksumPair([]Pair{{"from", "x"}}); ok {
		t.Error("ChecksumPair() should report no checksum key")
	}
}
