package metawrap

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close error = %v", err)
	}
	return buf.Bytes()
}

func TestDecompress_Gzip(t *testing.T) {
	want := []byte("the payload, inflated")
	object := append([]byte("enc:gzip\n\n"), gzipBytes(t, want)...)

	stream := NewStream(NewBufferSource(object), nil)
	r, err := Decompress(stream)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("payload = %q, want %q", got, want)
	}
}

func TestDecompress_PlainPassthrough(t *testing.T) {
	stream := NewStream(NewBufferSource([]byte("k:v\n\nplain bytes")), nil)
	r, err := Decompress(stream)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "plain bytes" {
		t.Errorf("payload = %q, want %q", got, "plain bytes")
	}
}

func TestDecompress_ShortPayload(t *testing.T) {
	for _, payload := range []string{"", "x"} {
		stream := NewStream(NewBufferSource([]byte("k:v\n\n"+payload)), nil)
		r, err := Decompress(stream)
		if err != nil {
			t.Fatalf("Decompress() error = %v", err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(got) != payload {
			t.Errorf("payload = %q, want %q", got, payload)
		}
	}
}
