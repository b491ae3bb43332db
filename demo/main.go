// Demo: writes a sample metadata-prefixed object to a temp file, then reads
// it back through the metawrap stream. The library is decode only, so the
// object is composed with plain writes.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nikwrt/metacat/metawrap"
)

func main() {
	dir, err := os.MkdirTemp("", "metawrap-demo-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "mail-0001")
	object := "from:alice@example.com\nsubject:hello world\n\nHi Bob,\nsee you tomorrow.\n"
	if err := os.WriteFile(path, []byte(object), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	collector := metawrap.NewCollector()
	stream := metawrap.NewStream(metawrap.NewFileSource(f), collector.Sink())

	size, err := stream.Stat(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	payload, err := io.ReadAll(stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("metadata:")
	for _, pair := range collector.Pairs() {
		fmt.Printf("  %s = %s\n", pair.Key, pair.Value)
	}
	fmt.Printf("payload (%d bytes):\n%s", size, payload)
}
