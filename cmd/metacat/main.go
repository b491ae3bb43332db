package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nikwrt/metacat/metawrap"
	metaerrors "github.com/nikwrt/metacat/metawrap/errors"
	"github.com/nikwrt/metacat/metawrap/logger"
	"github.com/nikwrt/metacat/metawrap/store"
)

var (
	verbose    bool
	debug      bool
	noProgress bool
	decompress bool
	verify     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "metacat",
		Short: "Read objects that carry an inline key:value metadata block",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetLogLevel(logger.LogLevelDebug)
			} else if verbose {
				logger.SetLogLevel(logger.LogLevelInfo)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// meta command
	metaCmd := &cobra.Command{
		Use:   "meta <FILE>",
		Short: "Print the metadata pairs of an object",
		Args:  cobra.ExactArgs(1),
		Run:   runMeta,
	}

	// cat command
	catCmd := &cobra.Command{
		Use:   "cat <FILE> [OUTPUT]",
		Short: "Write an object's payload to stdout or a file",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runCat,
	}
	catCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar (progress is enabled by default for file output)")
	catCmd.Flags().BoolVar(&decompress, "decompress", false, "Inflate a gzip-compressed payload")
	catCmd.Flags().BoolVar(&verify, "verify", false, "Check the payload against its checksum metadata key before writing")

	// stat command
	statCmd := &cobra.Command{
		Use:   "stat <FILE>",
		Short: "Print payload and metadata sizes of an object",
		Args:  cobra.ExactArgs(1),
		Run:   runStat,
	}

	// ls command
	lsCmd := &cobra.Command{
		Use:   "ls <DIR>",
		Short: "List objects in a directory with their payload sizes",
		Args:  cobra.ExactArgs(1),
		Run:   runLs,
	}

	rootCmd.AddCommand(metaCmd, catCmd, statCmd, lsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// accessorFor routes a file path through a directory store rooted at the
// file's parent.
func accessorFor(path string) (metawrap.ObjectAccessor, string) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return metawrap.NewObjectAccessor(store.NewLocalStore(dir)), name
}

func runMeta(cmd *cobra.Command, args []string) {
	accessor, name := accessorFor(args[0])

	pairs, err := accessor.Meta(context.Background(), name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	keyColor := color.New(color.FgCyan)
	for _, pair := range pairs {
		fmt.Printf("%s:%s\n", keyColor.Sprint(pair.Key), pair.Value)
	}
}

func runCat(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	accessor, name := accessorFor(args[0])

	if verify {
		ok, err := accessor.Verify(ctx, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			logger.Warn("object %s carries no checksum key, payload not verified", name)
		}
	}

	payload, err := accessor.OpenPayload(ctx, name, decompress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer payload.Close()

	var out io.Writer = os.Stdout
	showProgress := false

	if len(args) > 1 {
		outFile, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer outFile.Close()
		out = outFile
		showProgress = !noProgress
	}

	if showProgress {
		bar := progressbar.DefaultBytes(payload.Size, fmt.Sprintf("Extracting %s", name))
		out = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(out, payload); err != nil {
		if showProgress {
			fmt.Fprintln(os.Stderr)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}
}

func runStat(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	accessor, name := accessorFor(args[0])

	pairs, err := accessor.Meta(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	payloadSize, err := accessor.PayloadSize(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fi, err := os.Stat(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("object size:   %d bytes\n", fi.Size())
	fmt.Printf("header size:   %d bytes\n", fi.Size()-payloadSize)
	fmt.Printf("payload size:  %d bytes\n", payloadSize)
	fmt.Printf("metadata keys: %d\n", len(pairs))
}

func runLs(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	accessor := metawrap.NewObjectAccessor(store.NewLocalStore(args[0]))

	infos, err := accessor.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		payloadSize, err := accessor.PayloadSize(ctx, info.Name)
		if err != nil {
			// Files that are not metawrap objects are still listed.
			if errors.Is(err, metaerrors.ErrFormat) || errors.Is(err, metaerrors.ErrTruncatedMetadata) {
				fmt.Printf("%-40s %10d  (no metadata block)\n", info.Name, info.Size)
				continue
			}
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", info.Name, err)
			os.Exit(1)
		}
		fmt.Printf("%-40s %10d\n", info.Name, payloadSize)
	}
}
