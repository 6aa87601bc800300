package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"go.dw1.io/xxh64"
)

type options struct {
	seed       uint64
	bufferSize string
	verbose    bool
}

// newRootCmd builds the xxh64sum command. The filesystem and stdin are
// injected so tests can run against afero.MemMapFs and fixed readers.
func newRootCmd(fs afero.Fs, stdin io.Reader) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "xxh64sum [flags] [file ...]",
		Short: "Print XXH64 digests of files",
		Long: `xxh64sum reads each file in fixed-size chunks, streams the chunks
through an XXH64 digest, and prints the result in decimal and
hexadecimal. With no file, or when file is -, it reads standard input.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			bufSize, err := humanize.ParseBytes(opts.bufferSize)
			if err != nil {
				return fmt.Errorf("invalid --buffer-size %q: %w", opts.bufferSize, err)
			}
			if bufSize == 0 {
				return fmt.Errorf("invalid --buffer-size %q: must be at least one byte", opts.bufferSize)
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			out := cmd.OutOrStdout()
			buf := make([]byte, int(bufSize))

			var errs []error
			for _, name := range args {
				if err := digestFile(fs, stdin, out, name, opts, buf); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "xxh64sum: %v\n", err)
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for the digest")
	cmd.Flags().StringVar(&opts.bufferSize, "buffer-size", "256KiB", "read buffer capacity")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "report elapsed time and throughput")

	return cmd
}

// digestFile streams one file (or stdin, for "-") through a seeded
// Digest and prints the decimal and hexadecimal result.
func digestFile(fs afero.Fs, stdin io.Reader, out io.Writer, name string, opts *options, buf []byte) error {
	var r io.Reader
	if name == "-" {
		r = stdin
	} else {
		f, err := fs.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	start := time.Now()

	d := xxh64.NewWithSeed(opts.seed)
	n, err := io.CopyBuffer(d, r, buf)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	sum := d.Sum64()

	if opts.verbose {
		elapsed := time.Since(start)
		rate := float64(n) / elapsed.Seconds()
		fmt.Fprintf(out, "Finished `%s` in %s (%s, %s/s)\n",
			name, elapsed.Round(time.Microsecond),
			humanize.IBytes(uint64(n)), humanize.IBytes(uint64(rate)))
	}
	fmt.Fprintf(out, "%s:\n", name)
	fmt.Fprintf(out, "DEC: %d\n", sum)
	fmt.Fprintf(out, "HEX: %x\n", sum)

	return nil
}
