// Command elz4 decompresses LZ4 frames from files or stdin/stdout, using
// the streaming, resumable decoder in package elz4.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coreutil/elz4"
	"github.com/coreutil/elz4/internal/log"
)

var (
	verbose   bool
	chunkSize int
	progress  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "elz4:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "elz4",
		Short: "Stream LZ4 frames through a resumable, low-memory decoder",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().IntVar(&chunkSize, "chunk-size", 32*1024, "input chunk size used when reading compressed data")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg := zap.NewDevelopmentConfig()
		if !verbose {
			cfg.Level.SetLevel(zap.InfoLevel)
		}
		zl, err := cfg.Build()
		if err == nil {
			log.Set(zl.Sugar())
		}
	}

	root.AddCommand(newDecompressCmd())
	root.AddCommand(newInfoCmd())
	return root
}

func newDecompressCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "decompress [frame]",
		Short: "Decompress an LZ4 frame to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, inSize, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			return runDecompress(in, inSize, out)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default: stdout)")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar (requires a sized input)")
	return cmd
}

func runDecompress(in io.Reader, inSize int64, out io.Writer) error {
	var bar *pb.ProgressBar
	if progress && inSize > 0 {
		bar = pb.New64(inSize).SetUnits(pb.U_BYTES)
		bar.Start()
		defer bar.Finish()
		in = bar.NewProxyReader(in)
	}

	r := elz4.NewReaderSize(in, chunkSize)
	n, err := io.Copy(out, r)
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	log.Infof("elz4: wrote %s (%d bytes)", humanize.Bytes(uint64(n)), n)
	return nil
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [frame]",
		Short: "Print an LZ4 frame header without decompressing the payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()
			return printInfo(in)
		},
	}
	return cmd
}

func printInfo(in io.Reader) error {
	probe := make([]byte, 32)
	buf := make([]byte, 0, 32)

	for {
		info, ok, err := elz4.ProbeHeader(buf)
		if err != nil {
			return errors.Wrap(err, "elz4: info")
		}
		if ok {
			fmt.Printf("magic:        ok\n")
			fmt.Printf("flags:        %#02x\n", info.Flags)
			fmt.Printf("block max byte: %#02x\n", info.BlockMaxByte)
			if info.HasContentSize {
				fmt.Printf("content size: %s (%d bytes)\n", humanize.Bytes(info.ContentSize), info.ContentSize)
			} else {
				fmt.Printf("content size: unknown\n")
			}
			fmt.Printf("dictionary:   %v\n", info.HasDictionary)
			fmt.Printf("block crc:    %v\n", info.HasBlockCRC)
			fmt.Printf("content crc:  %v\n", info.HasContentCRC)
			return nil
		}

		n, rerr := in.Read(probe)
		buf = append(buf, probe[:n]...)
		if rerr != nil {
			if rerr == io.EOF {
				return errors.New("elz4: info: frame header incomplete")
			}
			return errors.Wrap(rerr, "elz4: info: reading input")
		}
	}
}

func openInput(args []string) (io.ReadCloser, int64, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), 0, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, 0, errors.Wrapf(err, "elz4: opening %q", args[0])
	}
	st, err := f.Stat()
	if err != nil {
		return f, 0, nil
	}
	return f, st.Size(), nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "elz4: creating %q", path)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
