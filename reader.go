package elz4

import (
	"io"

	"github.com/pkg/errors"

	"github.com/coreutil/elz4/internal/log"
)

// defaultChunkSize is deliberately small: Reader exists to demonstrate and
// exercise the decoder's memory-constrained contract, not to be the fastest
// possible LZ4 reader.
const defaultChunkSize = 512

// Reader adapts a Context to the io.Reader interface, pulling compressed
// bytes from an underlying io.Reader in fixed-size chunks and handing them
// to Decompress a chunk at a time. It is a convenience wrapper; nothing
// about the core decoder requires it.
type Reader struct {
	src       io.Reader
	ctx       Context
	chunk     []byte
	pending   []byte // unconsumed tail of the last chunk read from src
	srcErr    error  // sticky error from src, surfaced once pending is drained
	frameDone bool
}

// NewReader returns a Reader that decodes the LZ4 frame read from src,
// pulling input in defaultChunkSize-byte chunks.
func NewReader(src io.Reader) *Reader {
	return NewReaderSize(src, defaultChunkSize)
}

// NewReaderSize is like NewReader but sets the input chunk size explicitly.
// A small chunkSize better exercises (and demonstrates) the underlying
// decoder's ability to resume between arbitrarily small reads.
func NewReaderSize(src io.Reader, chunkSize int) *Reader {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Reader{src: src, chunk: make([]byte, chunkSize)}
}

// Read implements io.Reader, decompressing into p.
func (z *Reader) Read(p []byte) (int, error) {
	if z.frameDone {
		return 0, io.EOF
	}

	produced := 0
	for produced < len(p) {
		if len(z.pending) == 0 {
			if z.srcErr != nil {
				return produced, z.srcErr
			}
			n, err := z.src.Read(z.chunk)
			if n == 0 && err != nil {
				z.srcErr = err
				if produced > 0 {
					return produced, nil
				}
				if errors.Is(err, io.EOF) {
					return produced, errors.Wrap(io.ErrUnexpectedEOF, "elz4: reader: frame truncated")
				}
				return produced, errors.Wrap(err, "elz4: reader: reading compressed input")
			}
			z.pending = z.chunk[:n]
		}

		nc, np, err := z.ctx.Decompress(z.pending, p[produced:])
		z.pending = z.pending[nc:]
		produced += np

		switch {
		case err == nil:
			if nc == 0 && np == 0 && len(z.pending) == 0 {
				// Made no progress this round and the chunk is drained;
				// go fetch more input on the next loop iteration.
				continue
			}
		case errors.Is(err, io.EOF):
			z.frameDone = true
			log.Debugf("elz4: reader: frame complete, %d bytes produced this read", produced)
			return produced, nil
		default:
			log.Errorf("elz4: reader: %v", err)
			return produced, err
		}
	}
	return produced, nil
}
