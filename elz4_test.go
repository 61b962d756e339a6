package elz4

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// frame assembles a minimal LZ4 frame around the given block payloads. Each
// entry in blocks is the raw (already token-encoded) payload of one
// compressed block; a zero descriptor always terminates the frame.
func frame(flags byte, blocks ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x04, 0x22, 0x4D, 0x18}) // magic
	buf.WriteByte(flags)
	buf.WriteByte(0x40) // block-max-size, ignored
	buf.WriteByte(0x00) // header checksum, ignored
	for _, b := range blocks {
		size := uint32(len(b))
		buf.WriteByte(byte(size))
		buf.WriteByte(byte(size >> 8))
		buf.WriteByte(byte(size >> 16))
		buf.WriteByte(byte(size >> 24))
		buf.Write(b)
	}
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // end of frame
	return buf.Bytes()
}

func decodeAll(t *testing.T, in []byte, chunkIn, chunkOut int) ([]byte, error) {
	t.Helper()
	var ctx Context
	var out bytes.Buffer
	scratch := make([]byte, max(chunkOut, 1))

	for pos := 0; ; {
		end := pos + chunkIn
		if end > len(in) || chunkIn <= 0 {
			end = len(in)
		}
		src := in[pos:end]
		for {
			n, produced, err := ctx.Decompress(src, scratch)
			out.Write(scratch[:produced])
			src = src[n:]
			pos += n
			if err == io.EOF {
				return out.Bytes(), io.EOF
			}
			if err != nil {
				return out.Bytes(), err
			}
			if n == 0 && produced == 0 {
				break
			}
		}
		if pos >= len(in) {
			return out.Bytes(), nil
		}
	}
}

func TestEmptyPayloadFrame(t *testing.T) {
	in := []byte{0x04, 0x22, 0x4D, 0x18, 0x40, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00}
	out, err := decodeAll(t, in, 0, 64)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, out)
}

func TestLiteralsOnlyBlock(t *testing.T) {
	in := []byte{
		0x04, 0x22, 0x4D, 0x18, 0x40, 0x40, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x10, 0x41,
		0x00, 0x00, 0x00, 0x00,
	}
	out, err := decodeAll(t, in, 0, 64)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte{0x41}, out)
}

func TestRunExpansionViaBackReference(t *testing.T) {
	// token 0x11: 1 literal, match-length-base 1 (=> matchlen 5); literal 0x41;
	// offset 0x0001. Produces "A" + "AAAAA" = six A's.
	block := []byte{0x11, 0x41, 0x01, 0x00}
	in := frame(0x40, block)
	out, err := decodeAll(t, in, 0, 64)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, bytes.Repeat([]byte{0x41}, 6), out)
}

func TestVariableLiteralLength(t *testing.T) {
	lits := bytes.Repeat([]byte{0x5A}, 280)
	block := append([]byte{0xF0, 0xFF, 0x0A}, lits...)
	in := frame(0x40, block)
	out, err := decodeAll(t, in, 0, 1024)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, lits, out)
}

func TestChunkedByteAtATime(t *testing.T) {
	in := []byte{
		0x04, 0x22, 0x4D, 0x18, 0x40, 0x40, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x10, 0x41,
		0x00, 0x00, 0x00, 0x00,
	}
	out, err := decodeAll(t, in, 1, 1)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte{0x41}, out)
}

func TestBadMagic(t *testing.T) {
	in := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00, 0x00, 0x00}
	var ctx Context
	out := make([]byte, 64)
	n, produced, err := ctx.Decompress(in, out)
	assert.ErrorIs(t, err, ErrInvalidHeader)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, produced)
}

func TestRawBlockPassthrough(t *testing.T) {
	payload := []byte("firmware blob, not worth compressing")
	var buf bytes.Buffer
	buf.Write([]byte{0x04, 0x22, 0x4D, 0x18, 0x40, 0x40, 0x00})
	size := uint32(len(payload)) | (1 << 31)
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size >> 8))
	buf.WriteByte(byte(size >> 16))
	buf.WriteByte(byte(size >> 24))
	buf.Write(payload)
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})

	out, err := decodeAll(t, buf.Bytes(), 3, 5)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, payload, out)
}

func TestMatchAcrossRawAndCompressedBlocks(t *testing.T) {
	// A raw block seeds the window, then a compressed block back-references
	// into it across the block boundary.
	raw := []byte("ABCDEFGH")
	var buf bytes.Buffer
	buf.Write([]byte{0x04, 0x22, 0x4D, 0x18, 0x40, 0x40, 0x00})
	size := uint32(len(raw)) | (1 << 31)
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size >> 8))
	buf.WriteByte(byte(size >> 16))
	buf.WriteByte(byte(size >> 24))
	buf.Write(raw)

	// Compressed block: sequence 1 is token 0x05 (0 literals, matchlen base
	// 5 => 9), offset 8; a block must end on a literals boundary, so
	// sequence 2 is a trailing literal-only run (token 0x10, one literal).
	block := []byte{0x05, 0x08, 0x00, 0x10, 0x5A}
	buf.WriteByte(byte(len(block)))
	buf.WriteByte(byte(len(block) >> 8))
	buf.WriteByte(byte(len(block) >> 16))
	buf.WriteByte(byte(len(block) >> 24))
	buf.Write(block)
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})

	out, err := decodeAll(t, buf.Bytes(), 0, 64)
	assert.ErrorIs(t, err, io.EOF)
	match := append(append([]byte{}, raw...), 'A')
	want := append(append(append([]byte{}, raw...), match...), 'Z')
	assert.Equal(t, want, out)
}

func TestZeroOffsetIsInvalid(t *testing.T) {
	block := []byte{0x15, 0x41, 0x00, 0x00} // literal 'A', offset 0
	in := frame(0x40, block)
	_, err := decodeAll(t, in, 0, 64)
	assert.ErrorIs(t, err, ErrInvalidBlockSize)
}

func TestBlockCRCPresentIsSkipped(t *testing.T) {
	block := []byte{0x10, 0x41}
	var buf bytes.Buffer
	buf.Write([]byte{0x04, 0x22, 0x4D, 0x18})
	buf.WriteByte(byte(FlagBlockCRCPresent))
	buf.WriteByte(0x40)
	buf.WriteByte(0x00)
	size := uint32(len(block))
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size >> 8))
	buf.WriteByte(byte(size >> 16))
	buf.WriteByte(byte(size >> 24))
	buf.Write(block)
	buf.Write([]byte{0xAA, 0xBB, 0xCC, 0xDD}) // block CRC, discarded
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})

	out, err := decodeAll(t, buf.Bytes(), 0, 64)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte{0x41}, out)
}

func TestOutputSplitRobustness(t *testing.T) {
	block := []byte{0x11, 0x41, 0x01, 0x00}
	in := frame(0x40, block)
	for _, chunk := range []int{1, 2, 3, 64} {
		out, err := decodeAll(t, in, 0, chunk)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, bytes.Repeat([]byte{0x41}, 6), out)
	}
}
