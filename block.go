package elz4

import (
	"encoding/binary"
	"io"
)

const blockRawFlag = uint32(1) << 31

// blockSize accumulates the 4-byte block descriptor and dispatches to the
// raw-copy or compressed-block decoder, or reports end of frame.
func (c *Context) blockSize(in []byte) (consumed int, err error) {
	n, filled := c.fill(in, 4)
	consumed += n
	if !filled {
		return consumed, nil
	}

	descriptor := binary.LittleEndian.Uint32(c.scratch[0:4])

	if descriptor == 0 {
		// The zero descriptor stays in scratch, so every later call
		// reports io.EOF again without consuming or producing anything.
		return consumed, io.EOF
	}
	c.scratchLen = 0

	c.blockRemaining = descriptor &^ blockRawFlag
	if descriptor&blockRawFlag != 0 {
		c.phase = phaseRawCopyBlock
	} else {
		c.seq = sequenceState{}
		c.phase = phaseDecompressBlock
	}
	return consumed, nil
}

// blockCRC discards the 4-byte per-block checksum trailer present when
// FlagBlockCRCPresent is set.
func (c *Context) blockCRC(in []byte) (consumed int, err error) {
	n, filled := c.fill(in, 4)
	consumed += n
	if !filled {
		return consumed, nil
	}
	c.scratchLen = 0
	c.phase = phaseBlockSize
	return consumed, nil
}

// afterBlock transitions to the block-CRC phase if the frame carries one,
// else directly back to the next block descriptor.
func (c *Context) afterBlock() {
	if c.flags&FlagBlockCRCPresent != 0 {
		c.phase = phaseBlockCRC
	} else {
		c.phase = phaseBlockSize
	}
}

// rawCopy passes an uncompressed block through verbatim.
func (c *Context) rawCopy(in, out []byte) (consumed, produced int) {
	n := len(in)
	if n > len(out) {
		n = len(out)
	}
	if uint32(n) > c.blockRemaining {
		n = int(c.blockRemaining)
	}
	copy(out[:n], in[:n])
	c.win.writeBytes(out[:n])
	c.totalProduced += uint64(n)
	c.blockRemaining -= uint32(n)
	if c.blockRemaining == 0 {
		c.afterBlock()
	}
	return n, n
}
