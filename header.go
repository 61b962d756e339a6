package elz4

import "encoding/binary"

// header accumulates and validates the frame header: 4-byte magic, flags
// byte, block-max-size byte, then whatever optional fields the flags
// require, then the header checksum. None of the optional fields or the
// checksum are interpreted beyond being skipped.
func (c *Context) header(in []byte) (consumed int, err error) {
	n, filled := c.fill(in, 4)
	consumed += n
	if !filled {
		return consumed, nil
	}

	magic := binary.LittleEndian.Uint32(c.scratch[0:4])
	if magic != frameMagic {
		return consumed, ErrInvalidHeader
	}

	n, filled = c.fill(in[consumed:], 6)
	consumed += n
	if !filled {
		return consumed, nil
	}
	c.flags = Flags(c.scratch[4])

	want := 6 + 1 // +1 for the trailing header checksum
	if c.flags&FlagContentSizePresent != 0 {
		want += 8
	}
	if c.flags&FlagDictionaryPresent != 0 {
		want += 4
	}

	n, filled = c.fill(in[consumed:], want)
	consumed += n
	if !filled {
		return consumed, nil
	}

	c.scratchLen = 0
	c.phase = phaseBlockSize
	return consumed, nil
}
