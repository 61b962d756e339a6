package elz4

// minMatch is LZ4's minimum encodable match length; a token's low nibble of
// 0 still means a 4-byte match.
const minMatch = 4

// seqPhase is the block decoder's own sub-state, independent of the
// top-level phase. It tracks progress through one LZ4 sequence: a token,
// its literals, and its optional match.
type seqPhase uint8

const (
	seqReadToken seqPhase = iota
	seqReadLiteralsLength
	seqCopyLiterals
	seqReadOffset
	seqReadMatchLength
	seqCopyMatch
)

// sequenceState holds the block decoder's working variables across
// suspend/resume boundaries. It is reset whenever a new compressed block
// begins. Unlike the header/block-size scratch buffer, these fields are
// never aliased onto raw bytes — each has its own type and name.
type sequenceState struct {
	phase seqPhase

	litLen          uint32
	matchLen        uint32
	offset          uint16
	offsetBytesSeen uint8
}

// accountConsumed charges n input bytes against the block's declared size,
// failing if the block has overrun it. Only sub-states that actually read
// from in call this with a nonzero n; seqCopyMatch never does.
func (c *Context) accountConsumed(n int) error {
	if uint32(n) > c.blockRemaining {
		return ErrInvalidBlockSize
	}
	c.blockRemaining -= uint32(n)
	return nil
}

// decompressBlock runs the token/literals/offset/match sub-state machine
// until the input is drained, the block completes, output space runs out,
// or a malformed sequence is detected.
func (c *Context) decompressBlock(in, out []byte) (consumed, produced int, err error) {
	for consumed < len(in) {
		before := consumed

		switch c.seq.phase {
		case seqReadToken:
			tok := in[consumed]
			consumed++
			c.currentToken = tok
			c.seq.litLen = uint32(tok >> 4)
			c.seq.matchLen = 0
			c.seq.offset = 0
			c.seq.offsetBytesSeen = 0
			if c.seq.litLen < 15 {
				c.seq.phase = seqCopyLiterals
			} else {
				c.seq.phase = seqReadLiteralsLength
			}

		case seqReadLiteralsLength:
			for consumed < len(in) {
				b := in[consumed]
				consumed++
				if c.seq.litLen+uint32(b) > c.blockRemaining {
					return consumed, produced, ErrInvalidBlockSize
				}
				c.seq.litLen += uint32(b)
				if b != 0xFF {
					c.seq.phase = seqCopyLiterals
					break
				}
			}

		case seqCopyLiterals:
			n := min(int(c.seq.litLen), len(in)-consumed, len(out)-produced)
			copy(out[produced:produced+n], in[consumed:consumed+n])
			c.win.writeBytes(out[produced : produced+n])
			c.totalProduced += uint64(n)
			consumed += n
			produced += n
			c.seq.litLen -= uint32(n)

			if c.seq.litLen == 0 {
				if err := c.accountConsumed(consumed - before); err != nil {
					return consumed, produced, err
				}
				if c.blockRemaining == 0 {
					c.afterBlock()
					return consumed, produced, nil
				}
				c.seq.offsetBytesSeen = 0
				c.seq.phase = seqReadOffset
				continue
			}

			if produced == len(out) {
				if err := c.accountConsumed(consumed - before); err != nil {
					return consumed, produced, err
				}
				return consumed, produced, nil
			}

		case seqReadOffset:
			switch {
			case c.seq.offsetBytesSeen == 0 && len(in)-consumed >= 2:
				c.seq.offset = uint16(in[consumed]) | uint16(in[consumed+1])<<8
				c.seq.offsetBytesSeen = 2
				consumed += 2
			case consumed < len(in):
				c.seq.offset |= uint16(in[consumed]) << (8 * c.seq.offsetBytesSeen)
				c.seq.offsetBytesSeen++
				consumed++
			}

			if c.seq.offsetBytesSeen == 2 {
				if c.seq.offset == 0 || uint64(c.seq.offset) > c.totalProduced {
					return consumed, produced, ErrInvalidBlockSize
				}
				c.seq.matchLen = uint32(c.currentToken&0x0F) + minMatch
				if c.seq.matchLen < minMatch+15 {
					c.seq.phase = seqCopyMatch
				} else {
					c.seq.phase = seqReadMatchLength
				}
			}

		case seqReadMatchLength:
			for consumed < len(in) {
				b := in[consumed]
				consumed++
				if consumed-before > int(c.blockRemaining) || c.seq.matchLen+uint32(b) < c.seq.matchLen {
					return consumed, produced, ErrInvalidBlockSize
				}
				c.seq.matchLen += uint32(b)
				if b != 0xFF {
					c.seq.phase = seqCopyMatch
					break
				}
			}

		case seqCopyMatch:
			n := min(int(c.seq.matchLen), len(out)-produced)
			for i := 0; i < n; i++ {
				b := c.win.byteAt(int(c.seq.offset))
				out[produced+i] = b
				c.win.writeByte(b)
			}
			produced += n
			c.totalProduced += uint64(n)
			c.seq.matchLen -= uint32(n)

			if c.seq.matchLen == 0 {
				c.seq.phase = seqReadToken
				if c.blockRemaining == 0 {
					// The match was the block's last sequence.
					c.afterBlock()
					return consumed, produced, nil
				}
			} else {
				// CopyMatch consumes no input by construction; if it made
				// no headway (output exhausted) there is nothing further
				// to do this call.
				return consumed, produced, nil
			}
		}

		if err := c.accountConsumed(consumed - before); err != nil {
			return consumed, produced, err
		}
	}

	return consumed, produced, nil
}
