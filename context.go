package elz4

// frameMagic is the 4-byte little-endian magic number that opens every LZ4
// frame.
const frameMagic = 0x184D2204

// Flags records the bits of the frame descriptor's flags byte that this
// decoder acts on. Other bits (version, independent blocks, reserved) are
// parsed past but never inspected.
type Flags uint8

const (
	FlagDictionaryPresent  Flags = 1 << 1
	FlagContentCRCPresent  Flags = 1 << 2
	FlagContentSizePresent Flags = 1 << 3
	FlagBlockCRCPresent    Flags = 1 << 4
)

// phase selects which sub-parser of the frame is currently active.
type phase uint8

const (
	phaseHeader phase = iota // zero value: a fresh Context starts here
	phaseBlockSize
	phaseBlockCRC
	phaseDecompressBlock
	phaseRawCopyBlock
)

// maxScratch is sized for the header phase's worst case: magic(4) +
// flags(1) + block-max-size(1) + content-size(8) + dictionary-id(4) +
// header-checksum(1) = 19 bytes. Block-size and block-CRC only ever need 4.
const maxScratch = 19

// Context is the decoder's entire state. It is zero-value ready: a freshly
// declared Context behaves as though it just started reading a new frame.
// A Context decodes exactly one frame stream; it is not safe for concurrent
// use and carries no state beyond what is documented here, so callers may
// copy or discard it freely once a frame's terminal result is reached.
type Context struct {
	phase phase

	scratch    [maxScratch]byte
	scratchLen uint8

	flags          Flags
	blockRemaining uint32
	currentToken   byte

	seq sequenceState

	win           window
	totalProduced uint64
}

// fill appends bytes from in into the scratch buffer until it holds want
// bytes or in is exhausted, returning how much of in was consumed and
// whether the target length was reached.
func (c *Context) fill(in []byte, want int) (consumed int, filled bool) {
	for consumed < len(in) && int(c.scratchLen) < want {
		c.scratch[c.scratchLen] = in[consumed]
		c.scratchLen++
		consumed++
	}
	return consumed, int(c.scratchLen) >= want
}
