package elz4

// Decompress feeds in into the decoder and writes reconstructed payload
// bytes into out, both as far as it can go in one call. It returns how
// much of in was consumed and how much of out was produced.
//
// A nil error means progress (possibly zero bytes of it) was made and
// Decompress should be called again with more input and/or a fresh output
// slice to continue the frame. io.EOF means the frame's terminating zero
// block was reached; decoding is complete and ctx must not be reused for
// further input. ErrInvalidHeader and ErrInvalidBlockSize are terminal
// parse failures.
//
// in and out may be as small as a single byte; a match may legally
// reference output produced by an earlier call, even into a different
// backing array, since ctx keeps its own history window independent of
// whatever buffer out happens to be on any given call.
func (c *Context) Decompress(in, out []byte) (consumed, produced int, err error) {
	for consumed < len(in) {
		beforePhase := c.phase

		var nc, np int
		switch c.phase {
		case phaseHeader:
			nc, err = c.header(in[consumed:])
		case phaseBlockSize:
			nc, err = c.blockSize(in[consumed:])
		case phaseBlockCRC:
			nc, err = c.blockCRC(in[consumed:])
		case phaseRawCopyBlock:
			nc, np = c.rawCopy(in[consumed:], out[produced:])
		case phaseDecompressBlock:
			nc, np, err = c.decompressBlock(in[consumed:], out[produced:])
		}

		consumed += nc
		produced += np
		if err != nil {
			return consumed, produced, err
		}
		if nc == 0 && np == 0 && c.phase == beforePhase {
			// No phase made progress and none transitioned: either
			// output is exhausted mid-copy, or out was empty to begin
			// with. Either way, calling again won't help without more
			// output space.
			break
		}
	}
	return consumed, produced, nil
}
