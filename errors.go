package elz4

import "errors"

// ErrInvalidHeader is returned when the first four bytes of a stream do not
// match the LZ4 frame magic number.
var ErrInvalidHeader = errors.New("elz4: invalid frame header")

// ErrInvalidBlockSize is returned for a malformed block: an illegal
// zero-valued match offset, a variable-length literal/match encoding that
// overflows, or a block whose sequences consume more bytes than its
// declared size.
var ErrInvalidBlockSize = errors.New("elz4: invalid block size")
