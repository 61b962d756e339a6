// Package elz4 implements a streaming, resumable decoder for the LZ4 frame
// format (https://github.com/lz4/lz4/blob/dev/doc/lz4_Frame_format.md).
//
// Unlike a typical decompressor that expects the whole compressed input and
// output to be addressable at once, a Context decodes an LZ4 frame from
// arbitrarily small input chunks into arbitrarily small output chunks. This
// makes it suitable for memory-constrained call sites — firmware update
// paths in particular — where neither the compressed stream nor the
// decompressed payload can be held in memory in full.
//
// A Context is zero-value ready: its initial state is equivalent to having
// just started a frame. Call Decompress repeatedly, feeding it more input
// and/or a fresh output slice, until it returns io.EOF.
package elz4
