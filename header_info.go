package elz4

import "encoding/binary"

// HeaderInfo summarizes a frame header without decompressing anything. It
// exists for the cmd/elz4 info subcommand; the decoder itself never needs
// it, since header phase consumes and discards the same bytes.
type HeaderInfo struct {
	Flags          Flags
	BlockMaxByte   byte
	HasContentSize bool
	ContentSize    uint64
	HasDictionary  bool
	DictionaryID   uint32
	HasBlockCRC    bool
	HasContentCRC  bool
}

// ProbeHeader parses a frame header out of buf, which need not be anything
// more than the leading bytes of a frame. It returns ok == false if buf
// does not yet hold a complete header; callers should accumulate more
// bytes and retry. A bad magic number is reported through err rather than
// by returning ok == false, so callers can tell "not enough bytes yet"
// apart from "this isn't an LZ4 frame".
func ProbeHeader(buf []byte) (info HeaderInfo, ok bool, err error) {
	if len(buf) < 4 {
		return HeaderInfo{}, false, nil
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != frameMagic {
		return HeaderInfo{}, false, ErrInvalidHeader
	}
	if len(buf) < 6 {
		return HeaderInfo{}, false, nil
	}

	flags := Flags(buf[4])
	info = HeaderInfo{
		Flags:          flags,
		BlockMaxByte:   buf[5],
		HasContentSize: flags&FlagContentSizePresent != 0,
		HasDictionary:  flags&FlagDictionaryPresent != 0,
		HasBlockCRC:    flags&FlagBlockCRCPresent != 0,
		HasContentCRC:  flags&FlagContentCRCPresent != 0,
	}

	want := 6 + 1
	if info.HasContentSize {
		want += 8
	}
	if info.HasDictionary {
		want += 4
	}
	if len(buf) < want {
		return HeaderInfo{}, false, nil
	}

	pos := 6
	if info.HasContentSize {
		info.ContentSize = binary.LittleEndian.Uint64(buf[pos : pos+8])
		pos += 8
	}
	if info.HasDictionary {
		info.DictionaryID = binary.LittleEndian.Uint32(buf[pos : pos+4])
		pos += 4
	}

	return info, true, nil
}
