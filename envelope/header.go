// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"bytes"
	"fmt"
)

// Header layout (8 bytes):
//
//	magic    (4 bytes, "OMFB")
//	version  (1 byte)
//	reserved (3 bytes)
//
// The body that follows is a sequence of size-prefixed FlatBuffers messages, one per
// location, exactly as the API streams them for format=flatbuffers.
const (
	HeaderSize = 8

	// Version is the only schema version this reader understands.
	Version byte = 1
)

// Magic is the marker every envelope starts with.
var Magic = [4]byte{'O', 'M', 'F', 'B'}

// Header is the decoded envelope header.
type Header struct {
	Version byte
}

// Bytes returns the encoded header.
func (h Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic[:])
	buf[4] = h.Version
	return buf
}

// DecodeHeader reads and validates the envelope header at the start of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrMalformedEnvelope,
			HeaderSize, len(buf))
	}
	if !bytes.Equal(buf[:len(Magic)], Magic[:]) {
		return Header{}, fmt.Errorf("%w: magic mismatch", ErrMalformedEnvelope)
	}
	h := Header{Version: buf[4]}
	if h.Version != Version {
		return h, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, h.Version, Version)
	}
	return h, nil
}

// HasMagic reports whether buf starts with the envelope magic.
func HasMagic(buf []byte) bool {
	return bytes.HasPrefix(buf, Magic[:])
}
