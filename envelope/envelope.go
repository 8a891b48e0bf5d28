// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package envelope decodes Open-Meteo binary responses into navigable views.
//
// Parse verifies the complete buffer once and returns an *Envelope. Location, Block and
// Series are small value types that read fields straight out of the envelope's buffer on
// demand; Series.Values returns a []float32 that aliases that buffer. Every view keeps the
// buffer reachable, so a view can never observe freed memory, but callers must treat the
// returned slices as read-only: the envelope is never mutated after Parse and views are
// safe for concurrent use only as long as nobody writes through them.
package envelope

import (
	"fmt"
	"iter"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Envelope is a verified response buffer holding one message per location.
type Envelope struct {
	version  byte
	buf      []byte
	messages []span
}

type span struct {
	start, end int
}

// Parse validates the envelope header and every location message in buf. The returned
// envelope references buf without copying it; buf must not be modified afterwards.
func Parse(buf []byte) (*Envelope, error) {
	header, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	env, err := parseMessages(buf, HeaderSize)
	if err != nil {
		return nil, err
	}
	env.version = header.Version
	return env, nil
}

// ParseStream validates a header-less sequence of size-prefixed messages, the framing the
// public API serves for format=flatbuffers. The stream is assumed to be of the current
// schema Version.
func ParseStream(buf []byte) (*Envelope, error) {
	env, err := parseMessages(buf, 0)
	if err != nil {
		return nil, err
	}
	env.version = Version
	return env, nil
}

// Decode parses buf with Parse if it starts with the envelope magic and with ParseStream
// otherwise. A stream cannot start with the magic since its first size prefix would exceed
// any sensible response size.
func Decode(buf []byte) (*Envelope, error) {
	if HasMagic(buf) {
		return Parse(buf)
	}
	return ParseStream(buf)
}

func parseMessages(buf []byte, offset int) (*Envelope, error) {
	env := &Envelope{buf: buf}
	for pos := offset; pos < len(buf); {
		if len(buf)-pos < flatbuffers.SizeUint32 {
			return nil, fmt.Errorf("%w: truncated size prefix at offset %d", ErrMalformedEnvelope, pos)
		}
		size := uint64(flatbuffers.GetSizePrefix(buf, flatbuffers.UOffsetT(pos)))
		start := pos + flatbuffers.SizeUint32
		if size == 0 || size > uint64(len(buf)-start) {
			return nil, fmt.Errorf("%w: location %d needs %d bytes, %d left", ErrMalformedEnvelope,
				len(env.messages), size, len(buf)-start)
		}
		end := start + int(size)
		if err := verifyMessage(buf[start:end]); err != nil {
			return nil, fmt.Errorf("location %d: %w", len(env.messages), err)
		}
		env.messages = append(env.messages, span{start: start, end: end})
		pos = end
	}
	return env, nil
}

// Version returns the schema version of the envelope.
func (e *Envelope) Version() byte {
	return e.version
}

// Size returns the number of bytes backing the envelope.
func (e *Envelope) Size() int {
	return len(e.buf)
}

// Len returns the number of locations in the envelope.
func (e *Envelope) Len() int {
	return len(e.messages)
}

// Location returns the location at index i in server order.
func (e *Envelope) Location(i int) (Location, error) {
	if i < 0 || i >= len(e.messages) {
		return Location{}, fmt.Errorf("%w: location %d of %d", ErrIndexOutOfRange, i, len(e.messages))
	}
	return e.location(i), nil
}

// Locations returns all locations in server order.
func (e *Envelope) Locations() []Location {
	locations := make([]Location, len(e.messages))
	for i := range e.messages {
		locations[i] = e.location(i)
	}
	return locations
}

// All iterates over the locations in server order.
func (e *Envelope) All() iter.Seq2[int, Location] {
	return func(yield func(int, Location) bool) {
		for i := range e.messages {
			if !yield(i, e.location(i)) {
				return
			}
		}
	}
}

func (e *Envelope) location(i int) Location {
	s := e.messages[i]
	msg := e.buf[s.start:s.end]
	return Location{
		env:   e,
		index: i,
		tab:   newTable(msg, flatbuffers.GetUOffsetT(msg)),
	}
}
