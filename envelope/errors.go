// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import "errors"

var (
	// ErrMalformedEnvelope is returned for truncated or structurally corrupt buffers.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrUnsupportedVersion is returned for a well-formed header that carries a schema
	// version this reader does not know.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")

	// ErrIndexOutOfRange is returned when navigating past the end of a positional sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
)
