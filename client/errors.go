// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/meteobuf/internal/http"
)

var (
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("transport error")

	// ErrParameterShapeMismatch is returned when list-valued coordinate parameters disagree in
	// length. It is raised before any request is sent.
	ErrParameterShapeMismatch = errors.New("parameter shape mismatch")
)

// TransportError reports a failed HTTP exchange. StatusCode is 0 if no response was
// received. Reason carries the message of an API error body for 400 and 429 responses.
type TransportError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Reason)
	case e.StatusCode != 0:
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// transportError classifies an error returned by a Transport. Errors caused by ctx being
// done are passed through untouched; a request that timed out on its own is a transport
// failure.
func transportError(ctx context.Context, endpoint string, err error) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	te = &TransportError{URL: endpoint, Err: err}
	var statusErr *http.StatusError
	if errors.As(err, &statusErr) {
		te.StatusCode = statusErr.StatusCode
		te.Reason = statusErr.Reason
	}
	return te
}
