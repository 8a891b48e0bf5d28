// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package client

import (
	"context"

	"github.com/wneessen/meteobuf/envelope"
)

// Future is the pending result of FetchAsync.
type Future struct {
	done      chan struct{}
	locations []envelope.Location
	err       error
}

// FetchAsync starts Fetch in its own goroutine. Cancelling ctx aborts the request.
func (c *Client) FetchAsync(ctx context.Context, endpoint string, params Params) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.locations, f.err = c.Fetch(ctx, endpoint, params)
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx is done. Abandoning the wait does not
// cancel the fetch; cancel the context passed to FetchAsync for that.
func (f *Future) Wait(ctx context.Context) ([]envelope.Location, error) {
	select {
	case <-f.done:
		return f.locations, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
