// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/internal/logger"
)

// Call is one request of a batch. An empty Method uses the client default.
type Call struct {
	URL    string
	Params Params
	Method string
}

// Result is the outcome of one Call. Exactly one of Locations and Err is set, except for a
// successful response without locations.
type Result struct {
	Locations []envelope.Location
	Err       error
}

// FetchBatch runs calls concurrently and returns one result per call in input order. A
// failing call does not affect the others. When ctx is cancelled, calls that completed keep
// their locations and the remaining ones report the context error.
func (c *Client) FetchBatch(ctx context.Context, calls []Call) []Result {
	results := make([]Result, len(calls))
	batchID := uuid.NewString()
	log := c.logger.With(slog.String("batch", batchID))
	log.Debug("starting batch", slog.Int("calls", len(calls)), slog.Int("concurrency", c.concurrency))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, call := range calls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			env, err := c.fetch(gctx, call)
			if err != nil {
				log.Debug("batch call failed", slog.Int("call", i), slog.String("url", call.URL),
					logger.Err(err))
				results[i].Err = err
				return nil
			}
			results[i].Locations = env.Locations()
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Debug("batch finished", slog.Int("calls", len(calls)), slog.Int("failed", failed))
	return results
}
