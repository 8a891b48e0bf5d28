// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package client fetches Open-Meteo responses in the FlatBuffers format and returns the
// decoded locations.
//
// A Client sends exactly one request per call and never splits or merges requests. The
// HTTP exchange is delegated to a Transport; the default transport retries temporary
// failures and trips a circuit breaker, any caching is left to the transport.
package client

import (
	"context"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"time"

	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/internal/http"
	"github.com/wneessen/meteobuf/internal/logger"
)

const (
	// DefaultConcurrency limits the number of requests FetchBatch runs at once.
	DefaultConcurrency = 4

	// ForecastURL is the endpoint of the Open-Meteo forecast API.
	ForecastURL = "https://api.open-meteo.com/v1/forecast"
	// ArchiveURL is the endpoint of the Open-Meteo historical weather API.
	ArchiveURL = "https://archive-api.open-meteo.com/v1/archive"
)

// Transport performs one HTTP request and returns the raw response body. Implementations
// must be safe for concurrent use.
type Transport interface {
	Perform(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error)
}

// Decoder turns a response body into a verified envelope.
type Decoder func([]byte) (*envelope.Envelope, error)

// Client fetches and decodes API responses. It holds no mutable state of its own and is
// safe for concurrent use if its Transport is.
type Client struct {
	transport   Transport
	decode      Decoder
	logger      *logger.Logger
	concurrency int
	method      string
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the default HTTP transport.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithLogger sets the logger for debug output. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.Wrap(log)
	}
}

// WithDecoder replaces envelope.Decode, e.g. with envelope.Parse to insist on an envelope
// header.
func WithDecoder(decode Decoder) Option {
	return func(c *Client) {
		c.decode = decode
	}
}

// WithConcurrency limits the number of concurrent requests of FetchBatch.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithMethod sets the default HTTP method, GET or POST.
func WithMethod(method string) Option {
	return func(c *Client) {
		c.method = method
	}
}

// New returns a Client. Without WithTransport every Client gets its own HTTP transport.
func New(opts ...Option) *Client {
	c := &Client{
		decode:      envelope.Decode,
		logger:      logger.Discard(),
		concurrency: DefaultConcurrency,
		method:      stdhttp.MethodGet,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = http.NewResilient(http.New(c.logger), http.DefaultBackoff, 5, 30*time.Second, c.logger)
	}
	return c
}

// Fetch performs one request and returns the decoded locations in server order.
func (c *Client) Fetch(ctx context.Context, endpoint string, params Params) ([]envelope.Location, error) {
	env, err := c.FetchEnvelope(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return env.Locations(), nil
}

// FetchEnvelope is like Fetch but returns the envelope itself.
func (c *Client) FetchEnvelope(ctx context.Context, endpoint string, params Params) (*envelope.Envelope, error) {
	return c.fetch(ctx, Call{URL: endpoint, Params: params})
}

func (c *Client) fetch(ctx context.Context, call Call) (*envelope.Envelope, error) {
	query, err := call.Params.Normalize()
	if err != nil {
		return nil, err
	}
	method := call.Method
	if method == "" {
		method = c.method
	}

	start := time.Now()
	data, err := c.transport.Perform(ctx, method, call.URL, query)
	if err != nil {
		return nil, transportError(ctx, call.URL, err)
	}
	env, err := c.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", call.URL, err)
	}
	c.logger.Debug("response decoded", slog.String("url", call.URL), slog.String("method", method),
		slog.Int("locations", env.Len()), slog.Int("bytes", env.Size()),
		slog.Duration("duration", time.Since(start)))
	return env, nil
}
