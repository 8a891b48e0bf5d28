// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/wneessen/meteobuf/internal/logger"
)

const (
	// DefaultTimeout is the default timeout value for the HTTPClient
	DefaultTimeout = time.Second * 10

	// MaxResponseSize limits how many bytes of a response body are read
	MaxResponseSize = 64 << 20
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent is the User-Agent that the HTTP client sends with API requests
	UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) meteobuf/%s (+https://github.com/wneessen/meteobuf/)",
		runtime.GOOS,
		runtime.GOARCH,
		version,
	)

	ErrInvalidURL        = errors.New("failed to parse URL")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	ErrResponseTooLarge  = errors.New("response body exceeds size limit")
	ErrRequestTimeout    = errors.New("request timed out")
)

// StatusError is returned for responses with a non-2xx status code. Reason holds the
// message of an Open-Meteo JSON error body, if the server sent one.
type StatusError struct {
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// Temporary reports whether repeating the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// apiError is the JSON body Open-Meteo sends along with 400 and 429 responses.
type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Client is a type wrapper for the Go stdlib http.Client and the Config
type Client struct {
	*http.Client
	logger  *logger.Logger
	timeout time.Duration
}

// New returns a new HTTP client
func New(log *logger.Logger) *Client {
	return NewWithTimeout(log, DefaultTimeout)
}

// NewWithTimeout returns a new HTTP client that limits every request to timeout
func NewWithTimeout(log *logger.Logger, timeout time.Duration) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	httpTransport := &http.Transport{TLSClientConfig: tlsConfig}
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: httpTransport,
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{httpClient, log, timeout}
}

// Perform sends query to endpoint and returns the raw response body. GET requests carry the
// query in the URL, POST requests send it as a form body.
func (h *Client) Perform(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error) {
	return h.PerformWithTimeout(ctx, method, endpoint, query, h.timeout)
}

// PerformWithTimeout is Perform with a request specific timeout
func (h *Client) PerformWithTimeout(ctx context.Context, method, endpoint string, query url.Values, timeout time.Duration) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Prepare URL and query parameters
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	var body io.Reader
	switch method {
	case "", http.MethodGet:
		method = http.MethodGet
		if len(query) > 0 {
			reqURL.RawQuery = query.Encode()
		}
	case http.MethodPost:
		body = strings.NewReader(query.Encode())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	// Prepare HTTP request
	request, err := http.NewRequestWithContext(reqCtx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	if body != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Execute HTTP request
	response, err := h.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		if timedOut(err) {
			return nil, fmt.Errorf("%w after %s: %w", ErrRequestTimeout, timeout, err)
		}
		return nil, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	if response == nil {
		return nil, errors.New("nil response received")
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			h.logger.Error("failed to close HTTP request body", logger.Err(err))
		}
	}(response.Body)

	data, err := io.ReadAll(io.LimitReader(response.Body, MaxResponseSize+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		if timedOut(err) {
			return nil, fmt.Errorf("%w after %s: %w", ErrRequestTimeout, timeout, err)
		}
		return nil, fmt.Errorf("failed to read HTTP response body: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	h.logger.Debug("HTTP request performed", slog.String("method", method),
		slog.String("url", reqURL.Redacted()), slog.Int("status", response.StatusCode),
		slog.Int("bytes", len(data)))

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, statusError(response.StatusCode, data)
	}
	return data, nil
}

// timedOut reports whether err stems from the request timeout, either the context deadline
// or the client timeout.
func timedOut(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}

func statusError(code int, body []byte) *StatusError {
	err := &StatusError{StatusCode: code}
	if code != http.StatusBadRequest && code != http.StatusTooManyRequests {
		return err
	}
	var apiErr apiError
	if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error {
		err.Reason = apiErr.Reason
	}
	return err
}
