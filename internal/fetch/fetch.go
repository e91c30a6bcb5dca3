// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch performs single bounded-timeout HTTP calls for the source
// adapters. It never retries; per-domain retry-vs-fallback policy belongs to
// the adapter that called it.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrorKind classifies a failed upstream call.
type ErrorKind int

const (
	// Network covers connection-level failures (refused, reset, DNS).
	Network ErrorKind = iota
	// Timeout covers deadline and context expiry.
	Timeout
	// HTTPStatus covers non-2xx responses; Error.Status holds the code.
	HTTPStatus
)

func (k ErrorKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case HTTPStatus:
		return "http status"
	default:
		return "network"
	}
}

// Error is a typed fetch failure.
type Error struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == HTTPStatus {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetch performs one GET against url and returns the response body. The
// timeout bound comes from client and ctx; a timed-out call surfaces as an
// *Error with Kind Timeout and is otherwise indistinguishable from any other
// fetch failure to the caller.
func Fetch(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: Network, URL: url, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{Kind: HTTPStatus, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: url, Err: err}
	}
	return body, nil
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Timeout
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout
	}
	return Network
}
