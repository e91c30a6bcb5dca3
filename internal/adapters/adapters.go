// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adapters translates each upstream feed's native shape into the
// engine's normalized records.
//
// Every adapter method is total: fetch and parse failures are absorbed into
// a degraded-but-usable result with an explicit Status, never propagated as
// errors. The renderer decides how degradation looks; the orchestrator only
// ever branches on Status.
package adapters

import "go.uber.org/zap"

// Status reports how much of an adapter's result is live upstream data.
type Status int

const (
	// StatusLive means every upstream call succeeded.
	StatusLive Status = iota
	// StatusDegraded means some data is live, the rest substituted.
	StatusDegraded
	// StatusUnavailable means no usable upstream data; render the fallback.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusDegraded:
		return "degraded"
	default:
		return "unavailable"
	}
}

// logger returns l, or a no-op logger so adapters never nil-check.
func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
