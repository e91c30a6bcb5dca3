// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cycle computes which item of a multi-item feed a tile shows.
//
// An explicit index from the request URL always wins and is stable across
// time; absent one, the index derives from the current refresh window, so
// every request inside a window sees the same item and the item advances by
// one each window.
package cycle

import "errors"

// ErrNoItems is returned when a feed produced zero usable items. Callers map
// it to the domain's unavailable rendering; it never reaches a modulo.
var ErrNoItems = errors.New("no items to select from")

// Window returns the refresh window containing now, both in seconds.
func Window(nowSeconds, intervalSeconds int64) int64 {
	return nowSeconds / intervalSeconds
}

// SelectIndex returns the canonical item index for a tile request.
//
// With an explicit index e the result is e mod count, independent of time.
// Otherwise it is Window(now, interval) mod count. count must be positive;
// zero yields ErrNoItems.
func SelectIndex(explicit *int, count int, nowSeconds, intervalSeconds int64) (int, error) {
	if count <= 0 {
		return 0, ErrNoItems
	}
	if explicit != nil {
		return *explicit % count, nil
	}
	return int(Window(nowSeconds, intervalSeconds) % int64(count)), nil
}
