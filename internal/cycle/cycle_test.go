// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cycle

import (
	"errors"
	"testing"
)

func intPtr(i int) *int { return &i }

func TestSelectIndex_Explicit(t *testing.T) {
	tests := []struct {
		name     string
		explicit int
		count    int
		want     int
	}{
		{"within range", 2, 4, 2},
		{"wraps", 6, 4, 2},
		{"zero", 0, 4, 0},
		{"exact multiple", 8, 4, 0},
		{"single item", 17, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The explicit index must be stable regardless of time.
			for _, now := range []int64{0, 299, 300, 1_700_000_000} {
				got, err := SelectIndex(intPtr(tt.explicit), tt.count, now, 300)
				if err != nil {
					t.Fatalf("SelectIndex() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("SelectIndex(%d, %d, now=%d) = %d, want %d",
						tt.explicit, tt.count, now, got, tt.want)
				}
			}
		})
	}
}

func TestSelectIndex_WindowStability(t *testing.T) {
	const interval = int64(300)
	// All instants inside one window select the same item. The window here
	// starts exactly at base and runs for interval seconds.
	base := int64(1_700_000_100)
	want, err := SelectIndex(nil, 6, base, interval)
	if err != nil {
		t.Fatal(err)
	}
	for _, now := range []int64{base, base + 100, base + 299} {
		got, err := SelectIndex(nil, 6, now, interval)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("SelectIndex(nil, 6, %d) = %d, want %d", now, got, want)
		}
	}
}

func TestSelectIndex_AdvancesAcrossWindows(t *testing.T) {
	const interval = int64(300)
	now := int64(600) // window 2
	a, _ := SelectIndex(nil, 6, now, interval)
	b, _ := SelectIndex(nil, 6, now+interval, interval)
	if b != (a+1)%6 {
		t.Errorf("next window selected %d, want %d", b, (a+1)%6)
	}
}

func TestSelectIndex_ZeroCount(t *testing.T) {
	for _, explicit := range []*int{nil, intPtr(3)} {
		_, err := SelectIndex(explicit, 0, 1000, 300)
		if !errors.Is(err, ErrNoItems) {
			t.Errorf("SelectIndex(count=0) error = %v, want ErrNoItems", err)
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		now, interval, want int64
	}{
		{0, 300, 0},
		{299, 300, 0},
		{300, 300, 1},
		{1_700_000_000, 300, 5_666_666},
	}
	for _, tt := range tests {
		if got := Window(tt.now, tt.interval); got != tt.want {
			t.Errorf("Window(%d, %d) = %d, want %d", tt.now, tt.interval, got, tt.want)
		}
	}
}
