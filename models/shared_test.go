package models

import (
	"math"
	"testing"
)

func TestPageSkip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{3, 10, 20},
		{0, 10, 0},
		{2, 0, 0},
		{math.MaxInt, MaxPageLimit, math.MaxInt64},
		{math.MaxInt, math.MaxInt, math.MaxInt64},
	}
	for _, tc := range cases {
		if got := PageSkip(tc.page, tc.limit); got != tc.want {
			t.Errorf("PageSkip(%d, %d) = %d, want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct{ limit, def, want int }{
		{0, 12, 12},
		{-5, 12, 12},
		{20, 12, 20},
		{math.MaxInt, 12, MaxPageLimit},
		{0, 0, 1},
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.limit, tc.def); got != tc.want {
			t.Errorf("ClampLimit(%d, %d) = %d, want %d", tc.limit, tc.def, got, tc.want)
		}
	}
}
