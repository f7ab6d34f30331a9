package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToBoardCoord(t *testing.T) {
	cases := []struct {
		screenX, screenY int
		wantX, wantY     int
		ok               bool
	}{
		{leftMargin, topMargin, 0, 0, true},
		{leftMargin + 1, topMargin, 0, 0, true}, // second cell of the square
		{leftMargin + 2, topMargin, 1, 0, true},
		{leftMargin + 15, topMargin + 7, 7, 7, true},
		{leftMargin - 1, topMargin, 0, 0, false},
		{leftMargin, topMargin - 1, 0, 0, false},
		{leftMargin + 16, topMargin, 0, 0, false},
		{leftMargin, topMargin + 8, 0, 0, false},
	}
	for _, tc := range cases {
		x, y, ok := toBoardCoord(tc.screenX, tc.screenY)
		require.Equal(t, tc.ok, ok, "screen (%d, %d)", tc.screenX, tc.screenY)
		if ok {
			require.Equal(t, tc.wantX, x)
			require.Equal(t, tc.wantY, y)
		}
	}
}
