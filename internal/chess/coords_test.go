package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoordsFromWire(t *testing.T) {
	c, err := CoordsFromWire(-1, -1)
	require.NoError(t, err)
	require.True(t, c.IsTaken())

	c, err = CoordsFromWire(3, 5)
	require.NoError(t, err)
	idx, ok := c.Index()
	require.True(t, ok)
	require.Equal(t, 5*8+3, idx)

	for _, bad := range [][2]int32{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {-2, -2}} {
		_, err := CoordsFromWire(bad[0], bad[1])
		require.Error(t, err, "coords %v", bad)
	}
}

func TestOffBoardHasNoIndex(t *testing.T) {
	_, ok := OffBoard().Index()
	require.False(t, ok)
}

func TestParsePieceKind(t *testing.T) {
	k, err := ParsePieceKind("  Queen ")
	require.NoError(t, err)
	require.Equal(t, Queen, k)

	_, err = ParsePieceKind("dragon")
	require.Error(t, err)
}
