package approxcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCapacity(t *testing.T) {
	require := require.New(t)

	require.NoError(CheckCapacity(MinCapacity))
	require.NoError(CheckCapacity(1 << 20))

	err := CheckCapacity(1)
	require.ErrorIs(err, ErrInvalidCapacity)
	require.ErrorContains(err, "1 is below the minimum of 2")
}

func TestStatsString(t *testing.T) {
	s := Stats{Size: 3, MaxSize: 4, Hits: 5, Misses: 6, Reused: 7, Evicted: 8}
	require.Equal(t, "SIZE:3, MAX_SIZE:4, HIT:5, MISS:6, REUSED_KEYS:7, REMOVED_KEYS:8", s.String())
}
