package generators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicAndDistinct(t *testing.T) {
	a := G(4)
	b := G(4)
	for i := range a {
		require.True(t, a[i].Equal(b[i]))
	}
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			require.False(t, a[i].Equal(a[j]))
		}
	}
}

func TestGAndHDiverge(t *testing.T) {
	g := G(1)
	h := H(1)
	require.False(t, g[0].Equal(h[0]))
}

func TestVectorIsPrefixStable(t *testing.T) {
	short := G(2)
	long := G(5)
	for i := range short {
		require.True(t, short[i].Equal(long[i]))
	}
}
