package coupling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/coupling"
)

func TestParseLine(t *testing.T) {
	m, err := coupling.Parse("[[0,1],[1,2]]")
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	assert.True(t, m.Adjacent(0, 1))
	assert.True(t, m.Adjacent(1, 0))
	assert.True(t, m.Adjacent(1, 2))
	assert.False(t, m.Adjacent(0, 2))
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"not json",
		"[[0,1,2]]",
		"[[0]]",
		"[[0,0]]",
		"[[-1,1]]",
	}
	for _, spec := range cases {
		_, err := coupling.Parse(spec)
		assert.ErrorIs(t, err, coupling.ErrMalformedCouplingSpec, "spec %q", spec)
	}
}

func TestShortestPathLine(t *testing.T) {
	m, err := coupling.Parse("[[0,1],[1,2],[2,3]]")
	require.NoError(t, err)

	path, err := m.ShortestPath(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, path)

	path, err = m.ShortestPath(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, path)
}

func TestShortestPathPrefersLowIndices(t *testing.T) {
	// two shortest paths from 0 to 3: via 1 or via 2
	m, err := coupling.Parse("[[0,1],[1,3],[0,2],[2,3]]")
	require.NoError(t, err)

	path, err := m.ShortestPath(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, path)
}

func TestShortestPathDisconnected(t *testing.T) {
	m, err := coupling.New(4, [][2]int{{0, 1}, {2, 3}})
	require.NoError(t, err)

	_, err = m.ShortestPath(0, 3)
	assert.ErrorIs(t, err, coupling.ErrDisconnectedCouplingGraph)
}
