package transpile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/coupling"
	"quill/internal/lower"
	"quill/internal/parser"
	"quill/internal/transform"
	"quill/internal/transpile"
)

func TestRunDefaultDecomposesToffoli(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE r 3\nCCX r[0], r[1], r[2]\n")
	require.NoError(t, err)
	c, err := lower.Lower(prog)
	require.NoError(t, err)

	out, rec, err := transpile.Run(c, transpile.DefaultOptions())
	require.NoError(t, err)

	assert.NotContains(t, out, "ccx ")
	assert.Equal(t, 7, rec.TCount)
	assert.Equal(t, 4, rec.TDepth)
	assert.Equal(t, 6, rec.TwoQubitCount)
	assert.Contains(t, out, "// t_count: 7")
}

func TestRunRoutesAcrossLineCoupling(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE r 3\nH r[0]\nCNOT r[0], r[2]\nMEASURE r\n")
	require.NoError(t, err)
	c, err := lower.Lower(prog)
	require.NoError(t, err)

	cm, err := coupling.Parse("[[0,1],[1,2]]")
	require.NoError(t, err)

	opts := transpile.DefaultOptions()
	opts.Coupling = cm
	out, rec, err := transpile.Run(c, opts)
	require.NoError(t, err)

	assert.Contains(t, out, "swap r[0], r[1];")
	assert.Contains(t, out, "cx r[1], r[2];")
	assert.Equal(t, 2, rec.TwoQubitCount)
	assert.Equal(t, 2, rec.TwoQubitEquiv)
}

func TestRunWidensRegisterToCoupling(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE r 2\nCNOT r[0], r[1]\n")
	require.NoError(t, err)
	c, err := lower.Lower(prog)
	require.NoError(t, err)

	cm, err := coupling.Parse("[[0,1],[1,2],[2,3]]")
	require.NoError(t, err)

	opts := transpile.DefaultOptions()
	opts.Coupling = cm
	out, _, err := transpile.Run(c, opts)
	require.NoError(t, err)
	assert.Contains(t, out, "qubit[4] r;")
}

func TestRunRejectsUndecomposedToffoliUnderCoupling(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE r 3\nCCX r[0], r[1], r[2]\n")
	require.NoError(t, err)
	c, err := lower.Lower(prog)
	require.NoError(t, err)

	cm, err := coupling.Parse("[[0,1],[1,2]]")
	require.NoError(t, err)

	_, _, err = transpile.Run(c, transpile.Options{Decompose: false, Coupling: cm})
	assert.ErrorIs(t, err, transform.ErrUnroutedToffoli)
}

func TestRunIsByteDeterministic(t *testing.T) {
	prog, err := parser.Parse("t.qll", `
ALLOCATE r 3
HADAMARD_LAYER r
CCX r[0], r[1], r[2]
RZ pi/4 r[2]
MEASURE r
`)
	require.NoError(t, err)
	c, err := lower.Lower(prog)
	require.NoError(t, err)

	first, _, err := transpile.Run(c, transpile.DefaultOptions())
	require.NoError(t, err)
	second, _, err := transpile.Run(c, transpile.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunFooterMatchesRecord(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE r 2\nH r[0]\nCNOT r[0], r[1]\nMEASURE r\n")
	require.NoError(t, err)
	c, err := lower.Lower(prog)
	require.NoError(t, err)

	out, rec, err := transpile.Run(c, transpile.DefaultOptions())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	var footer []string
	for _, l := range lines {
		if strings.HasPrefix(l, "// ") && strings.Contains(l, ": ") {
			footer = append(footer, l)
		}
	}
	require.Len(t, footer, 6)
	assert.Equal(t, "// depth: 3", footer[0])
	assert.Equal(t, "// two_qubit_depth: 1", footer[1])
	assert.Equal(t, "// two_qubit_count: 1", footer[2])
	assert.Equal(t, 1, rec.TwoQubitCount)
	assert.Equal(t, rec.Depth, 3)
}
