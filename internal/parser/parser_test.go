package parser_test

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/parser"
)

const sample = `// entangle and rotate
ALLOCATE q 3
SEED 42
LET theta = pi / 4
# shell-style comments work too
HADAMARD_LAYER q
RZ theta q[0]
CNOT q[0], q[1]
CCX q[0], q[1], q[2]
MEASURE q[1] AS m1
MEASURE q
FOR i IN q {
    T q[i]
}
`

func TestParseFullProgram(t *testing.T) {
	prog, err := parser.Parse("sample.qll", sample)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 10)

	alloc := prog.Statements[0].Allocate
	require.NotNil(t, alloc)
	assert.Equal(t, "q", alloc.Name)
	assert.Equal(t, 3, alloc.Size)

	seed := prog.Statements[1].Seed
	require.NotNil(t, seed)
	assert.Equal(t, int64(42), seed.Value)

	let := prog.Statements[2].Let
	require.NotNil(t, let)
	assert.Equal(t, "theta", let.Name)

	require.NotNil(t, prog.Statements[3].Layer)
	require.NotNil(t, prog.Statements[4].Rz)

	cnot := prog.Statements[5].Gate
	require.NotNil(t, cnot)
	assert.Equal(t, "CNOT", cnot.Name)
	require.Len(t, cnot.Args, 2)
	assert.Equal(t, "q", cnot.Args[0].Reg)

	ccx := prog.Statements[6].Gate
	require.NotNil(t, ccx)
	require.Len(t, ccx.Args, 3)

	one := prog.Statements[7].Measure
	require.NotNil(t, one)
	require.NotNil(t, one.One)
	assert.Equal(t, "m1", one.One.Name)

	all := prog.Statements[8].Measure
	require.NotNil(t, all)
	require.NotNil(t, all.All)
	assert.Equal(t, "q", all.All.Reg)

	loop := prog.Statements[9].For
	require.NotNil(t, loop)
	assert.Equal(t, "i", loop.Var)
	assert.Equal(t, "q", loop.Reg)
	require.Len(t, loop.Body, 1)
	require.NotNil(t, loop.Body[0].Gate)
	assert.Equal(t, "T", loop.Body[0].Gate.Name)
}

func TestParseNegativeAngle(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE q 1\nRZ -pi/4 q[0]\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	rz := prog.Statements[1].Rz
	require.NotNil(t, rz)
	factor := rz.Theta.Left.Left
	assert.True(t, factor.Neg)
	require.NotNil(t, factor.Name)
	assert.Equal(t, "pi", *factor.Name)
	require.Len(t, rz.Theta.Left.Ops, 1)
	assert.Equal(t, "/", rz.Theta.Left.Ops[0].Op)
}

func TestParsePrecedence(t *testing.T) {
	prog, err := parser.Parse("t.qll", "LET x = 1 + 2 * 3\n")
	require.NoError(t, err)

	expr := prog.Statements[0].Let.Expr
	require.Len(t, expr.Ops, 1)
	assert.Equal(t, "+", expr.Ops[0].Op)
	// the multiplication binds inside the right-hand term
	require.Len(t, expr.Ops[0].Right.Ops, 1)
	assert.Equal(t, "*", expr.Ops[0].Right.Ops[0].Op)
}

func TestParseDiffusion(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE q 2\nDIFFUSION q\n")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	d := prog.Statements[1].Diffusion
	require.NotNil(t, d)
	assert.Equal(t, "q", d.Name)
}

func TestParseMeasureShots(t *testing.T) {
	prog, err := parser.Parse("t.qll", "ALLOCATE q 2\nMEASURE q SHOTS 512\n")
	require.NoError(t, err)

	all := prog.Statements[1].Measure.All
	require.NotNil(t, all)
	require.NotNil(t, all.Shots)
	assert.Equal(t, int64(512), *all.Shots)

	prog, err = parser.Parse("t.qll", "ALLOCATE q 2\nMEASURE q\n")
	require.NoError(t, err)
	assert.Nil(t, prog.Statements[1].Measure.All.Shots)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := parser.Parse("bad.qll", "ALLOCATE q 3\nCNOT q[0] q[1]\n")
	require.Error(t, err)

	pe, ok := err.(participle.Error)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Position().Line)
}

func TestFormatErrorPointsAtTheLine(t *testing.T) {
	source := "ALLOCATE q 3\nCNOT q[0] q[1]\n"
	_, err := parser.Parse("bad.qll", source)
	require.Error(t, err)

	msg := parser.FormatError(source, err)
	assert.Contains(t, msg, "bad.qll:2:")
	assert.Contains(t, msg, "CNOT q[0] q[1]")
	assert.Contains(t, msg, "^")
}

func TestCommentsAreIgnored(t *testing.T) {
	prog, err := parser.Parse("c.qll", strings.Join([]string{
		"// leading comment",
		"ALLOCATE q 1 // trailing comment",
		"# another style",
		"H q[0]",
	}, "\n"))
	require.NoError(t, err)
	assert.Len(t, prog.Statements, 2)
}

func TestEmptyProgramParses(t *testing.T) {
	prog, err := parser.Parse("empty.qll", "// nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}
