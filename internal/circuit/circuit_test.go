package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/circuit"
)

func TestNewRejectsEmptyRegister(t *testing.T) {
	_, err := circuit.New("r", 0)
	assert.ErrorIs(t, err, circuit.ErrBadRegisterWidth)

	_, err = circuit.New("r", -2)
	assert.ErrorIs(t, err, circuit.ErrBadRegisterWidth)

	// declaration failures are not operand bounds failures
	assert.NotErrorIs(t, err, circuit.ErrOperandOutOfRange)
}

func TestSeedPresenceIsTracked(t *testing.T) {
	c, err := circuit.New("r", 1)
	require.NoError(t, err)
	assert.False(t, c.Seeded())

	c.SetSeed(0)
	assert.True(t, c.Seeded())
	assert.Equal(t, int64(0), c.Seed())
}

func TestAppendKeepsProgramOrder(t *testing.T) {
	c, err := circuit.New("r", 3)
	require.NoError(t, err)

	require.NoError(t, c.AppendAll(
		circuit.Gate1(circuit.H, 0),
		circuit.Cx(0, 1),
		circuit.Ccx(0, 1, 2),
		circuit.Rz(0.5, 2),
		circuit.MeasureRegister(),
	))

	ops := c.Ops()
	require.Len(t, ops, 5)
	assert.Equal(t, circuit.H, ops[0].Kind)
	assert.Equal(t, circuit.CNOT, ops[1].Kind)
	assert.Equal(t, []int{0, 1, 2}, ops[2].Qubits)
	assert.Equal(t, 0.5, ops[3].Theta)
	assert.Equal(t, circuit.MeasureAll, ops[4].Kind)
}

func TestAppendValidatesBounds(t *testing.T) {
	c, err := circuit.New("r", 2)
	require.NoError(t, err)

	err = c.Append(circuit.Gate1(circuit.X, 2))
	assert.ErrorIs(t, err, circuit.ErrOperandOutOfRange)

	err = c.Append(circuit.Cx(0, -1))
	assert.ErrorIs(t, err, circuit.ErrOperandOutOfRange)

	err = c.Append(circuit.MeasureOne(0, 5))
	assert.ErrorIs(t, err, circuit.ErrOperandOutOfRange)

	// nothing invalid may have landed
	assert.Equal(t, 0, c.Len())
}

func TestAppendValidatesArityAndDuplicates(t *testing.T) {
	c, err := circuit.New("r", 3)
	require.NoError(t, err)

	err = c.Append(circuit.Op{Kind: circuit.CNOT, Qubits: []int{0}, Bit: -1})
	assert.ErrorIs(t, err, circuit.ErrBadArity)

	err = c.Append(circuit.Cx(1, 1))
	assert.ErrorIs(t, err, circuit.ErrDuplicateOperand)
}

func TestCountAndEmpty(t *testing.T) {
	c, err := circuit.New("q", 3)
	require.NoError(t, err)
	c.SetSeed(7)
	c.SetShots(512)

	require.NoError(t, c.AppendAll(
		circuit.Gate1(circuit.T, 0),
		circuit.Gate1(circuit.Tdg, 1),
		circuit.Gate1(circuit.T, 2),
	))
	assert.Equal(t, 2, c.Count(circuit.T))
	assert.Equal(t, 1, c.Count(circuit.Tdg))

	e := c.Empty()
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, "q", e.Register())
	assert.Equal(t, 3, e.Qubits())
	assert.Equal(t, int64(7), e.Seed())
	assert.True(t, e.Seeded())
	assert.Equal(t, 512, e.Shots())
}
