// Package transform holds the circuit rewriting passes: Toffoli
// decomposition into the Clifford+T basis and coupling-constrained SWAP
// routing. Each pass is a total function from one circuit value to a new
// one; inputs are never mutated.
package transform

import (
	"errors"
	"fmt"

	"quill/internal/circuit"
)

var ErrAncillaBudgetExceeded = errors.New("ancilla budget exceeded")

// Operand roles inside a decomposition template.
const (
	ctrl1 = iota
	ctrl2
	target
)

type templateOp struct {
	kind  circuit.Kind
	roles []int
}

// template is a qubit-role-parameterized rewrite stored as a static table,
// so the expansion is exact and the same every time rather than re-derived.
type template struct {
	ancillas int // borrowed qubits beyond the gate's own operands
	ops      []templateOp
}

// toffoli is the canonical ancilla-free Clifford+T expansion of CCX:
// 15 operations, exactly 7 T/Tdg, 6 CNOT and 2 H, equal to the Toffoli
// unitary up to global phase.
var toffoli = template{
	ancillas: 0,
	ops: []templateOp{
		{circuit.H, []int{target}},
		{circuit.CNOT, []int{ctrl2, target}},
		{circuit.Tdg, []int{target}},
		{circuit.CNOT, []int{ctrl1, target}},
		{circuit.T, []int{target}},
		{circuit.CNOT, []int{ctrl2, target}},
		{circuit.Tdg, []int{target}},
		{circuit.CNOT, []int{ctrl1, target}},
		{circuit.T, []int{ctrl2}},
		{circuit.T, []int{target}},
		{circuit.H, []int{target}},
		{circuit.CNOT, []int{ctrl1, ctrl2}},
		{circuit.T, []int{ctrl1}},
		{circuit.Tdg, []int{ctrl2}},
		{circuit.CNOT, []int{ctrl1, ctrl2}},
	},
}

// expand instantiates the template over concrete qubit operands.
func (t template) expand(qubits []int) []circuit.Op {
	out := make([]circuit.Op, 0, len(t.ops))
	for _, op := range t.ops {
		mapped := make([]int, len(op.roles))
		for i, r := range op.roles {
			mapped[i] = qubits[r]
		}
		out = append(out, circuit.Op{Kind: op.kind, Qubits: mapped, Bit: -1})
	}
	return out
}

// DecomposeOptions bounds the workspace a decomposition may claim.
// AncillaBudget is the number of extra qubits the pass may introduce
// beyond a gate's own operands; the default of 0 is satisfiable because
// the built-in template is ancilla-free.
type DecomposeOptions struct {
	AncillaBudget int
}

// DecomposeToffoli replaces every CCX, in place within program order, with
// the fixed Clifford+T sequence over the same three qubits. Everything
// else is carried over untouched. After the pass the circuit contains no
// CCX and its T-count has grown by exactly 7 per rewritten gate.
func DecomposeToffoli(c *circuit.Circuit, opts DecomposeOptions) (*circuit.Circuit, error) {
	return decomposeWith(c, toffoli, opts)
}

func decomposeWith(c *circuit.Circuit, t template, opts DecomposeOptions) (*circuit.Circuit, error) {
	out := c.Empty()
	for _, op := range c.Ops() {
		if op.Kind != circuit.CCX {
			if err := out.Append(op); err != nil {
				return nil, err
			}
			continue
		}
		if t.ancillas > opts.AncillaBudget {
			return nil, fmt.Errorf("%w: expansion needs %d ancilla(s), budget is %d",
				ErrAncillaBudgetExceeded, t.ancillas, opts.AncillaBudget)
		}
		if err := out.AppendAll(t.expand(op.Qubits)...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
