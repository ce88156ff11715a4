package transform

import (
	"errors"
	"fmt"

	"quill/internal/circuit"
	"quill/internal/coupling"
)

// ErrUnroutedToffoli means a CCX reached the router; decomposition must
// run first so only CNOT and SWAP interactions remain.
var ErrUnroutedToffoli = errors.New("toffoli must be decomposed before routing")

// placement is the logical-to-physical bijection threaded through one
// routing pass. It exists only for the duration of Route; the returned
// circuit already speaks physical indices.
type placement struct {
	phys    []int // phys[logical] = physical slot
	logical []int // logical[physical] = owning logical qubit
}

func identityPlacement(n int) *placement {
	p := &placement{phys: make([]int, n), logical: make([]int, n)}
	for i := 0; i < n; i++ {
		p.phys[i] = i
		p.logical[i] = i
	}
	return p
}

// swapPhysical exchanges the logical owners of two physical slots,
// mirroring an inserted SWAP gate.
func (p *placement) swapPhysical(a, b int) {
	la, lb := p.logical[a], p.logical[b]
	p.logical[a], p.logical[b] = lb, la
	p.phys[la], p.phys[lb] = b, a
}

// Route inserts SWAP chains so every two-qubit operation acts on
// hardware-adjacent physical qubits. Non-adjacent operand pairs are joined
// along the BFS shortest path, moving the first operand one hop at a time
// until one edge remains; the original operation is then appended with its
// control/target orientation intact. Single-qubit gates and measurements
// are remapped to wherever their logical qubit currently lives.
func Route(c *circuit.Circuit, cm *coupling.Map) (*circuit.Circuit, error) {
	width := c.Qubits()
	if cm.Size() > width {
		width = cm.Size()
	}
	out, err := circuit.New(c.Register(), width)
	if err != nil {
		return nil, err
	}
	if c.Seeded() {
		out.SetSeed(c.Seed())
	}
	out.SetShots(c.Shots())

	place := identityPlacement(width)
	for _, op := range c.Ops() {
		switch op.Kind {
		case circuit.CCX:
			return nil, fmt.Errorf("%w: ccx %v", ErrUnroutedToffoli, op.Qubits)
		case circuit.CNOT, circuit.SWAP:
			a, b := place.phys[op.Qubits[0]], place.phys[op.Qubits[1]]
			if !cm.Adjacent(a, b) {
				path, err := cm.ShortestPath(a, b)
				if err != nil {
					return nil, fmt.Errorf("routing %s between %s[%d] and %s[%d]: %w",
						op.Kind, c.Register(), op.Qubits[0], c.Register(), op.Qubits[1], err)
				}
				// walk the first operand down the path until adjacent
				for i := 0; i+2 < len(path); i++ {
					if err := out.Append(circuit.Swap(path[i], path[i+1])); err != nil {
						return nil, err
					}
					place.swapPhysical(path[i], path[i+1])
				}
				a = path[len(path)-2]
			}
			if err := out.Append(circuit.Op{Kind: op.Kind, Qubits: []int{a, place.phys[op.Qubits[1]]}, Bit: -1}); err != nil {
				return nil, err
			}
		case circuit.MeasureAll:
			if err := out.Append(op); err != nil {
				return nil, err
			}
		default:
			mapped := circuit.Op{Kind: op.Kind, Qubits: []int{place.phys[op.Qubits[0]]}, Theta: op.Theta, Bit: op.Bit}
			if err := out.Append(mapped); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
