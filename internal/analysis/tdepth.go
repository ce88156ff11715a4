package analysis

import "quill/internal/circuit"

// tstate is the per-qubit state machine behind the T-layer scheduler.
//
// next is the layer the qubit's next T gate would take if nothing blocked
// it; it advances by one per T so same-qubit T gates always serialize.
// floor is a lower bound forced by the last non-commuting gate: a T may
// never be scheduled below it.
//
// T and Tdg are diagonal, so they slide forward past anything else
// diagonal on their qubit, and in particular past the control side of a
// CNOT. They do not slide past H or X, nor past the target side of a
// CNOT, which acts like a conditional X.
type tstate struct {
	next  int
	floor int
}

// block pins the qubit: subsequent T gates must start at or after the
// layers already consumed.
func (s *tstate) block() {
	if s.next > s.floor {
		s.floor = s.next
	}
}

// TSchedule returns the T-count and the minimal number of sequential
// T layers reachable by commuting T gates through diagonal structure.
//
// The interesting rule is the two-qubit one: a CNOT only constrains the
// target side. Its floor rises to cover (a) T gates already scheduled on
// the target, which the CNOT cannot precede, and (b) the control's floor,
// because the CNOT cannot slide above whatever pinned the control. The
// control's own counter is deliberately left alone; that is what lets
//
//	t r[0]; cx r[0], r[1]; t r[1];
//
// finish in a single T layer instead of two.
func TSchedule(c *circuit.Circuit) (tcount, tdepth int) {
	states := make([]tstate, c.Qubits())
	for _, op := range c.Ops() {
		switch op.Kind {
		case circuit.T, circuit.Tdg:
			s := &states[op.Qubits[0]]
			layer := s.next
			if s.floor > layer {
				layer = s.floor
			}
			s.next = layer + 1
			tcount++
			if layer+1 > tdepth {
				tdepth = layer + 1
			}
		case circuit.Z, circuit.RZ:
			// diagonal: transparent to the T schedule
		case circuit.H, circuit.X:
			states[op.Qubits[0]].block()
		case circuit.CNOT:
			ctrl, tgt := &states[op.Qubits[0]], &states[op.Qubits[1]]
			tgt.block()
			if ctrl.floor > tgt.floor {
				tgt.floor = ctrl.floor
			}
		case circuit.CCX:
			// both controls behave like CNOT controls, the target like a
			// CNOT target
			c1, c2, tgt := &states[op.Qubits[0]], &states[op.Qubits[1]], &states[op.Qubits[2]]
			tgt.block()
			if c1.floor > tgt.floor {
				tgt.floor = c1.floor
			}
			if c2.floor > tgt.floor {
				tgt.floor = c2.floor
			}
		case circuit.SWAP:
			// three alternating CNOTs: a mutual boundary on both qubits
			a, b := &states[op.Qubits[0]], &states[op.Qubits[1]]
			a.block()
			b.block()
			if a.floor > b.floor {
				b.floor = a.floor
			} else {
				a.floor = b.floor
			}
		case circuit.Measure:
			states[op.Qubits[0]].block()
		case circuit.MeasureAll:
			for q := range states {
				states[q].block()
			}
		}
	}
	return tcount, tdepth
}
