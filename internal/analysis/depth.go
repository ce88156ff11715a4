// Package analysis computes circuit cost metrics: critical-path depths,
// two-qubit interaction counts, and the commutation-aware T schedule.
// Every function is read-only over the final circuit.
package analysis

import "quill/internal/circuit"

// Record is the fixed set of counters the emitter writes into the metrics
// footer. Produced fresh for every circuit, never cached.
type Record struct {
	Depth         int
	TwoQubitDepth int
	TwoQubitCount int
	TwoQubitEquiv int
	TCount        int
	TDepth        int
}

// Compute runs all analyzers over the circuit.
func Compute(c *circuit.Circuit) Record {
	depth, twoqDepth := Depths(c)
	count, equiv := TwoQubitCounts(c)
	tcount, tdepth := TSchedule(c)
	return Record{
		Depth:         depth,
		TwoQubitDepth: twoqDepth,
		TwoQubitCount: count,
		TwoQubitEquiv: equiv,
		TCount:        tcount,
		TDepth:        tdepth,
	}
}

// touched returns the qubits an operation occupies. A whole-register
// measurement occupies everything.
func touched(c *circuit.Circuit, op circuit.Op) []int {
	if op.Kind == circuit.MeasureAll {
		all := make([]int, c.Qubits())
		for i := range all {
			all[i] = i
		}
		return all
	}
	return op.Qubits
}

// Depths computes the overall depth and the two-qubit-only depth with one
// busy-until counter per qubit. Overall: every operation starts one step
// after its busiest operand and occupies one step. Two-qubit-only: the
// same scheme restricted to two/three-qubit operations, so single-qubit
// gates occupy zero time and never push interaction layers apart.
func Depths(c *circuit.Circuit) (depth, twoqDepth int) {
	busy := make([]int, c.Qubits())
	busy2 := make([]int, c.Qubits())
	for _, op := range c.Ops() {
		qs := touched(c, op)
		if len(qs) == 0 {
			continue
		}
		start := 0
		for _, q := range qs {
			if busy[q] > start {
				start = busy[q]
			}
		}
		for _, q := range qs {
			busy[q] = start + 1
		}
		if op.Kind.TwoQubit() {
			start2 := 0
			for _, q := range qs {
				if busy2[q] > start2 {
					start2 = busy2[q]
				}
			}
			for _, q := range qs {
				busy2[q] = start2 + 1
			}
		}
	}
	for q := 0; q < c.Qubits(); q++ {
		if busy[q] > depth {
			depth = busy[q]
		}
		if busy2[q] > twoqDepth {
			twoqDepth = busy2[q]
		}
	}
	return depth, twoqDepth
}

// TwoQubitCounts returns the raw interaction count and the CNOT-equivalent
// weight. An undecomposed CCX counts once raw but twice equivalent; after
// decomposition no CCX remains and both totals reflect the real CNOT cost.
func TwoQubitCounts(c *circuit.Circuit) (count, equiv int) {
	for _, op := range c.Ops() {
		if !op.Kind.TwoQubit() {
			continue
		}
		count++
		if op.Kind == circuit.CCX {
			equiv += 2
		} else {
			equiv++
		}
	}
	return count, equiv
}
