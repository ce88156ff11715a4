package sim

import (
	"fmt"
	"math/rand"
	"time"

	"quill/internal/circuit"
)

// Apply executes every gate of the circuit against the state vector.
// Measurement markers are skipped: sampling happens once at the end of a
// run, matching the shots model of the CLI.
func Apply(s *StateVector, c *circuit.Circuit) error {
	for _, op := range c.Ops() {
		switch op.Kind {
		case circuit.H:
			s.ApplyH(op.Qubits[0])
		case circuit.X:
			s.ApplyX(op.Qubits[0])
		case circuit.Z:
			s.ApplyZ(op.Qubits[0])
		case circuit.T:
			s.ApplyT(op.Qubits[0])
		case circuit.Tdg:
			s.ApplyTdg(op.Qubits[0])
		case circuit.RZ:
			s.ApplyRZ(op.Qubits[0], op.Theta)
		case circuit.CNOT:
			s.ApplyCX(op.Qubits[0], op.Qubits[1])
		case circuit.SWAP:
			s.ApplySwap(op.Qubits[0], op.Qubits[1])
		case circuit.CCX:
			s.ApplyCCX(op.Qubits[0], op.Qubits[1], op.Qubits[2])
		case circuit.Measure, circuit.MeasureAll:
			// deferred to sampling
		default:
			return fmt.Errorf("simulator cannot execute %v", op.Kind)
		}
	}
	return nil
}

// Run executes the circuit and samples the final distribution. Keys are
// bitstrings with qubit 0 rightmost. A program SEED, including an explicit
// SEED 0, makes runs reproducible; without one the sampler is time-seeded.
func Run(c *circuit.Circuit, shots int) (map[string]int, error) {
	s := NewStateVector(c.Qubits())
	if err := Apply(s, c); err != nil {
		return nil, err
	}
	seed := time.Now().UnixNano()
	if c.Seeded() {
		seed = c.Seed()
	}
	return Sample(s, shots, rand.New(rand.NewSource(seed))), nil
}

// Sample draws shots outcomes from the state's distribution.
func Sample(s *StateVector, shots int, rng *rand.Rand) map[string]int {
	probs := s.Probabilities()
	counts := make(map[string]int)
	for i := 0; i < shots; i++ {
		r := rng.Float64()
		acc := 0.0
		idx := len(probs) - 1
		for k, p := range probs {
			acc += p
			if r < acc {
				idx = k
				break
			}
		}
		counts[fmt.Sprintf("%0*b", s.qubits, idx)]++
	}
	return counts
}
