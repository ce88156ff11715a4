// Package sim is a toy statevector interpreter for circuits. It exists for
// the CLI run command and as an exactness oracle in tests; it is not part
// of the compilation pipeline.
package sim

import (
	"math"
	"math/cmplx"
)

// StateVector holds 2^n complex amplitudes. Qubit 0 is the least
// significant bit of the basis index.
type StateVector struct {
	amps   []complex128
	qubits int
}

// NewStateVector prepares |0...0>.
func NewStateVector(qubits int) *StateVector {
	amps := make([]complex128, 1<<qubits)
	amps[0] = 1
	return &StateVector{amps: amps, qubits: qubits}
}

func (s *StateVector) Qubits() int { return s.qubits }

// Amplitudes exposes the raw state for tests; callers must not mutate it.
func (s *StateVector) Amplitudes() []complex128 { return s.amps }

func (s *StateVector) ApplyH(q int) {
	f := complex(1/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a, b := s.amps[i], s.amps[j]
			s.amps[i] = f * (a + b)
			s.amps[j] = f * (a - b)
		}
	}
}

func (s *StateVector) ApplyX(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// applyPhase multiplies the |1> amplitude of q by the given phase; every
// diagonal single-qubit gate reduces to this.
func (s *StateVector) applyPhase(q int, phase complex128) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] *= phase
		}
	}
}

func (s *StateVector) ApplyZ(q int)   { s.applyPhase(q, -1) }
func (s *StateVector) ApplyT(q int)   { s.applyPhase(q, cmplx.Exp(complex(0, math.Pi/4))) }
func (s *StateVector) ApplyTdg(q int) { s.applyPhase(q, cmplx.Exp(complex(0, -math.Pi/4))) }

func (s *StateVector) ApplyRZ(q int, theta float64) {
	lo := cmplx.Exp(complex(0, -theta/2))
	hi := cmplx.Exp(complex(0, theta/2))
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			s.amps[i] *= lo
		} else {
			s.amps[i] *= hi
		}
	}
}

func (s *StateVector) ApplyCX(ctrl, tgt int) {
	cbit, tbit := 1<<ctrl, 1<<tgt
	for i := range s.amps {
		if i&cbit != 0 && i&tbit == 0 {
			s.amps[i], s.amps[i|tbit] = s.amps[i|tbit], s.amps[i]
		}
	}
}

func (s *StateVector) ApplySwap(a, b int) {
	abit, bbit := 1<<a, 1<<b
	for i := range s.amps {
		if i&abit != 0 && i&bbit == 0 {
			j := (i &^ abit) | bbit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *StateVector) ApplyCCX(c1, c2, tgt int) {
	b1, b2, tbit := 1<<c1, 1<<c2, 1<<tgt
	for i := range s.amps {
		if i&b1 != 0 && i&b2 != 0 && i&tbit == 0 {
			s.amps[i], s.amps[i|tbit] = s.amps[i|tbit], s.amps[i]
		}
	}
}

// Probabilities returns the normalized measurement distribution over all
// basis states.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	total := 0.0
	for i, a := range s.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		probs[i] = p
		total += p
	}
	if total > 0 {
		for i := range probs {
			probs[i] /= total
		}
	}
	return probs
}
