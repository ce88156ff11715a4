package circuit

import (
	"errors"
	"fmt"
)

// Sentinel errors for circuit construction. Passes classify failures with
// errors.Is, so every bounds problem must wrap ErrOperandOutOfRange and
// register declaration problems stay under ErrBadRegisterWidth.
var (
	ErrOperandOutOfRange = errors.New("operand out of range")
	ErrDuplicateOperand  = errors.New("duplicate operand")
	ErrBadArity          = errors.New("wrong operand count")
	ErrBadRegisterWidth  = errors.New("bad register width")
)

// Kind identifies a gate or measurement operation.
type Kind int

const (
	H Kind = iota
	X
	Z
	T
	Tdg
	RZ
	CNOT
	SWAP
	CCX
	Measure    // single qubit into a classical slot
	MeasureAll // whole register into the classical register
)

var kindNames = [...]string{"h", "x", "z", "t", "tdg", "rz", "cx", "swap", "ccx", "measure", "measure_all"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// arity is the required operand count per kind. MeasureAll is -1 because it
// implicitly touches the whole register.
var arity = map[Kind]int{
	H: 1, X: 1, Z: 1, T: 1, Tdg: 1, RZ: 1,
	CNOT: 2, SWAP: 2,
	CCX:     3,
	Measure: 1, MeasureAll: -1,
}

// TwoQubit reports whether the kind occupies a two-qubit interaction layer.
// CCX counts: it is a multi-qubit interaction until decomposed.
func (k Kind) TwoQubit() bool {
	return k == CNOT || k == SWAP || k == CCX
}

// Diagonal reports whether the kind is diagonal in the computational basis
// on every operand, which is what lets T gates commute through it.
func (k Kind) Diagonal() bool {
	return k == Z || k == RZ || k == T || k == Tdg
}

// Op is one operation in program order. Ops are values; once appended to a
// Circuit they are never mutated, only replaced wholesale by a pass that
// builds a new Circuit.
type Op struct {
	Kind   Kind
	Qubits []int   // ordered operands, indices into the circuit register
	Theta  float64 // RZ rotation angle, meaningless otherwise
	Bit    int     // Measure target slot, -1 otherwise
}

// Convenience constructors. Keeping these free functions makes pass code
// read close to the circuit it builds.

func Gate1(k Kind, q int) Op { return Op{Kind: k, Qubits: []int{q}, Bit: -1} }
func Rz(theta float64, q int) Op {
	return Op{Kind: RZ, Qubits: []int{q}, Theta: theta, Bit: -1}
}
func Cx(ctrl, tgt int) Op       { return Op{Kind: CNOT, Qubits: []int{ctrl, tgt}, Bit: -1} }
func Swap(a, b int) Op          { return Op{Kind: SWAP, Qubits: []int{a, b}, Bit: -1} }
func Ccx(c1, c2, tgt int) Op    { return Op{Kind: CCX, Qubits: []int{c1, c2, tgt}, Bit: -1} }
func MeasureOne(q, slot int) Op { return Op{Kind: Measure, Qubits: []int{q}, Bit: slot} }
func MeasureRegister() Op       { return Op{Kind: MeasureAll, Bit: -1} }

// Circuit is an append-only sequence of operations over a single named
// qubit register plus a classical register of the same width.
type Circuit struct {
	register string
	qubits   int
	bits     int
	seed     int64
	seeded   bool
	shots    int
	ops      []Op
}

// New allocates an empty circuit over a register of the given width.
func New(register string, qubits int) (*Circuit, error) {
	if register == "" {
		register = "r"
	}
	if qubits <= 0 {
		return nil, fmt.Errorf("%w: register %q needs a positive width, got %d", ErrBadRegisterWidth, register, qubits)
	}
	return &Circuit{register: register, qubits: qubits, bits: qubits}, nil
}

func (c *Circuit) Register() string { return c.register }
func (c *Circuit) Qubits() int      { return c.qubits }
func (c *Circuit) Bits() int        { return c.bits }

// Seed is the sampling seed requested by the program. Seeded distinguishes
// an explicit SEED 0 from no SEED statement at all.
func (c *Circuit) Seed() int64  { return c.seed }
func (c *Circuit) Seeded() bool { return c.seeded }
func (c *Circuit) SetSeed(seed int64) {
	c.seed = seed
	c.seeded = true
}

// Shots is the sample count requested by the program, 0 when unset.
func (c *Circuit) Shots() int     { return c.shots }
func (c *Circuit) SetShots(n int) { c.shots = n }

// Ops returns the operations in program order. Callers must not mutate the
// returned slice; passes that rewrite operations build a fresh Circuit.
func (c *Circuit) Ops() []Op { return c.ops }

func (c *Circuit) Len() int { return len(c.ops) }

// Append validates the operation against the register bounds and extends
// the program. This is the single choke point upholding the circuit
// invariant: every appended op stays in range for the life of the value.
func (c *Circuit) Append(op Op) error {
	want, ok := arity[op.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %v", ErrBadArity, op.Kind)
	}
	if want >= 0 && len(op.Qubits) != want {
		return fmt.Errorf("%w: %s takes %d operand(s), got %d", ErrBadArity, op.Kind, want, len(op.Qubits))
	}
	for i, q := range op.Qubits {
		if q < 0 || q >= c.qubits {
			return fmt.Errorf("%w: %s operand %d is %s[%d], register has %d qubit(s)",
				ErrOperandOutOfRange, op.Kind, i, c.register, q, c.qubits)
		}
		for _, p := range op.Qubits[:i] {
			if p == q {
				return fmt.Errorf("%w: %s uses %s[%d] twice", ErrDuplicateOperand, op.Kind, c.register, q)
			}
		}
	}
	if op.Kind == Measure && (op.Bit < 0 || op.Bit >= c.bits) {
		return fmt.Errorf("%w: measure targets c[%d], classical register has %d slot(s)",
			ErrOperandOutOfRange, op.Bit, c.bits)
	}
	c.ops = append(c.ops, op)
	return nil
}

// AppendAll appends a sequence, stopping at the first invalid operation.
func (c *Circuit) AppendAll(ops ...Op) error {
	for _, op := range ops {
		if err := c.Append(op); err != nil {
			return err
		}
	}
	return nil
}

// Empty returns a circuit with the same registers, seed and shot request
// but no operations. Passes use it to rebuild a program op by op.
func (c *Circuit) Empty() *Circuit {
	return &Circuit{
		register: c.register, qubits: c.qubits, bits: c.bits,
		seed: c.seed, seeded: c.seeded, shots: c.shots,
	}
}

// Count returns how many operations of the given kind the circuit holds.
func (c *Circuit) Count(k Kind) int {
	n := 0
	for _, op := range c.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}
