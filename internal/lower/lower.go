// Package lower builds a circuit value from a parsed program. It is the
// upstream boundary of the compiler core: everything after this point
// works on circuits, never on source text.
package lower

import (
	"fmt"
	"math"

	"quill/internal/circuit"
	"quill/internal/parser"
)

var gateKinds = map[string]circuit.Kind{
	"H": circuit.H, "X": circuit.X, "Z": circuit.Z,
	"T": circuit.T, "TDG": circuit.Tdg,
	"CNOT": circuit.CNOT, "SWAP": circuit.SWAP, "CCX": circuit.CCX,
}

type builder struct {
	circ   *circuit.Circuit
	env    map[string]float64
	seed   int64
	seeded bool
	shots  int
}

// Lower evaluates the program's classical structure (constants, loops,
// index arithmetic) and appends the resulting operations in program order.
// Index bounds are enforced by the circuit model on every append.
func Lower(prog *parser.Program) (*circuit.Circuit, error) {
	b := &builder{env: map[string]float64{"pi": math.Pi, "tau": 2 * math.Pi}}
	if err := b.statements(prog.Statements); err != nil {
		return nil, err
	}
	if b.circ == nil {
		return nil, fmt.Errorf("program must ALLOCATE a register")
	}
	if b.seeded {
		b.circ.SetSeed(b.seed)
	}
	b.circ.SetShots(b.shots)
	return b.circ, nil
}

func (b *builder) statements(stmts []*parser.Statement) error {
	for _, s := range stmts {
		if err := b.statement(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) statement(s *parser.Statement) error {
	switch {
	case s.Allocate != nil:
		return b.allocate(s.Allocate)
	case s.Seed != nil:
		b.seed = s.Seed.Value
		b.seeded = true
		return nil
	case s.Let != nil:
		v, err := b.eval(s.Let.Expr)
		if err != nil {
			return err
		}
		b.env[s.Let.Name] = v
		return nil
	case s.Layer != nil:
		return b.layer(s.Layer)
	case s.Diffusion != nil:
		return b.diffusion(s.Diffusion)
	case s.Rz != nil:
		return b.rz(s.Rz)
	case s.Gate != nil:
		return b.gate(s.Gate)
	case s.Measure != nil:
		return b.measure(s.Measure)
	case s.For != nil:
		return b.forLoop(s.For)
	}
	return nil
}

func (b *builder) allocate(a *parser.AllocateStmt) error {
	if b.circ != nil {
		return fmt.Errorf("%s: register %q already allocated", a.Pos, b.circ.Register())
	}
	c, err := circuit.New(a.Name, a.Size)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Pos, err)
	}
	b.circ = c
	return nil
}

func (b *builder) requireCircuit(pos fmt.Stringer) error {
	if b.circ == nil {
		return fmt.Errorf("%s: ALLOCATE must precede gates", pos)
	}
	return nil
}

func (b *builder) layer(l *parser.LayerStmt) error {
	if err := b.requireCircuit(l.Pos); err != nil {
		return err
	}
	if l.Name != b.circ.Register() {
		return fmt.Errorf("%s: unknown register %q", l.Pos, l.Name)
	}
	for q := 0; q < b.circ.Qubits(); q++ {
		if err := b.circ.Append(circuit.Gate1(circuit.H, q)); err != nil {
			return fmt.Errorf("%s: %w", l.Pos, err)
		}
	}
	return nil
}

// diffusion expands the Grover inversion-about-the-mean block: H and X
// layers around a phase flip on the all-ones state. The flip is exact for
// up to three qubits (Z, a CZ built from H+CNOT, or a Toffoli that the
// decomposer later rewrites); wider registers would need a multi-controlled
// phase construction and are rejected rather than approximated.
func (b *builder) diffusion(d *parser.DiffusionStmt) error {
	if err := b.requireCircuit(d.Pos); err != nil {
		return err
	}
	if d.Name != b.circ.Register() {
		return fmt.Errorf("%s: unknown register %q", d.Pos, d.Name)
	}
	n := b.circ.Qubits()
	if n > 3 {
		return fmt.Errorf("%s: DIFFUSION supports registers of up to 3 qubits, %q has %d", d.Pos, d.Name, n)
	}
	if err := b.circ.AppendAll(diffusionOps(n)...); err != nil {
		return fmt.Errorf("%s: %w", d.Pos, err)
	}
	return nil
}

func diffusionOps(n int) []circuit.Op {
	var ops []circuit.Op
	layer := func(k circuit.Kind) {
		for q := 0; q < n; q++ {
			ops = append(ops, circuit.Gate1(k, q))
		}
	}
	layer(circuit.H)
	layer(circuit.X)
	t := n - 1
	switch n {
	case 1:
		ops = append(ops, circuit.Gate1(circuit.Z, 0))
	case 2:
		ops = append(ops, circuit.Gate1(circuit.H, t), circuit.Cx(0, t), circuit.Gate1(circuit.H, t))
	case 3:
		ops = append(ops, circuit.Gate1(circuit.H, t), circuit.Ccx(0, 1, t), circuit.Gate1(circuit.H, t))
	}
	layer(circuit.X)
	layer(circuit.H)
	return ops
}

func (b *builder) rz(r *parser.RzStmt) error {
	if err := b.requireCircuit(r.Pos); err != nil {
		return err
	}
	theta, err := b.eval(r.Theta)
	if err != nil {
		return err
	}
	q, err := b.qubit(r.Target)
	if err != nil {
		return err
	}
	if err := b.circ.Append(circuit.Rz(theta, q)); err != nil {
		return fmt.Errorf("%s: %w", r.Pos, err)
	}
	return nil
}

func (b *builder) gate(g *parser.GateStmt) error {
	if err := b.requireCircuit(g.Pos); err != nil {
		return err
	}
	kind, ok := gateKinds[g.Name]
	if !ok {
		return fmt.Errorf("%s: unknown gate %q", g.Pos, g.Name)
	}
	qubits := make([]int, len(g.Args))
	for i, ref := range g.Args {
		q, err := b.qubit(ref)
		if err != nil {
			return err
		}
		qubits[i] = q
	}
	if err := b.circ.Append(circuit.Op{Kind: kind, Qubits: qubits, Bit: -1}); err != nil {
		return fmt.Errorf("%s: %w", g.Pos, err)
	}
	return nil
}

func (b *builder) measure(m *parser.MeasureStmt) error {
	if err := b.requireCircuit(m.Pos); err != nil {
		return err
	}
	if m.All != nil {
		if m.All.Reg != b.circ.Register() {
			return fmt.Errorf("%s: unknown register %q", m.Pos, m.All.Reg)
		}
		if m.All.Shots != nil {
			if *m.All.Shots <= 0 {
				return fmt.Errorf("%s: SHOTS must be positive, got %d", m.Pos, *m.All.Shots)
			}
			b.shots = int(*m.All.Shots)
		}
		return b.circ.Append(circuit.MeasureRegister())
	}
	q, err := b.qubit(m.One.Target)
	if err != nil {
		return err
	}
	// the classical slot mirrors the measured qubit index
	if err := b.circ.Append(circuit.MeasureOne(q, q)); err != nil {
		return fmt.Errorf("%s: %w", m.Pos, err)
	}
	return nil
}

func (b *builder) forLoop(f *parser.ForStmt) error {
	if err := b.requireCircuit(f.Pos); err != nil {
		return err
	}
	if f.Reg != b.circ.Register() {
		return fmt.Errorf("%s: unknown register %q", f.Pos, f.Reg)
	}
	shadowed, had := b.env[f.Var]
	for i := 0; i < b.circ.Qubits(); i++ {
		b.env[f.Var] = float64(i)
		if err := b.statements(f.Body); err != nil {
			return err
		}
	}
	if had {
		b.env[f.Var] = shadowed
	} else {
		delete(b.env, f.Var)
	}
	return nil
}

func (b *builder) qubit(ref *parser.QubitRef) (int, error) {
	if ref.Reg != b.circ.Register() {
		return 0, fmt.Errorf("%s: unknown register %q", ref.Pos, ref.Reg)
	}
	v, err := b.eval(ref.Index)
	if err != nil {
		return 0, err
	}
	rounded := math.Round(v)
	if math.Abs(v-rounded) > 1e-9 {
		return 0, fmt.Errorf("%s: qubit index %v is not an integer", ref.Pos, v)
	}
	return int(rounded), nil
}

// eval computes a constant expression over the current environment.
func (b *builder) eval(e *parser.Expr) (float64, error) {
	v, err := b.evalTerm(e.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range e.Ops {
		r, err := b.evalTerm(op.Right)
		if err != nil {
			return 0, err
		}
		if op.Op == "+" {
			v += r
		} else {
			v -= r
		}
	}
	return v, nil
}

func (b *builder) evalTerm(t *parser.Term) (float64, error) {
	v, err := b.evalFactor(t.Left)
	if err != nil {
		return 0, err
	}
	for _, op := range t.Ops {
		r, err := b.evalFactor(op.Right)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "*":
			v *= r
		case "/":
			if r == 0 {
				return 0, fmt.Errorf("%s: division by zero", op.Right.Pos)
			}
			v /= r
		case "%":
			if r == 0 {
				return 0, fmt.Errorf("%s: division by zero", op.Right.Pos)
			}
			v = math.Mod(v, r)
		}
	}
	return v, nil
}

func (b *builder) evalFactor(f *parser.Factor) (float64, error) {
	var v float64
	switch {
	case f.Float != nil:
		v = *f.Float
	case f.Int != nil:
		v = float64(*f.Int)
	case f.Name != nil:
		bound, ok := b.env[*f.Name]
		if !ok {
			return 0, fmt.Errorf("%s: unknown name %q", f.Pos, *f.Name)
		}
		v = bound
	case f.Paren != nil:
		inner, err := b.eval(f.Paren)
		if err != nil {
			return 0, err
		}
		v = inner
	}
	if f.Neg {
		v = -v
	}
	return v, nil
}
