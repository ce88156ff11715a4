// Package qasm serializes circuits to OpenQASM 3 with a metrics footer.
package qasm

import (
	"fmt"
	"strconv"
	"strings"

	"quill/internal/analysis"
	"quill/internal/circuit"
)

// Field names in the metrics footer. External tooling regex-parses these,
// so they are part of the wire contract and must stay stable.
const (
	FieldDepth         = "depth"
	FieldTwoQubitDepth = "two_qubit_depth"
	FieldTwoQubitCount = "two_qubit_count"
	FieldTwoQubitEquiv = "two_qubit_equiv"
	FieldTCount        = "t_count"
	FieldTDepth        = "t_depth"
)

// Emit renders the circuit as an OpenQASM 3.0 program, one statement per
// operation in program order, followed by the metrics footer as structured
// comments. Pure: the same circuit and record always produce byte-identical
// text.
func Emit(c *circuit.Circuit, rec analysis.Record) string {
	reg := c.Register()
	creg := "c"
	if reg == creg {
		creg = "cl"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "OPENQASM 3.0;\n")
	fmt.Fprintf(&b, "include \"stdgates.inc\";\n")
	fmt.Fprintf(&b, "qubit[%d] %s;\n", c.Qubits(), reg)
	fmt.Fprintf(&b, "bit[%d] %s;\n", c.Bits(), creg)

	for _, op := range c.Ops() {
		writeOp(&b, reg, creg, op)
	}

	b.WriteString("// ---- metrics ----\n")
	fmt.Fprintf(&b, "// %s: %d\n", FieldDepth, rec.Depth)
	fmt.Fprintf(&b, "// %s: %d\n", FieldTwoQubitDepth, rec.TwoQubitDepth)
	fmt.Fprintf(&b, "// %s: %d\n", FieldTwoQubitCount, rec.TwoQubitCount)
	fmt.Fprintf(&b, "// %s: %d\n", FieldTwoQubitEquiv, rec.TwoQubitEquiv)
	fmt.Fprintf(&b, "// %s: %d\n", FieldTCount, rec.TCount)
	fmt.Fprintf(&b, "// %s: %d\n", FieldTDepth, rec.TDepth)
	return b.String()
}

func writeOp(b *strings.Builder, reg, creg string, op circuit.Op) {
	switch op.Kind {
	case circuit.RZ:
		fmt.Fprintf(b, "rz(%s) %s[%d];\n", formatAngle(op.Theta), reg, op.Qubits[0])
	case circuit.Measure:
		fmt.Fprintf(b, "%s[%d] = measure %s[%d];\n", creg, op.Bit, reg, op.Qubits[0])
	case circuit.MeasureAll:
		fmt.Fprintf(b, "%s = measure %s;\n", creg, reg)
	default:
		b.WriteString(op.Kind.String())
		for i, q := range op.Qubits {
			if i == 0 {
				fmt.Fprintf(b, " %s[%d]", reg, q)
			} else {
				fmt.Fprintf(b, ", %s[%d]", reg, q)
			}
		}
		b.WriteString(";\n")
	}
}

// formatAngle uses the shortest round-trip representation so emission is
// deterministic and the downstream parser recovers the exact float.
func formatAngle(theta float64) string {
	s := strconv.FormatFloat(theta, 'g', -1, 64)
	// bare integers would parse as ints downstream; keep them floats
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
