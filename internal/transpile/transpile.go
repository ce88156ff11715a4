// Package transpile drives the compilation pipeline: decomposition,
// routing, analysis, emission. Any pass failure aborts the run before
// emission; partial programs are never produced.
package transpile

import (
	"github.com/tliron/commonlog"

	"quill/internal/analysis"
	"quill/internal/circuit"
	"quill/internal/coupling"
	"quill/internal/qasm"
	"quill/internal/transform"
)

var log = commonlog.GetLogger("quill.transpile")

// Options selects the passes for one pipeline run.
type Options struct {
	Decompose     bool          // rewrite CCX into Clifford+T; on by default
	AncillaBudget int           // extra qubits the decomposer may claim
	Coupling      *coupling.Map // nil means no routing requested
}

// DefaultOptions mirrors the CLI defaults: decompose, no ancillas, no
// coupling constraint.
func DefaultOptions() Options {
	return Options{Decompose: true}
}

// Run takes a lowered circuit through the configured passes and returns
// the emitted OpenQASM program together with the metrics computed over the
// final circuit.
func Run(c *circuit.Circuit, opts Options) (string, analysis.Record, error) {
	cur := c
	if opts.Decompose {
		before := cur.Count(circuit.CCX)
		d, err := transform.DecomposeToffoli(cur, transform.DecomposeOptions{AncillaBudget: opts.AncillaBudget})
		if err != nil {
			return "", analysis.Record{}, err
		}
		log.Infof("decompose: %d ccx expanded, %d ops total", before, d.Len())
		cur = d
	}
	if opts.Coupling != nil {
		before := cur.Count(circuit.SWAP)
		r, err := transform.Route(cur, opts.Coupling)
		if err != nil {
			return "", analysis.Record{}, err
		}
		log.Infof("route: %d swap(s) inserted over %d physical qubits", r.Count(circuit.SWAP)-before, opts.Coupling.Size())
		cur = r
	}
	rec := analysis.Compute(cur)
	log.Infof("metrics: depth=%d twoq_depth=%d twoq=%d twoq_equiv=%d t_count=%d t_depth=%d",
		rec.Depth, rec.TwoQubitDepth, rec.TwoQubitCount, rec.TwoQubitEquiv, rec.TCount, rec.TDepth)
	return qasm.Emit(cur, rec), rec, nil
}
