// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"quill/internal/circuit"
	"quill/internal/coupling"
	"quill/internal/lower"
	"quill/internal/parser"
	"quill/internal/sim"
	"quill/internal/transpile"
)

var (
	outPath       string
	couplingSpec  string
	ancillaBudget int
	noDecompose   bool
	verbose       bool
	shots         int
)

func main() {
	root := &cobra.Command{
		Use:           "quill",
		Short:         "Compiler and toy simulator for the quill circuit language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	transpileCmd := &cobra.Command{
		Use:   "transpile <file.quill>",
		Short: "Compile a program to OpenQASM 3 with a metrics footer",
		Args:  cobra.ExactArgs(1),
		RunE:  runTranspile,
	}
	transpileCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	transpileCmd.Flags().StringVar(&couplingSpec, "coupling", "", `coupling map as JSON pairs, e.g. [[0,1],[1,2]]`)
	transpileCmd.Flags().IntVar(&ancillaBudget, "ancilla-budget", 0, "extra qubits the decomposer may allocate")
	transpileCmd.Flags().BoolVar(&noDecompose, "no-ccx-decompose", false, "keep CCX gates instead of expanding them")
	transpileCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-pass summaries")

	runCmd := &cobra.Command{
		Use:   "run <file.quill>",
		Short: "Execute a program on the statevector simulator",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulate,
	}
	runCmd.Flags().IntVar(&shots, "shots", 256, "number of samples to draw")

	root.AddCommand(transpileCmd, runCmd)

	if err := root.Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

// compile is the shared front half: read, parse, lower.
func compile(path string) (*circuit.Circuit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	prog, err := parser.Parse(path, string(source))
	if err != nil {
		fmt.Fprint(os.Stderr, parser.FormatError(string(source), err))
		return nil, errors.New("compilation failed")
	}
	circ, err := lower.Lower(prog)
	if err != nil {
		return nil, err
	}
	return circ, nil
}

func runTranspile(cmd *cobra.Command, args []string) error {
	if verbose {
		commonlog.Configure(1, nil)
	}
	start := time.Now()

	circ, err := compile(args[0])
	if err != nil {
		return err
	}

	opts := transpile.DefaultOptions()
	opts.Decompose = !noDecompose
	opts.AncillaBudget = ancillaBudget
	if couplingSpec != "" {
		cm, err := coupling.Parse(couplingSpec)
		if err != nil {
			return err
		}
		opts.Coupling = cm
	}

	text, _, err := transpile.Run(circ, opts)
	if err != nil {
		return err
	}

	if outPath == "-" {
		fmt.Print(text)
		return nil
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return err
	}
	color.Green("[ok] wrote %s in %s", outPath, time.Since(start).Round(time.Microsecond))
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	circ, err := compile(args[0])
	if err != nil {
		return err
	}
	// a MEASURE ... SHOTS n in the program wins unless the flag is explicit
	if !cmd.Flags().Changed("shots") && circ.Shots() > 0 {
		shots = circ.Shots()
	}
	counts, err := sim.Run(circ, shots)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %d\n", k, counts[k])
	}
	return nil
}
