package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"quill/internal/lower"
	"quill/internal/parser"
)

// Diagnose parses (and, when parsing succeeds, lowers) the document and
// converts the first failure into LSP diagnostics. An empty slice, not
// nil, means "all clear": the client must see the previous diagnostics
// cleared.
func Diagnose(name, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	prog, err := parser.Parse(name, text)
	if err != nil {
		if d, ok := parseDiagnostic(err); ok {
			diagnostics = append(diagnostics, d)
		}
		return diagnostics
	}

	if _, err := lower.Lower(prog); err != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{}, // lowering errors carry positions in their text only
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("quill-lower"),
			Message:  err.Error(),
		})
	}
	return diagnostics
}

func parseDiagnostic(err error) (protocol.Diagnostic, bool) {
	pe, ok := err.(participle.Error)
	if !ok {
		return protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("quill-parser"),
			Message:  err.Error(),
		}, true
	}
	pos := pe.Position()
	line := uint32(0)
	if pos.Line > 0 {
		line = uint32(pos.Line - 1)
	}
	col := uint32(0)
	if pos.Column > 0 {
		col = uint32(pos.Column - 1)
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 5},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("quill-parser"),
		Message:  pe.Message(),
	}, true
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
