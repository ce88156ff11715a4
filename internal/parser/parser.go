package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var quillParser = participle.MustBuild[Program](
	participle.Lexer(QuillLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// Parse parses a complete program. The returned error, when non-nil, is a
// participle.Error carrying the source position.
func Parse(filename, source string) (*Program, error) {
	return quillParser.ParseString(filename, source)
}

// FormatError renders a parse error as a caret-style message. The caller
// decides where it goes; color output respects NO_COLOR via fatih/color.
func FormatError(source string, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		return color.RedString("error: %s\n", err)
	}

	pos := pe.Position()
	lines := strings.Split(source, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return color.RedString("syntax error: %s\n", err)
	}

	line := lines[pos.Line-1]
	col := pos.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"

	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	return fmt.Sprintf("%s: %s\n  ┌─ %s:%d:%d\n  │\n%3d│%s\n  │%s\n",
		red("error"), pe.Message(),
		pos.Filename, pos.Line, pos.Column,
		pos.Line, line,
		bold(caret))
}
