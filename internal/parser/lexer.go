package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// QuillLexer tokenizes the line-oriented circuit language. Statements are
// keyword-led, so newlines carry no meaning and are elided with the rest
// of the whitespace.
var QuillLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `(//|#)[^\n]*`, nil},

		// Keywords and identifiers (directives are uppercase by convention)
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Float must win over Int
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Int", `[0-9]+`, nil},

		{"Operator", `[-+*/%]`, nil},
		{"Punct", `[\[\](){},=]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
