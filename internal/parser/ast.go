package parser

import "github.com/alecthomas/participle/v2/lexer"

// The node types below double as the participle grammar: struct tags carry
// the production rules, and the parser populates positions for diagnostics.

type Program struct {
	Statements []*Statement `@@*`
}

type Statement struct {
	Allocate  *AllocateStmt  `  @@`
	Seed      *SeedStmt      `| @@`
	Let       *LetStmt       `| @@`
	Layer     *LayerStmt     `| @@`
	Diffusion *DiffusionStmt `| @@`
	Rz        *RzStmt        `| @@`
	Gate      *GateStmt      `| @@`
	Measure   *MeasureStmt   `| @@`
	For       *ForStmt       `| @@`
}

// AllocateStmt declares the qubit register; exactly one is allowed and it
// must precede every gate.
type AllocateStmt struct {
	Pos  lexer.Position
	Name string `"ALLOCATE" @Ident`
	Size int    `@Int`
}

// SeedStmt pins the sampling seed for simulator runs.
type SeedStmt struct {
	Pos   lexer.Position
	Value int64 `"SEED" @Int`
}

// LetStmt binds a classical constant usable in later index and angle
// expressions.
type LetStmt struct {
	Pos  lexer.Position
	Name string `"LET" @Ident "="`
	Expr *Expr  `@@`
}

// LayerStmt applies a Hadamard to every qubit of the register.
type LayerStmt struct {
	Pos  lexer.Position
	Name string `"HADAMARD_LAYER" @Ident`
}

// DiffusionStmt is the Grover inversion-about-the-mean block over the whole
// register; lowering expands it into H/X layers around a phase flip.
type DiffusionStmt struct {
	Pos  lexer.Position
	Name string `"DIFFUSION" @Ident`
}

// RzStmt is the one parameterized gate: RZ <angle-expr> reg[<index-expr>].
type RzStmt struct {
	Pos    lexer.Position
	Theta  *Expr     `"RZ" @@`
	Target *QubitRef `@@`
}

// GateStmt covers the fixed-arity gates.
type GateStmt struct {
	Pos  lexer.Position
	Name string      `@("H" | "X" | "Z" | "T" | "TDG" | "CNOT" | "SWAP" | "CCX")`
	Args []*QubitRef `@@ ("," @@)*`
}

type MeasureStmt struct {
	Pos lexer.Position
	One *MeasureOne `"MEASURE" ( @@`
	All *MeasureAll `          | @@ )`
}

type MeasureOne struct {
	Target *QubitRef `@@ "AS"`
	Name   string    `@Ident`
}

type MeasureAll struct {
	Reg   string `@Ident`
	Shots *int64 `("SHOTS" @Int)?`
}

// ForStmt repeats its body once per qubit index of the register, binding
// the loop variable to 0..n-1.
type ForStmt struct {
	Pos  lexer.Position
	Var  string       `"FOR" @Ident`
	Reg  string       `"IN" @Ident "{"`
	Body []*Statement `@@* "}"`
}

// QubitRef is reg[expr]; the index expression is evaluated during
// lowering and bounds-checked by the circuit model.
type QubitRef struct {
	Pos   lexer.Position
	Reg   string `@Ident`
	Index *Expr  `"[" @@ "]"`
}

// Expression grammar: two precedence levels plus unary minus, enough for
// index arithmetic and angles like -pi/4.

type Expr struct {
	Left *Term     `@@`
	Ops  []*ExprOp `@@*`
}

type ExprOp struct {
	Op    string `@("+" | "-")`
	Right *Term  `@@`
}

type Term struct {
	Left *Factor   `@@`
	Ops  []*TermOp `@@*`
}

type TermOp struct {
	Op    string  `@("*" | "/" | "%")`
	Right *Factor `@@`
}

type Factor struct {
	Pos   lexer.Position
	Neg   bool     `[ @"-" ]`
	Float *float64 `( @Float`
	Int   *int64   `| @Int`
	Name  *string  `| @Ident`
	Paren *Expr    `| "(" @@ ")" )`
}
