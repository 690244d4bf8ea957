package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// notationLexer splits "active lpf chebyshev1 n=4 fc=1k rp=0.5" into
// identifiers, numbers (with an optional SI suffix) and "=".
var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s,;]+`},
	{Name: "Number", Pattern: `[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?[pnumkMG]?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Equals", Pattern: `=`},
})

// statement is the parse tree of one design line.
type statement struct {
	Kind          string     `parser:"@( \"passive\" | \"active\" | \"lc_passive\" | \"active_sallen_key\" )?"`
	Family        string     `parser:"@( \"lpf\" | \"hpf\" | \"bpf\" | \"bef\" | \"apf\" )"`
	Approximation string     `parser:"@( \"butterworth\" | \"chebyshev1\" | \"chebyshev2\" | \"bessel\" | \"elliptic\" )?"`
	Settings      []*setting `parser:"@@*"`
}

type setting struct {
	Key   string `parser:"@Ident Equals"`
	Value string `parser:"@Number"`
}

var parser = participle.MustBuild[statement](
	participle.Lexer(notationLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
