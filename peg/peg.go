package peg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/pegflow/ast"
	"github.com/dekarrin/pegflow/grammar"
	"github.com/dekarrin/pegflow/packrat"
)

// Config controls one Parse call: which rule to start from, whether a
// non-match raises or is reported as no result, and whether the trimmer
// runs at all. It is TOML-loadable so a grammar's driving config can sit
// alongside the grammar source on disk.
type Config struct {
	// Start names the rule to parse from. Empty means "start", the
	// conventional top rule.
	Start string `toml:"start"`
	// Strict makes a non-match a returned error rather than a (nil, nil)
	// result.
	Strict bool `toml:"strict"`
	// NoTrim skips the trimmer, returning the raw untrimmed tree. The zero
	// value trims, matching the documented default of trim=true — the flag
	// is phrased as a negative so the useful Config{} zero value is the
	// common case.
	NoTrim bool `toml:"no_trim"`
}

// Parser adapts a grammar.Grammar to Config-driven parsing, lazily building
// and caching one packrat.Parser per distinct start rule a caller asks for
// (packrat.Parser fixes its start rule at construction; Parser's callers
// pick theirs per call).
type Parser struct {
	g       *grammar.Grammar
	byStart map[string]*packrat.Parser
	lastErr string
}

// New builds a Parser over g. g is not copied; mutate a fresh grammar.Grammar
// before passing it in if isolation from later changes matters.
func New(g *grammar.Grammar) (*Parser, error) {
	if g == nil {
		return nil, fmt.Errorf("peg: grammar is nil")
	}
	return &Parser{g: g, byStart: make(map[string]*packrat.Parser)}, nil
}

// Default returns a Parser over the hard-coded default grammar: the PEG for
// PEG itself. Construction cannot fail — defaultRules is validated once,
// here, and a failure would be a bug in this package rather than anything a
// caller did.
func Default() *Parser {
	g, err := grammar.FromRuleMap(defaultRules())
	if err != nil {
		panic(fmt.Sprintf("peg: default grammar is invalid: %v", err))
	}
	p, _ := New(g)
	return p
}

func (p *Parser) parserFor(start string) (*packrat.Parser, error) {
	if pp, ok := p.byStart[start]; ok {
		return pp, nil
	}
	pp, err := packrat.New(p.g, start)
	if err != nil {
		return nil, err
	}
	p.byStart[start] = pp
	return pp, nil
}

// Parse runs text against p's grammar per cfg. On a non-match: if
// cfg.Strict, the *packrat.ParseFailure is returned as an error; otherwise
// Parse returns (nil, nil), a deliberate tri-state result mirroring the
// abstract parse/none/raise contract in Go's idiom of a nil value standing
// in for "no result".
func (p *Parser) Parse(text string, cfg Config) (*ast.Node, error) {
	start := cfg.Start
	if start == "" {
		start = "start"
	}

	pp, err := p.parserFor(start)
	if err != nil {
		return nil, err
	}

	if cfg.NoTrim {
		n, err := pp.ParseRaw(text)
		if err != nil {
			p.lastErr = pp.LastError().FullMessage()
			if cfg.Strict {
				return nil, err
			}
			return nil, nil
		}
		p.lastErr = ""
		return n, nil
	}

	child, err := pp.Parse(text)
	if err != nil {
		p.lastErr = pp.LastError().FullMessage()
		if cfg.Strict {
			return nil, err
		}
		return nil, nil
	}

	p.lastErr = ""
	if child.IsLeaf() {
		// A pass-through start rule with no retained Argument trims to a
		// bare leaf; wrap it under the rule's own name so Parse can still
		// return a *ast.Node as its contract promises.
		return ast.Leaf(start, child.Leaf), nil
	}
	return child.Node, nil
}

// LastError returns the framed message of the most recent non-match, or ""
// if the most recent Parse matched.
func (p *Parser) LastError() string {
	return p.lastErr
}

// LoadConfig reads a Config from TOML-encoded data, so a driving program can
// check a parser profile (start rule, strictness, trim) into source control
// alongside the grammar it pairs with rather than wiring it up in Go.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	err := toml.Unmarshal(data, &cfg)
	return cfg, err
}

// LoadGrammar parses src as grammar-definition text using the default
// bootstrap grammar and builds a grammar.Grammar from the result. This is
// the text-loading path grammar.FromRuleMap/FromAST don't cover themselves:
// doing so directly in the grammar package would make it depend on its own
// parser, a cycle this package exists to sit above.
func LoadGrammar(src string) (*grammar.Grammar, error) {
	root, err := Default().Parse(src, Config{Start: "start", Strict: true})
	if err != nil {
		return nil, err
	}
	return grammar.FromAST(decodeLiterals(root))
}

// decodeLiterals walks an AST produced by the default grammar, applying
// escape decoding to the raw literal text String and CharClass nodes carry
// straight from the source (the trimmer's job stops at collecting spans of
// source text; decoding what they mean is this package's concern, not
// packrat's or grammar's).
func decodeLiterals(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	children := make([]ast.Child, len(n.Children))
	for i, c := range n.Children {
		if c.IsLeaf() {
			if n.Kind == "String" || n.Kind == "CharClass" || n.Kind == "Range" {
				children[i] = ast.LeafChild(decodeLiteral(c.Leaf))
			} else {
				children[i] = c
			}
			continue
		}
		children[i] = ast.NodeChild(decodeLiterals(c.Node))
	}
	return ast.NewSpanned(n.Kind, n.Span, children...)
}

// decodeLiteral un-escapes one literal run of grammar source text: \n \t \r
// \\ \' \" \[ \] pass through as the character they name, \NNN (one to
// three octal digits) as the byte it encodes, and any other backslash
// sequence is left untouched, backslash included.
func decodeLiteral(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			out.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch next {
		case 'n':
			out.WriteByte('\n')
			i++
		case 't':
			out.WriteByte('\t')
			i++
		case 'r':
			out.WriteByte('\r')
			i++
		case '\\', '\'', '"', '[', ']':
			out.WriteByte(next)
			i++
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, err := strconv.ParseUint(s[i+1:j], 8, 8)
			if err != nil {
				out.WriteByte(s[i])
				continue
			}
			out.WriteByte(byte(v))
			i = j - 1
		default:
			out.WriteByte(s[i])
			out.WriteByte(next)
			i++
		}
	}
	return out.String()
}
