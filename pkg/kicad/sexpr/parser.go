package sexpr

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser parses S-expressions from a lexer
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.current.Type == TokenEOF {
			return result, nil
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
	}
}

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return fmt.Errorf("sexpr: %w", err)
	}
	p.current = tok
	return nil
}

func (p *Parser) parseExpr() (Sexp, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()
	case TokenSymbol:
		return Symbol(p.current.Value), nil
	case TokenString:
		return String(p.current.Value), nil
	case TokenRightParen:
		return nil, fmt.Errorf("sexpr: line %d: unexpected ')'", p.current.Line)
	default:
		return nil, fmt.Errorf("sexpr: line %d: unexpected %v", p.current.Line, p.current.Type)
	}
}

func (p *Parser) parseList() (Sexp, error) {
	list := &List{line: p.current.Line}
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch p.current.Type {
		case TokenRightParen:
			return list, nil
		case TokenEOF:
			return nil, fmt.Errorf("sexpr: line %d: unclosed list opened at line %d", p.current.Line, list.line)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.items = append(list.items, elem)
	}
}

// Parse parses every top-level expression in r.
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString parses S-expressions from a string (convenience function)
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the S-expressions stored in path. Open failures are
// returned unwrapped as *fs.PathError.
func ParseFile(path string) ([]Sexp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
