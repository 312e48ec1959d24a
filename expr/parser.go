package expr

import (
	"fmt"
)

// Parser is a Pratt parser for guard expressions.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a guard string into a simplified formula.
func Parse(input string) (*Node, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	node, err := p.parseExpr(precNone)
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokEOF {
		return nil, fmt.Errorf("unexpected token %q at position %d", p.peek().Val, p.peek().Pos)
	}
	return node, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level constants.
func MustParse(input string) *Node {
	n, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("expr: MustParse(%q): %v", input, err))
	}
	return n
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	t := p.advance()
	if t.Type != tt {
		return t, fmt.Errorf("expected %s, got %q at position %d", tt, t.Val, t.Pos)
	}
	return t, nil
}

// Precedence levels.
const (
	precNone = 0
	precOr   = 1
	precAnd  = 2
)

func (p *Parser) parseExpr(minPrec int) (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		prec, ok := infixPrec(tok.Type)
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		if tok.Type == TokAnd {
			left = And(left, right)
		} else {
			left = Or(left, right)
		}
	}

	return left, nil
}

func (p *Parser) parseUnary() (*Node, error) {
	if p.peek().Type == TokNot {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (*Node, error) {
	tok := p.advance()

	switch tok.Type {
	case TokTrue:
		return True(), nil

	case TokFalse:
		return False(), nil

	case TokIdent:
		return Var(tok.Val), nil

	case TokLParen:
		n, err := p.parseExpr(precNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, fmt.Errorf("expected closing ')': %w", err)
		}
		return n, nil

	default:
		if tok.Type == TokEOF {
			return nil, fmt.Errorf("unexpected end of input at position %d", tok.Pos)
		}
		return nil, fmt.Errorf("unexpected token %q at position %d", tok.Val, tok.Pos)
	}
}

func infixPrec(tt TokenType) (int, bool) {
	switch tt {
	case TokOr:
		return precOr, true
	case TokAnd:
		return precAnd, true
	default:
		return 0, false
	}
}
