package expr

import (
	"fmt"
	"unicode"
)

// TokenType classifies lexer tokens.
type TokenType int

const (
	TokEOF TokenType = iota
	TokIdent
	TokTrue
	TokFalse
	TokNot
	TokAnd
	TokOr
	TokLParen
	TokRParen
)

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "end of input"
	case TokIdent:
		return "identifier"
	case TokTrue:
		return "true"
	case TokFalse:
		return "false"
	case TokNot:
		return "'!'"
	case TokAnd:
		return "'&'"
	case TokOr:
		return "'|'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a single lexer token.
type Token struct {
	Type TokenType
	Val  string
	Pos  int
}

var keywords = map[string]TokenType{
	"true":  TokTrue,
	"TRUE":  TokTrue,
	"false": TokFalse,
	"FALSE": TokFalse,
}

// Lex tokenizes a guard string. Both the single and doubled forms of the
// connectives are accepted ("&" and "&&", "|" and "||"), as are the numeric
// constants 0 and 1 used by never claims.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := rune(input[i])

		if unicode.IsSpace(ch) {
			i++
			continue
		}

		// Numeric constants. Only 0 and 1 are meaningful in a guard.
		if unicode.IsDigit(ch) {
			start := i
			for i < len(input) && unicode.IsDigit(rune(input[i])) {
				i++
			}
			switch input[start:i] {
			case "1":
				tokens = append(tokens, Token{TokTrue, "1", start})
			case "0":
				tokens = append(tokens, Token{TokFalse, "0", start})
			default:
				return nil, fmt.Errorf("unexpected number %q at position %d", input[start:i], start)
			}
			continue
		}

		// Identifiers and keywords.
		if unicode.IsLetter(ch) || ch == '_' {
			start := i
			for i < len(input) && isIdentChar(input[i]) {
				i++
			}
			word := input[start:i]
			if tt, ok := keywords[word]; ok {
				tokens = append(tokens, Token{tt, word, start})
			} else {
				tokens = append(tokens, Token{TokIdent, word, start})
			}
			continue
		}

		// Doubled connectives.
		if i+1 < len(input) {
			switch input[i : i+2] {
			case "&&":
				tokens = append(tokens, Token{TokAnd, "&&", i})
				i += 2
				continue
			case "||":
				tokens = append(tokens, Token{TokOr, "||", i})
				i += 2
				continue
			}
		}

		switch ch {
		case '!', '~':
			tokens = append(tokens, Token{TokNot, string(ch), i})
		case '&':
			tokens = append(tokens, Token{TokAnd, "&", i})
		case '|':
			tokens = append(tokens, Token{TokOr, "|", i})
		case '(':
			tokens = append(tokens, Token{TokLParen, "(", i})
		case ')':
			tokens = append(tokens, Token{TokRParen, ")", i})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
		i++
	}
	tokens = append(tokens, Token{TokEOF, "", len(input)})
	return tokens, nil
}

func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '.'
}
