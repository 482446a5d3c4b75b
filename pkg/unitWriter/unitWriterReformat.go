package unitwriter

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokOperator
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || r == '°' || r == '_' || r == '%' || r == '‰'
}

func isNumberRune(r rune) bool {
	return unicode.IsDigit(r) || r == '.'
}

// tokenize splits plain text unit expressions like "(2·ft)·kN/m^(-2)".
// A minus sign is part of a number only right after '^' or '('.
func tokenize(text string) []token {
	runes := []rune(text)
	tokens := make([]token, 0, len(runes))
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '·' || r == '/' || r == '*' || r == '×':
			tokens = append(tokens, token{tokOperator, string(r)})
			i++
		case r == '^':
			tokens = append(tokens, token{tokCaret, "^"})
			i++
		case r == '(':
			tokens = append(tokens, token{tokLParen, "("})
			i++
		case r == ')':
			tokens = append(tokens, token{tokRParen, ")"})
			i++
		case isNumberRune(r) || (r == '-' && i+1 < len(runes) && isNumberRune(runes[i+1]) && signAllowed(tokens)):
			j := i + 1
			for j < len(runes) {
				c := runes[j]
				if isNumberRune(c) {
					j++
				} else if (c == 'e' || c == 'E') && j+1 < len(runes) && (unicode.IsDigit(runes[j+1]) || runes[j+1] == '-' || runes[j+1] == '+') {
					j += 2
				} else {
					break
				}
			}
			tokens = append(tokens, token{tokNumber, string(runes[i:j])})
			i = j
		case isIdentRune(r):
			j := i + 1
			for j < len(runes) && (isIdentRune(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			tokens = append(tokens, token{tokIdent, string(runes[i:j])})
			i = j
		default:
			tokens = append(tokens, token{tokIdent, string(r)})
			i++
		}
	}
	return tokens
}

func signAllowed(tokens []token) bool {
	if len(tokens) == 0 {
		return true
	}
	k := tokens[len(tokens)-1].kind
	return k == tokCaret || k == tokLParen
}

type reformatter struct {
	w      primitives
	tokens []token
	pos    int
}

// reformat re-renders plain unit text through the primitives of w
func reformat(w primitives, text string) string {
	r := &reformatter{w: w, tokens: tokenize(text)}
	var sb strings.Builder
	sb.WriteString(r.sequence())
	// unbalanced closing brackets
	for r.pos < len(r.tokens) {
		r.pos++
		sb.WriteString(w.FormatUnits(")"))
		sb.WriteString(r.sequence())
	}
	return sb.String()
}

func (r *reformatter) peek(kind tokenKind) bool {
	return r.pos < len(r.tokens) && r.tokens[r.pos].kind == kind
}

func (r *reformatter) sequence() string {
	var sb strings.Builder
	for r.pos < len(r.tokens) {
		t := r.tokens[r.pos]
		switch t.kind {
		case tokRParen:
			return sb.String()
		case tokOperator:
			op := []rune(t.text)[0]
			if op == '*' || op == '×' {
				op = '·'
			}
			sb.WriteString(r.w.FormatOperator(op))
			r.pos++
		default:
			sb.WriteString(r.term())
		}
	}
	return sb.String()
}

func (r *reformatter) term() string {
	base := r.primary()
	if r.peek(tokCaret) {
		r.pos++
		return r.w.FormatPower(base, r.exponent())
	}
	return base
}

func (r *reformatter) primary() string {
	t := r.tokens[r.pos]
	r.pos++
	switch t.kind {
	case tokNumber:
		return r.number(t.text)
	case tokLParen:
		inner := r.sequence()
		if r.peek(tokRParen) {
			r.pos++
		}
		return r.w.AddBrackets(inner)
	default:
		return r.w.FormatUnits(t.text)
	}
}

// exponent drops the brackets plain text puts around negative exponents
func (r *reformatter) exponent() string {
	if r.pos+2 < len(r.tokens) &&
		r.tokens[r.pos].kind == tokLParen &&
		r.tokens[r.pos+1].kind == tokNumber &&
		r.tokens[r.pos+2].kind == tokRParen {
		s := r.number(r.tokens[r.pos+1].text)
		r.pos += 3
		return s
	}
	if r.pos >= len(r.tokens) {
		return ""
	}
	return r.primary()
}

func (r *reformatter) number(text string) string {
	d, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return r.w.FormatUnits(text)
	}
	return r.w.FormatReal(d, 6)
}
