package calculator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a single lexical unit of an expression: either a number or one of
// the four operators.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Num is the value of a number token.
	Num float64
	// Op is the operator rune of an operator token.
	Op rune
	// Col is the 1-based rune position of the start of the token in the
	// untrimmed input.
	Col int
}

// Number creates a number token.
func Number(x float64, col int) Token {
	return Token{Kind: TokenNum, Num: x, Col: col}
}

// Operator creates an operator token.
func Operator(op rune, col int) Token {
	return Token{Kind: TokenOp, Op: op, Col: col}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNum:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenOp:
		return string(t.Op)
	default:
		return "$"
	}
}

// additive reports whether t is a + or - operator.
func (t Token) additive() bool {
	return t.Kind == TokenOp && (t.Op == '+' || t.Op == '-')
}

// TokenKind distinguishes numbers from operators.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a decimal number.
	TokenNum
	// TokenOp is one of the operators in Operators.
	TokenOp
)

func (k TokenKind) String() string {
	switch k {
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/"

// Tokenize splits an expression into numbers and operators. Leading and
// trailing whitespace is ignored; whitespace elsewhere separates tokens.
// Digits and '.' are the only runes that may form numbers, so signs,
// exponents, and names like inf are all rejected.
func Tokenize(src string) ([]Token, error) {
	trimmed := strings.TrimLeftFunc(src, unicode.IsSpace)
	// Columns count runes in the original input, so start after the
	// leading whitespace we're dropping.
	col := utf8.RuneCountInString(src[:len(src)-len(trimmed)])
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	if trimmed == "" {
		return nil, &Error{Kind: EmptyExpression, Col: col + 1}
	}

	var (
		toks  []Token
		buf   strings.Builder
		start int
	)
	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		defer buf.Reset()
		x, err := parseNum(buf.String(), start)
		if err != nil {
			return err
		}
		toks = append(toks, Number(x, start))
		return nil
	}
	for _, r := range trimmed {
		col++
		switch {
		case '0' <= r && r <= '9', r == '.':
			if buf.Len() == 0 {
				start = col
			}
			buf.WriteRune(r)
		case strings.ContainsRune(Operators, r):
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, Operator(r, col))
		case unicode.IsSpace(r):
			// Whitespace ends a number but produces no token, so "3 4" is
			// two numbers for the evaluator to reject.
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			return nil, &Error{Kind: InvalidCharacter, Col: col, Char: r}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &Error{Kind: NoTokensProduced, Col: col}
	}
	return toks, nil
}

// parseNum parses a literal made only of digits and dots.
func parseNum(s string, col int) (float64, error) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !isFinite(x) {
			return 0, &Error{Kind: NonFiniteResult, Col: col, Text: s}
		}
		if !errors.Is(err, strconv.ErrRange) {
			return 0, &Error{Kind: InvalidNumberFormat, Col: col, Text: s}
		}
		// Underflow to zero or a denormal is an ordinary value.
	}
	return x, nil
}
