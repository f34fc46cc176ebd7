package calculator

import "math"

// operand is the single register that pass 1 folds products into.
type operand struct {
	x    float64
	col  int
	held bool
}

// take empties the register and returns its contents as a number token.
func (o *operand) take() Token {
	t := Number(o.x, o.col)
	*o = operand{}
	return t
}

// ResolveMultiplicative folds every * and / into its left operand, left to
// right. The result holds only numbers and + or - operators, in input order.
// Numbers which are not separated by an operator are left adjacent for
// ResolveAdditive to reject.
func ResolveMultiplicative(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var acc operand
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Kind == TokenNum:
			if acc.held {
				out = append(out, acc.take())
			}
			acc = operand{x: tok.Num, col: tok.Col, held: true}
		case tok.additive():
			if acc.held {
				out = append(out, acc.take())
			}
			out = append(out, tok)
		case tok.Kind == TokenOp:
			if err := checkMul(toks, i, acc.held); err != nil {
				return nil, err
			}
			i++
			x, err := mul(tok, acc.x, toks[i])
			if err != nil {
				return nil, err
			}
			acc.x = x
		default:
			panic("calculator: unknown token: " + tok.String())
		}
	}
	if acc.held {
		out = append(out, acc.take())
	}
	return out, nil
}

// checkMul verifies that the * or / at toks[i] has a left operand and a number
// following it.
func checkMul(toks []Token, i int, held bool) error {
	tok := toks[i]
	switch {
	case i == 0:
		return &Error{Kind: LeadingOperator, Col: tok.Col, Op: tok.Op}
	case i == len(toks)-1:
		return &Error{Kind: DanglingOperator, Col: tok.Col, Op: tok.Op}
	case !held, toks[i+1].Kind != TokenNum:
		return &Error{Kind: MalformedMultiplicative, Col: tok.Col, Op: tok.Op}
	}
	return nil
}

// mul applies a * or / operator.
func mul(op Token, l float64, rt Token) (float64, error) {
	r := rt.Num
	var x float64
	switch op.Op {
	case '*':
		x = l * r
	case '/':
		if r == 0 {
			return 0, &Error{Kind: DivisionByZero, Col: rt.Col, Op: op.Op}
		}
		x = l / r
	default:
		panic("calculator: not a multiplicative operator: " + op.String())
	}
	if !isFinite(x) {
		return 0, &Error{Kind: NonFiniteResult, Col: op.Col, Op: op.Op}
	}
	return x, nil
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
