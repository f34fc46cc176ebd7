package calculator

// ResolveAdditive folds a sequence of numbers separated by + and - into a
// single value, left to right. The sequence must be the output of
// ResolveMultiplicative; any * or / in it panics.
func ResolveAdditive(seq []Token) (float64, error) {
	if len(seq) == 0 {
		return 0, &Error{Kind: EmptyExpression, Col: 1}
	}
	first := seq[0]
	if first.Kind != TokenNum {
		return 0, &Error{Kind: LeadingOperator, Col: first.Col, Op: first.Op}
	}
	total := first.Num
	op := '+'
	prev := first
	for _, tok := range seq[1:] {
		switch {
		case tok.additive():
			if prev.Kind == TokenOp {
				return 0, &Error{Kind: OperatorFollowedByOperator, Col: tok.Col, Op: prev.Op}
			}
			op = tok.Op
		case tok.Kind == TokenNum:
			if prev.Kind == TokenNum {
				return 0, &Error{Kind: MissingOperator, Col: tok.Col}
			}
			if op == '+' {
				total += tok.Num
			} else {
				total -= tok.Num
			}
			if !isFinite(total) {
				return 0, &Error{Kind: NonFiniteResult, Col: tok.Col, Op: op}
			}
		default:
			panic("calculator: unexpected token in additive sequence: " + tok.String())
		}
		prev = tok
	}
	if prev.Kind == TokenOp {
		return 0, &Error{Kind: DanglingOperator, Col: prev.Col, Op: prev.Op}
	}
	return total, nil
}
