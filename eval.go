package calculator

// Eval evaluates an expression. The result is always finite. If the input is
// not a valid expression, the error is an *Error describing the first
// problem found.
func Eval(src string) (float64, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return 0, err
	}
	seq, err := ResolveMultiplicative(toks)
	if err != nil {
		return 0, err
	}
	return ResolveAdditive(seq)
}

// Fold tokenizes src and resolves multiplication and division, returning the
// sequence that Eval would sum. It is useful for showing how an expression
// was grouped.
func Fold(src string) ([]Token, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ResolveMultiplicative(toks)
}
