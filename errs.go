package calculator

import (
	"errors"
	"strconv"
)

// ErrorKind classifies an evaluation failure. Programs should branch on the
// kind, never on error text.
type ErrorKind int8

const (
	kindNone ErrorKind = iota
	// EmptyExpression is an input that is blank after trimming.
	EmptyExpression
	// InvalidCharacter is a rune that is not a digit, '.', an operator, or
	// whitespace.
	InvalidCharacter
	// InvalidNumberFormat is a malformed decimal literal, e.g. "1.2.3" or ".".
	InvalidNumberFormat
	// NoTokensProduced means tokenizing non-empty input yielded no tokens.
	NoTokensProduced
	// MalformedMultiplicative is a * or / without a number on each side.
	MalformedMultiplicative
	// DivisionByZero is a / whose right operand is zero.
	DivisionByZero
	// LeadingOperator is an expression that begins with an operator.
	LeadingOperator
	// DanglingOperator is an expression that ends with an operator.
	DanglingOperator
	// OperatorFollowedByOperator is two operators with no number between.
	OperatorFollowedByOperator
	// MissingOperator is two numbers with no operator between.
	MissingOperator
	// NonFiniteResult is a literal, intermediate value, or result that is
	// infinite or NaN.
	NonFiniteResult
)

var kindNames = [...]string{
	kindNone:                   "None",
	EmptyExpression:            "EmptyExpression",
	InvalidCharacter:           "InvalidCharacter",
	InvalidNumberFormat:        "InvalidNumberFormat",
	NoTokensProduced:           "NoTokensProduced",
	MalformedMultiplicative:    "MalformedMultiplicative",
	DivisionByZero:             "DivisionByZero",
	LeadingOperator:            "LeadingOperator",
	DanglingOperator:           "DanglingOperator",
	OperatorFollowedByOperator: "OperatorFollowedByOperator",
	MissingOperator:            "MissingOperator",
	NonFiniteResult:            "NonFiniteResult",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Error is an evaluation failure. Every error returned by this package for
// invalid input is an *Error. It implements InputError.
type Error struct {
	// Kind classifies the error.
	Kind ErrorKind
	// Col is the 1-based rune position in the input of the token that caused
	// the error.
	Col int
	// Char is the offending rune for InvalidCharacter.
	Char rune
	// Text is the offending literal for InvalidNumberFormat, or a literal
	// that overflows for NonFiniteResult.
	Text string
	// Op is the operator involved, if any.
	Op rune
}

func (err *Error) Error() string {
	return errpos(err.Col, err.Message())
}

// Message returns the description of the error without position
// information.
func (err *Error) Message() string {
	switch err.Kind {
	case EmptyExpression:
		return "Expression cannot be empty"
	case InvalidCharacter:
		return "Invalid character in expression " + strconv.QuoteRune(err.Char)
	case InvalidNumberFormat:
		return "Invalid number format " + strconv.Quote(err.Text)
	case NoTokensProduced:
		return "The expression produced no tokens"
	case MalformedMultiplicative:
		return "Invalid expression format near " + string(err.Op)
	case DivisionByZero:
		return "Division by zero"
	case LeadingOperator:
		return "Expression can't start with operator"
	case DanglingOperator:
		return "Operator must be followed by a number"
	case OperatorFollowedByOperator:
		return "Operator " + string(err.Op) + " must be followed by a number"
	case MissingOperator:
		return "Missing operator between numbers"
	case NonFiniteResult:
		if err.Text != "" {
			return "Number " + err.Text + " is not finite"
		}
		return "Result is not a finite number"
	default:
		return "unknown error " + err.Kind.String()
	}
}

// Pos returns the position of the token that caused the error.
func (err *Error) Pos() int {
	return err.Col
}

// Is reports whether target is an *Error of the same kind. This allows
// errors.Is(err, &calculator.Error{Kind: calculator.DivisionByZero}).
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == err.Kind
}

// KindOf returns the kind of the first *Error in err's chain. The second
// result is false if there is no such error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return kindNone, false
	}
	return e.Kind, true
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)
