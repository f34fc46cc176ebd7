// Package calculator evaluates four-function arithmetic.
//
// An expression is a sequence of decimal numbers separated by the binary
// operators + - * and /, with any amount of whitespace around them. "2 + 3 * 4"
// is 14. Multiplication and division bind tighter than addition and
// subtraction, and operators of equal precedence group to the left, so
// "10 - 2 - 3" is 5. There are no brackets, signs, names, or exponents; "-1"
// is an error rather than negative one.
//
// Evaluation happens in two passes over a flat token list. The first folds
// each product or quotient into a single number, and the second sums what
// remains. Every result is a finite float64. Anything else, including
// division by zero and overflow, is an *Error whose Kind says what went
// wrong.
//
package calculator
