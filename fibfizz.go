// Package fibfizz computes Fibonacci numbers and labels each one by divisibility and primality.
//
// F(n) is computed by fast doubling in O(log n) big-integer operations. Each value gets exactly one
// label, by the first rule that matches: divisible by 15 is FizzBuzz, divisible by 3 is Buzz,
// divisible by 5 is Fizz, prime is BuzzFizz, and anything else is the value's decimal form.
//
// This is the public API entry point. Implementation lives in internal/core.
package fibfizz

import (
	"iter"
	"math/big"

	"github.com/toejough/fibfizz/internal/core"
)

// ErrInvalidArgument is returned for negative indices and negative range counts.
var ErrInvalidArgument = core.ErrInvalidArgument

// Kind identifies which classification rule matched a value.
type Kind = core.Kind

// Classification kinds, in rule priority order after KindNumeric.
const (
	KindNumeric  = core.KindNumeric
	KindFizzBuzz = core.KindFizzBuzz
	KindBuzz     = core.KindBuzz
	KindFizz     = core.KindFizz
	KindBuzzFizz = core.KindBuzzFizz
)

// Label is the output token assigned to a Fibonacci value.
type Label = core.Label

// Result is a single classified index: the index, F(index), and its label.
type Result = core.Result

// Classify computes F(n) and labels it.
func Classify(n int) (Result, error) {
	return core.Classify(n)
}

// ClassifyRange returns a lazy, restartable sequence classifying indices start through start+count-1.
func ClassifyRange(start, count int) iter.Seq2[Result, error] {
	return core.ClassifyRange(start, count)
}

// Fibonacci returns F(n) for n >= 0.
func Fibonacci(n int) (*big.Int, error) {
	return core.Fibonacci(n)
}

// IsPrime reports whether v is prime.
func IsPrime(v *big.Int) bool {
	return core.IsPrime(v)
}

// LabelFor applies the classification rules to an arbitrary value.
func LabelFor(v *big.Int) Label {
	return core.LabelFor(v)
}
