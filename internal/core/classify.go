package core

import (
	"fmt"
	"iter"
	"math/big"
)

// Kind identifies which classification rule matched a value.
//
//go:generate stringer -type=Kind -trimprefix=Kind
type Kind int

const (
	KindNumeric Kind = iota
	KindFizzBuzz
	KindBuzz
	KindFizz
	KindBuzzFizz
)

// Label is the output token assigned to a Fibonacci value.
type Label struct {
	Kind Kind
	// Text is the token itself: the kind's name, or the decimal value for KindNumeric.
	Text string
}

func (l Label) String() string {
	return l.Text
}

// Result is a single classified index.
type Result struct {
	Index int
	Value *big.Int
	Label Label
}

// Classify computes F(n) and labels it.
// The only error is ErrInvalidArgument for a negative n.
func Classify(n int) (Result, error) {
	value, err := Fibonacci(n)
	if err != nil {
		return Result{}, fmt.Errorf("failed to classify index %d: %w", n, err)
	}

	return Result{Index: n, Value: value, Label: LabelFor(value)}, nil
}

// ClassifyRange returns a lazy sequence of the classifications of indices start through start+count-1.
// Nothing is computed until the sequence is ranged over, and ranging over it again recomputes every result.
// A negative start or count yields a single error wrapping ErrInvalidArgument.
func ClassifyRange(start, count int) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		if start < 0 || count < 0 {
			yield(Result{}, fmt.Errorf("%w: range start %d, count %d", ErrInvalidArgument, start, count))

			return
		}

		for i := range count {
			if !yield(Classify(start + i)) {
				return
			}
		}
	}
}

// LabelFor applies the classification rules to v. The first matching rule wins:
// divisible by 15, divisible by 3, divisible by 5, prime, and finally the value itself.
// Zero is divisible by everything, so it is FizzBuzz.
func LabelFor(v *big.Int) Label {
	switch {
	case divisible(v, fifteen):
		return Label{Kind: KindFizzBuzz, Text: KindFizzBuzz.String()}
	case divisible(v, three):
		return Label{Kind: KindBuzz, Text: KindBuzz.String()}
	case divisible(v, five):
		return Label{Kind: KindFizz, Text: KindFizz.String()}
	case IsPrime(v):
		return Label{Kind: KindBuzzFizz, Text: KindBuzzFizz.String()}
	default:
		return Label{Kind: KindNumeric, Text: v.String()}
	}
}

// read-only divisors, safe to share across goroutines.
//
//nolint:gochecknoglobals
var (
	three   = big.NewInt(3)
	five    = big.NewInt(5)
	fifteen = big.NewInt(15)
)

func divisible(v, d *big.Int) bool {
	var rem big.Int

	return rem.Rem(v, d).Sign() == 0
}
