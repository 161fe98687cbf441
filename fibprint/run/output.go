package run

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/toejough/fibfizz"
)

var errSelfCheckFailed = errors.New("self-check failed")

// palette colors the self-check status words.
type palette struct {
	good, bad *color.Color
}

// checkScenario is an expected index -> value -> label triple.
type checkScenario struct {
	index int
	value int64
	label string
}

// selfCheckScenarios are the first eleven indices, which cover every label kind.
//
//nolint:gochecknoglobals
var selfCheckScenarios = []checkScenario{
	{0, 0, "FizzBuzz"}, // zero is divisible by anything, 15 is checked first
	{1, 1, "1"},
	{2, 1, "1"},
	{3, 2, "BuzzFizz"},
	{4, 3, "Buzz"},
	{5, 5, "Fizz"},
	{6, 8, "8"},
	{7, 13, "BuzzFizz"},
	{8, 21, "Buzz"},
	{9, 34, "34"},
	{10, 55, "Fizz"},
}

func newPalette(noColor bool) palette {
	p := palette{
		good: color.New(color.FgGreen),
		bad:  color.New(color.FgRed, color.Bold),
	}

	if noColor {
		p.good.DisableColor()
		p.bad.DisableColor()
	}

	return p
}

// linearFibonacci is the O(n) iterative recurrence the self-check compares fast doubling against.
func linearFibonacci(n int) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)

	for range n {
		a.Add(a, b)
		a, b = b, a
	}

	return a
}

// printLabels writes the labels for indices start..start+count-1.
// Terse output is comma-terminated labels on one line; verbose output is one "F(n) = value -> label" line each.
func printLabels(w io.Writer, start, count int, verbose bool) error {
	for result, err := range fibfizz.ClassifyRange(start, count) {
		if err != nil {
			return fmt.Errorf("failed to print labels: %w", err)
		}

		if verbose {
			fmt.Fprintf(w, "F(%d) = %s -> %s\n", result.Index, result.Value, result.Label)
		} else {
			fmt.Fprintf(w, "%s,", result.Label)
		}
	}

	if !verbose {
		fmt.Fprintln(w)
	}

	return nil
}

// printPrimes writes every prime in 0..limit, comma-terminated, followed by "...".
func printPrimes(w io.Writer, limit int) error {
	for i := 0; i <= limit; i++ {
		if fibfizz.IsPrime(big.NewInt(int64(i))) {
			fmt.Fprintf(w, "%d,", i)
		}
	}

	_, err := fmt.Fprintln(w, "...")
	if err != nil {
		return fmt.Errorf("failed to write primes: %w", err)
	}

	return nil
}

// selfCheck compares fast doubling with the linear recurrence for F(0)..F(limit),
// then checks every scenario's value and label.
func selfCheck(w io.Writer, limit int, colors palette) error {
	failures := 0

	for n := 0; n <= limit; n++ {
		fast, err := fibfizz.Fibonacci(n)
		if err != nil {
			return fmt.Errorf("self-check could not compute F(%d): %w", n, err)
		}

		if fast.Cmp(linearFibonacci(n)) != 0 {
			fmt.Fprintf(w, "%s fast and linear Fibonacci disagree on F(%d)\n", colors.bad.Sprint("error:"), n)

			failures++
		}
	}

	if failures == 0 {
		fmt.Fprintf(w, "no errors between fast and linear Fibonacci computation through F(%d).\n", limit)
	}

	for _, sc := range selfCheckScenarios {
		result, err := fibfizz.Classify(sc.index)
		if err != nil {
			return fmt.Errorf("self-check could not classify %d: %w", sc.index, err)
		}

		status := colors.good.Sprint("good:")

		if result.Value.Cmp(big.NewInt(sc.value)) != 0 || result.Label.String() != sc.label {
			status = colors.bad.Sprint("bad: ")

			failures++
		}

		fmt.Fprintf(w, "%s F(%d) = %s -> %s\n", status, sc.index, result.Value, result.Label)
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d failure(s)", errSelfCheckFailed, failures)
	}

	fmt.Fprintln(w, colors.good.Sprint("all checks passed"))

	return nil
}
