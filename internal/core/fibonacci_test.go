package core_test

import (
	"errors"
	"math/big"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/fibfizz/internal/core"
	"pgregory.net/rapid"
)

// TestFibonacci_KnownValues checks F(n) against published values, including ones well past uint64.
func TestFibonacci_KnownValues(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{20, "6765"},
		{80, "23416728348467685"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{100, "354224848179261915075"},
		{200, "280571172992510140037611932413038677189525"},
	} {
		got, err := core.Fibonacci(tc.n)
		if err != nil {
			t.Fatalf("Fibonacci(%d) returned an unexpected error: %v", tc.n, err)
		}

		if got.String() != tc.want {
			t.Errorf("Fibonacci(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

// TestFibonacci_MatchesNaiveRecursion compares fast doubling against the recursive definition.
func TestFibonacci_MatchesNaiveRecursion(t *testing.T) {
	t.Parallel()

	for n := range 31 {
		got, err := core.Fibonacci(n)
		if err != nil {
			t.Fatalf("Fibonacci(%d) returned an unexpected error: %v", n, err)
		}

		if want := naiveFibonacci(n); got.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("Fibonacci(%d) = %s, naive recursion gives %d", n, got, want)
		}
	}
}

// TestFibonacci_NegativeIndex_Property proves every negative index is rejected.
func TestFibonacci_NegativeIndex_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1_000_000, -1).Draw(rt, "n")

		value, err := core.Fibonacci(n)
		if !errors.Is(err, core.ErrInvalidArgument) {
			rt.Fatalf("Fibonacci(%d) error = %v, want ErrInvalidArgument", n, err)
		}

		if value != nil {
			rt.Fatalf("Fibonacci(%d) = %s, want nil on error", n, value)
		}
	})
}

// TestFibonacci_MinusOne pins the boundary case.
func TestFibonacci_MinusOne(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := core.Fibonacci(-1)

	g.Expect(err).To(MatchError(core.ErrInvalidArgument))
}

// TestFibonacci_Recurrence_Property proves F(n) = F(n-1) + F(n-2) for random n.
func TestFibonacci_Recurrence_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 5000).Draw(rt, "n")

		fn := mustFibonacci(rt, n)
		sum := new(big.Int).Add(mustFibonacci(rt, n-1), mustFibonacci(rt, n-2))

		if fn.Cmp(sum) != 0 {
			rt.Fatalf("F(%d) = %s, F(n-1)+F(n-2) = %s", n, fn, sum)
		}
	})
}

// TestFibonacci_NonDecreasing_Property proves the sequence never shrinks from n = 2 on.
func TestFibonacci_NonDecreasing_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 10_000).Draw(rt, "n")

		if mustFibonacci(rt, n+1).Cmp(mustFibonacci(rt, n)) < 0 {
			rt.Fatalf("F(%d) < F(%d)", n+1, n)
		}
	})
}

// TestFibonacci_CassiniIdentity_Property proves F(n-1)*F(n+1) - F(n)^2 = (-1)^n.
func TestFibonacci_CassiniIdentity_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20_000).Draw(rt, "n")

		fn := mustFibonacci(rt, n)
		left := new(big.Int).Mul(mustFibonacci(rt, n-1), mustFibonacci(rt, n+1))
		left.Sub(left, new(big.Int).Mul(fn, fn))

		want := big.NewInt(1)
		if n%2 != 0 {
			want.Neg(want)
		}

		if left.Cmp(want) != 0 {
			rt.Fatalf("Cassini's identity fails at n=%d: got %s, want %s", n, left, want)
		}
	})
}

// TestFibonacci_ReturnsFreshValues verifies callers may mutate the result without affecting later calls.
func TestFibonacci_ReturnsFreshValues(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first, err := core.Fibonacci(10)
	g.Expect(err).NotTo(HaveOccurred())

	first.SetInt64(-7)

	second, err := core.Fibonacci(10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(second.Int64()).To(Equal(int64(55)))
}

// FuzzFibonacci tests Fibonacci with coverage-guided fuzzing.
func FuzzFibonacci(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(func(t *rapid.T) {
		n := rapid.IntRange(-100, 3000).Draw(t, "n")

		value, err := core.Fibonacci(n)

		if n < 0 {
			if !errors.Is(err, core.ErrInvalidArgument) {
				t.Fatalf("Fibonacci(%d) error = %v, want ErrInvalidArgument", n, err)
			}

			return
		}

		if err != nil {
			t.Fatalf("Fibonacci(%d) returned an unexpected error: %v", n, err)
		}

		// Property: F(n) is never negative
		if value.Sign() < 0 {
			t.Fatalf("Fibonacci(%d) = %s is negative", n, value)
		}
	}))
}

func mustFibonacci(rt *rapid.T, n int) *big.Int {
	value, err := core.Fibonacci(n)
	if err != nil {
		rt.Fatalf("Fibonacci(%d) returned an unexpected error: %v", n, err)
	}

	return value
}

// naiveFibonacci is the exponential recursive definition, used only as a test oracle.
func naiveFibonacci(n int) int64 {
	if n < 2 {
		return int64(n)
	}

	return naiveFibonacci(n-1) + naiveFibonacci(n-2)
}
