package core

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidArgument is returned for indices outside the supported domain.
var ErrInvalidArgument = errors.New("invalid argument")

// Fibonacci returns F(n), with F(0) = 0 and F(1) = 1.
// Negative indices are not supported and return an error wrapping ErrInvalidArgument.
// The returned value is freshly allocated and owned by the caller.
func Fibonacci(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative fibonacci index %d", ErrInvalidArgument, n)
	}

	fn, _ := fibPair(uint(n))

	return fn, nil
}

// fibPair returns (F(k), F(k+1)) by fast doubling:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)^2 + F(k+1)^2
func fibPair(k uint) (*big.Int, *big.Int) {
	if k == 0 {
		return big.NewInt(0), big.NewInt(1)
	}

	a, b := fibPair(k / 2)

	even := new(big.Int).Lsh(b, 1)
	even.Sub(even, a)
	even.Mul(even, a)

	odd := new(big.Int).Mul(a, a)
	odd.Add(odd, new(big.Int).Mul(b, b))

	if k%2 == 0 {
		return even, odd
	}

	return odd, even.Add(even, odd)
}
