package core

import "math/big"

// IsPrime reports whether v is prime, by trial division with odd divisors up to floor(sqrt(v)).
// Values below 2, negatives included, are not prime.
func IsPrime(v *big.Int) bool {
	if v.Sign() <= 0 {
		return false
	}

	if v.IsUint64() {
		return isPrimeUint64(v.Uint64())
	}

	// beyond uint64, so certainly greater than 2
	if v.Bit(0) == 0 {
		return false
	}

	return isPrimeBig(v)
}

func isPrimeUint64(n uint64) bool {
	switch {
	case n < 2:
		return false
	case n == 2:
		return true
	case n%2 == 0:
		return false
	}

	// d <= n/d is d*d <= n without overflow
	for d := uint64(3); d <= n/d; d += 2 {
		if n%d == 0 {
			return false
		}
	}

	return true
}

// isPrimeBig expects an odd v greater than 2.
func isPrimeBig(v *big.Int) bool {
	limit := new(big.Int).Sqrt(v)
	two := big.NewInt(2)
	rem := new(big.Int)

	for d := big.NewInt(3); d.Cmp(limit) <= 0; d.Add(d, two) {
		if rem.Mod(v, d).Sign() == 0 {
			return false
		}
	}

	return true
}
