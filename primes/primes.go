// Package primes holds the demonstration payloads: a trial-division
// primality test and a prime counter.
package primes

import (
	"math"

	"github.com/jonwraymond/decorate/observe"
	"github.com/jonwraymond/decorate/wrap"
)

// CounterMeta names the timed counter in reports and telemetry.
var CounterMeta = observe.FuncMeta{Namespace: "primes", Name: "count"}

// IsPrime reports whether n is prime by trial division over [2, isqrt(n)].
// Values below 2 are not prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	limit := isqrt(n)
	for d := 2; d <= limit; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// isPrimeAll is the single-expression form of IsPrime: n is prime when no
// d in [2, isqrt(n)] divides it. It scans every candidate without an early
// exit and serves as the reference for IsPrime.
func isPrimeAll(n int) bool {
	divisors := 0
	for d := 2; d <= isqrt(max(n, 0)); d++ {
		if n%d == 0 {
			divisors++
		}
	}
	return n >= 2 && divisors == 0
}

// Count returns the number of primes in [2, n]. It is 0 for n < 2.
func Count(n int) int {
	count := 0
	for i := 2; i <= n; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}

// NewCounter returns Count wrapped by the timing wrapper, so every call
// reports its elapsed time through t.
func NewCounter(t *observe.Timer) wrap.Func[int, int] {
	return observe.Timed(t, CounterMeta, wrap.Lift(Count))
}

// isqrt returns floor(sqrt(n)) for n >= 0, corrected for float rounding.
func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
