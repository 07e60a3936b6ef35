package numerology

import "math"

// Master numbers are exempt from final reduction.
const (
	Master11 = 11
	Master22 = 22
	Master33 = 33
)

// IsMaster reports whether n is one of the master numbers 11, 22 or 33.
func IsMaster(n int) bool {
	return n == Master11 || n == Master22 || n == Master33
}

// ReduceToCore sums the decimal digits of n until the value is below 10 or
// is a master number. Negative input is treated as its absolute value.
//
// The result is always in {0..9, 11, 22, 33}.
func ReduceToCore(n int) int {
	n = abs(n)
	for n >= 10 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

// reduceDigits reduces n to a single digit with no master-number exception.
// It is used for intermediate values so that partial sums stay in 0..9.
func reduceDigits(n int) int {
	n = abs(n)
	for n >= 10 {
		n = digitSum(n)
	}
	return n
}

// digitSum returns the sum of the decimal digits of a non-negative n.
func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// abs folds negative input to a non-negative value. The magnitude of
// math.MinInt does not fit in an int, so it is replaced by its digit sum,
// which reduces the same way.
func abs(n int) int {
	if n == math.MinInt {
		m := uint(-(n + 1)) + 1
		sum := 0
		for m > 0 {
			sum += int(m % 10)
			m /= 10
		}
		return sum
	}
	if n < 0 {
		return -n
	}
	return n
}
