package numerology

import "strings"

// letterValues is the Pythagorean table indexed by letter offset from 'A'.
//
//	1: A J S   2: B K T   3: C L U
//	4: D M V   5: E N W   6: F O X
//	7: G P Y   8: H Q Z   9: I R
var letterValues = [26]int{
	1, 2, 3, 4, 5, 6, 7, 8, 9, // A-I
	1, 2, 3, 4, 5, 6, 7, 8, 9, // J-R
	1, 2, 3, 4, 5, 6, 7, 8, // S-Z
}

// LetterFilter selects which letters contribute to a name sum.
type LetterFilter int

const (
	// AllLetters counts every Latin letter.
	AllLetters LetterFilter = iota

	// VowelsOnly counts A, E, I, O and U.
	VowelsOnly

	// ConsonantsOnly counts every letter that is not a vowel. Y is a consonant.
	ConsonantsOnly
)

// String returns the filter name.
func (f LetterFilter) String() string {
	switch f {
	case VowelsOnly:
		return "vowels"
	case ConsonantsOnly:
		return "consonants"
	default:
		return "all"
	}
}

// LetterToDigit maps a Latin letter to its Pythagorean value, ignoring case.
// Any other rune (digits, spaces, punctuation, accented letters) has no value.
func LetterToDigit(r rune) (int, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return letterValues[r-'A'], true
	case r >= 'a' && r <= 'z':
		return letterValues[r-'a'], true
	default:
		return 0, false
	}
}

// IsVowel reports whether r is one of A, E, I, O, U in either case.
func IsVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// NameToDigitSum sums the letter values of name that pass filter.
// Characters without a letter value are skipped, they do not count as zero.
func NameToDigitSum(name string, filter LetterFilter) int {
	sum := 0
	for _, r := range name {
		v, ok := LetterToDigit(r)
		if !ok || !filter.accepts(r) {
			continue
		}
		sum += v
	}
	return sum
}

func (f LetterFilter) accepts(r rune) bool {
	switch f {
	case VowelsOnly:
		return IsVowel(r)
	case ConsonantsOnly:
		return !IsVowel(r)
	default:
		return true
	}
}

// letterDigits returns the value of every letter in name, in order.
func letterDigits(name string) []int {
	digits := make([]int, 0, len(name))
	for _, r := range name {
		if v, ok := LetterToDigit(r); ok {
			digits = append(digits, v)
		}
	}
	return digits
}

// firstLetters returns the first rune of each space-separated token, letter
// or not. Non-letters later score zero.
func firstLetters(name string) []rune {
	tokens := strings.Fields(name)
	out := make([]rune, 0, len(tokens))
	for _, tok := range tokens {
		for _, r := range tok {
			out = append(out, r)
			break
		}
	}
	return out
}
