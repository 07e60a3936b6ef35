package numerology

// LifePath reduces each date component on its own, sums them and reduces the
// total. 1988-04-15 gives 4 + 6 + 8 = 18, so the life path is 9.
func LifePath(month, day, year int) int {
	return ReduceToCore(reduceDigits(month) + reduceDigits(day) + reduceDigits(year))
}

// Destiny is the reduced value of every letter in the full name.
// It is also called the Expression number.
func Destiny(name string) int {
	return ReduceToCore(NameToDigitSum(name, AllLetters))
}

// SoulUrge is the reduced value of the vowels in the full name.
func SoulUrge(name string) int {
	return ReduceToCore(NameToDigitSum(name, VowelsOnly))
}

// Personality is the reduced value of the consonants in the full name.
func Personality(name string) int {
	return ReduceToCore(NameToDigitSum(name, ConsonantsOnly))
}

// BirthdayNumber returns the day unchanged up to and including 22. Days 23
// to 31 are reduced from the sum of their two digits.
//
// Days 10 to 22 are deliberately left as two-digit values. This asymmetry is
// long-standing product behaviour and is kept as is.
func BirthdayNumber(day int) int {
	day = abs(day)
	if day <= 22 {
		return day
	}
	return ReduceToCore(day%10 + day/10)
}

// Maturity combines the life path and destiny numbers.
func Maturity(lifePath, destiny int) int {
	return ReduceToCore(lifePath + destiny)
}

// Balance is the reduced value of the first letter of each name token.
func Balance(name string) int {
	sum := 0
	for _, r := range firstLetters(name) {
		if v, ok := LetterToDigit(r); ok {
			sum += v
		}
	}
	return ReduceToCore(sum)
}

// Bridge is the reduced distance between two numbers, for example the
// destiny of a birth name and of a current name.
func Bridge(a, b int) int {
	return ReduceToCore(abs(a - b))
}

// Challenges returns the four challenge numbers. They are absolute
// differences of single digits and are not reduced again, so each is 0..9.
func Challenges(month, day, year int) [4]int {
	m, d, y := reduceDigits(month), reduceDigits(day), reduceDigits(year)
	c1 := abs(d - m)
	c2 := abs(d - y)
	return [4]int{c1, c2, abs(c1 - c2), abs(m - y)}
}

// Pinnacles returns the four pinnacle numbers.
func Pinnacles(month, day, year int) [4]int {
	m, d, y := reduceDigits(month), reduceDigits(day), reduceDigits(year)
	p1 := ReduceToCore(d + m)
	p2 := ReduceToCore(d + y)
	// p1 and p2 are final values in their own right; the third pinnacle
	// sums them as they are, master numbers included.
	return [4]int{p1, p2, ReduceToCore(p1 + p2), ReduceToCore(m + y)}
}

// PinnacleAges returns the age at which each of the first three pinnacles
// ends. The first ends at 36 minus the single-digit life path and each
// following pinnacle lasts nine years. The fourth runs for the rest of life.
func PinnacleAges(lifePath int) [3]int {
	first := 36 - reduceDigits(lifePath)
	return [3]int{first, first + 9, first + 18}
}

// PersonalYear is the theme number of currentYear for someone born on the
// given month and day.
func PersonalYear(birthMonth, birthDay, currentYear int) int {
	return ReduceToCore(reduceDigits(birthMonth) + reduceDigits(birthDay) + reduceDigits(currentYear))
}

// PersonalMonth adds the current month to a personal year.
func PersonalMonth(personalYear, currentMonth int) int {
	return ReduceToCore(personalYear + reduceDigits(currentMonth))
}

// PersonalDay adds the current day to a personal month.
func PersonalDay(personalMonth, currentDay int) int {
	return ReduceToCore(personalMonth + reduceDigits(currentDay))
}

// KarmicLessons returns, in ascending order, the digits 1..9 that no letter
// of name maps to. A name with no letters lacks every digit.
func KarmicLessons(name string) []int {
	var seen [10]bool
	for _, v := range letterDigits(name) {
		seen[v] = true
	}
	missing := make([]int, 0, 9)
	for d := 1; d <= 9; d++ {
		if !seen[d] {
			missing = append(missing, d)
		}
	}
	return missing
}

// HiddenPassion returns the digit whose letters occur most often in name.
// Digits are scanned from 1 to 9 and only a strictly larger count replaces
// the current best, so ties go to the smaller digit. A name with no letters
// returns 0.
func HiddenPassion(name string) int {
	counts := DigitCounts(name)
	best, bestCount := 0, 0
	for d := 1; d <= 9; d++ {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

// DigitCounts returns how many letters of name map to each digit. Index 0 is
// always zero.
func DigitCounts(name string) [10]int {
	var counts [10]int
	for _, v := range letterDigits(name) {
		counts[v]++
	}
	return counts
}
