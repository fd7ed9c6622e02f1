package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman converts n to standard additive/subtractive Roman numeral form for
// 1 <= n <= 3999 (§4.5.3). Values outside that range are returned as their
// decimal string, unconverted.
func Roman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}

	var b strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			b.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return b.String()
}

// romanizeDigitRuns replaces every run of digits in s with its Roman
// numeral conversion (P2: "in N, replace every run of digits d with
// Roman(int(d))"). Non-numeric substrings are left unchanged.
func romanizeDigitRuns(s string) string {
	return digitRun.ReplaceAllStringFunc(s, func(match string) string {
		n, err := strconv.Atoi(match)
		if err != nil {
			return match
		}
		return Roman(n)
	})
}
