package problemgen

import (
	"strconv"
	"strings"
)

// InvalidAnswer is returned by ParseAnswer for input that is not a
// non-negative integer. No generated problem has a negative answer, so it
// always grades as wrong.
const InvalidAnswer = -1

// ParseAnswer coerces typed input into a response for grading.
//
// Normalization rules:
// - Whitespace is trimmed
// - Blank input counts as 0
// - Leading zeros are ignored (e.g., "007" is 7)
// - Anything else that is not a non-negative integer is InvalidAnswer
func ParseAnswer(input string) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 0 {
		return InvalidAnswer
	}
	return n
}
