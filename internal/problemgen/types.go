package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is a difficulty level. Each tier is bound to one arithmetic
// operation family; tiers are ordered from easiest to hardest.
type Tier int

const (
	TierAddition       Tier = iota // a + b
	TierSubtraction                // (a+b) - b
	TierThreeAddition              // a + b + c
	TierMixed                      // a + b - c
	TierMultiplication             // a × b
	TierDivision                   // (a*b) ÷ a
)

// NumTiers is the number of tiers the arithmetic generator knows about.
const NumTiers = 6

var tierNames = [NumTiers]string{
	"addition",
	"subtraction",
	"three-term addition",
	"addition and subtraction",
	"multiplication",
	"division",
}

// String returns a human-readable tier name.
func (t Tier) String() string {
	if t < 0 || int(t) >= NumTiers {
		return "unknown"
	}
	return tierNames[t]
}

// Problem is a generated arithmetic question ready for display.
// It is immutable once generated.
type Problem struct {
	// Text is the question as displayed, e.g. "7 + 3 = ?".
	Text string

	// Spoken is the narration-friendly phrasing with spelled-out
	// operators, e.g. "7 plus 3".
	Spoken string

	// Answer is the correct integer answer. Always >= 0.
	Answer int

	// Tier is the tier the problem was generated for.
	Tier Tier
}

var tierKeys = [NumTiers]string{"add", "sub", "add3", "mixed", "mul", "div"}

// Key returns the short command-line name of the tier.
func (t Tier) Key() string {
	if t < 0 || int(t) >= NumTiers {
		return "unknown"
	}
	return tierKeys[t]
}

// ParseTier accepts a short key ("mul"), a full name ("multiplication")
// or a 1-based level number ("5").
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := range NumTiers {
		if s == tierKeys[i] || s == tierNames[i] {
			return Tier(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= NumTiers {
		return Tier(n - 1), nil
	}
	return 0, fmt.Errorf("unknown tier %q: use %s or 1-%d", s, strings.Join(tierKeys[:], ", "), NumTiers)
}
