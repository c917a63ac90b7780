package problemgen

// Generator produces arithmetic problems for a difficulty tier.
type Generator interface {
	// Generate produces a single problem for the given tier.
	// Tiers outside [0, Tiers()) are clamped.
	Generate(tier Tier) Problem

	// Tiers returns the number of tiers this generator supports.
	Tiers() int
}

// ArithmeticGenerator generates problems with constrained random draws.
// It has no state beyond its random source.
type ArithmeticGenerator struct {
	src Source
}

var _ Generator = (*ArithmeticGenerator)(nil)

// New creates an ArithmeticGenerator drawing from src.
func New(src Source) *ArithmeticGenerator {
	if src == nil {
		src = NewSource()
	}
	return &ArithmeticGenerator{src: src}
}

func (g *ArithmeticGenerator) Tiers() int {
	return NumTiers
}

func (g *ArithmeticGenerator) Generate(tier Tier) Problem {
	if tier < 0 {
		tier = 0
	}
	if int(tier) >= NumTiers {
		tier = NumTiers - 1
	}

	var p Problem
	switch tier {
	case TierAddition:
		p = g.addition()
	case TierSubtraction:
		p = g.subtraction()
	case TierThreeAddition:
		p = g.threeAddition()
	case TierMixed:
		p = g.mixed()
	case TierMultiplication:
		p = g.multiplication()
	case TierDivision:
		p = g.division()
	}
	p.Tier = tier
	return p
}
