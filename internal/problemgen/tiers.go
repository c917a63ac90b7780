package problemgen

import "fmt"

const (
	operandMax = 10

	// mixedAttempts bounds the a+b >= c search before the fallback draw.
	mixedAttempts = 5
)

// operand draws a value in [0,10], redrawing a zero up to retries times.
func (g *ArithmeticGenerator) operand(retries int) int {
	return DrawInt(g.src, 0, operandMax, isZero, retries)
}

func (g *ArithmeticGenerator) addition() Problem {
	a := g.operand(1)
	b := g.operand(1)
	return Problem{
		Text:   fmt.Sprintf("%d + %d = ?", a, b),
		Spoken: fmt.Sprintf("%d plus %d", a, b),
		Answer: a + b,
	}
}

// subtraction presents (a+b) - b so the answer is never negative.
func (g *ArithmeticGenerator) subtraction() Problem {
	a := g.operand(1)
	b := g.operand(1)
	return Problem{
		Text:   fmt.Sprintf("%d - %d = ?", a+b, b),
		Spoken: fmt.Sprintf("%d minus %d", a+b, b),
		Answer: a,
	}
}

// threeAddition widens the zero-retry budget of later operands when an
// earlier one came out zero, to make an all-zero question unlikely.
func (g *ArithmeticGenerator) threeAddition() Problem {
	a := g.operand(1)
	bRetries := 1
	if a == 0 {
		bRetries = 2
	}
	b := g.operand(bRetries)
	cRetries := 1
	if a*b == 0 {
		cRetries = 2
	}
	c := g.operand(cRetries)
	return Problem{
		Text:   fmt.Sprintf("%d + %d + %d = ?", a, b, c),
		Spoken: fmt.Sprintf("%d plus %d plus %d", a, b, c),
		Answer: a + b + c,
	}
}

// mixed builds a + b - c with a non-negative answer. After mixedAttempts
// failed searches it accepts a small bias and bounds c by a+b directly.
func (g *ArithmeticGenerator) mixed() Problem {
	var a, b, c int
	ok := false
	for attempt := 0; attempt < mixedAttempts; attempt++ {
		a = g.operand(0)
		b = g.operand(0)
		c = DrawInt(g.src, 0, operandMax, func(n int) bool {
			return n == 0 || n == a || n == b
		}, 1)
		if a+b >= c {
			ok = true
			break
		}
	}
	if !ok {
		a = DrawInt(g.src, 0, operandMax, nil, 0)
		b = DrawInt(g.src, 0, operandMax, nil, 0)
		c = DrawInt(g.src, 0, min(operandMax, a+b), nil, 0)
	}
	return Problem{
		Text:   fmt.Sprintf("%d + %d - %d = ?", a, b, c),
		Spoken: fmt.Sprintf("%d plus %d minus %d", a, b, c),
		Answer: a + b - c,
	}
}

func (g *ArithmeticGenerator) multiplication() Problem {
	trivial := func(n int) bool { return n <= 1 || n == operandMax }
	a := DrawInt(g.src, 0, operandMax, trivial, 2)
	b := DrawInt(g.src, 0, operandMax, trivial, 2)
	return Problem{
		Text:   fmt.Sprintf("%d × %d = ?", a, b),
		Spoken: fmt.Sprintf("%d times %d", a, b),
		Answer: a * b,
	}
}

// division presents (d*q) ÷ d so the division is always exact.
func (g *ArithmeticGenerator) division() Problem {
	d := DrawInt(g.src, 1, operandMax, func(n int) bool { return n == 1 }, 1)
	q := DrawInt(g.src, 0, operandMax, func(n int) bool { return n <= 1 }, 0)
	return Problem{
		Text:   fmt.Sprintf("%d ÷ %d = ?", d*q, d),
		Spoken: fmt.Sprintf("%d divided by %d", d*q, d),
		Answer: q,
	}
}
