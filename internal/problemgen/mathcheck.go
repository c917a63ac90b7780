package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError describes why a generated problem failed a check.
type ValidationError struct {
	Validator string // Name of the check that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Display text is "n (op n)* = ?" with single spaces between tokens.
var (
	exprRe = regexp.MustCompile(`^\s*(\d+)((?:\s*[+\-×÷*/]\s*\d+)*)\s*(?:=\s*\?)?\s*$`)
	termRe = regexp.MustCompile(`\s*([+\-×÷*/])\s*(\d+)`)
)

// Evaluate independently computes the value of a problem's display text.
// Operators are applied left to right, which matches every tier's layout.
// Division must be exact.
func Evaluate(text string) (int, error) {
	m := exprRe.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("not an arithmetic expression: %q", text)
	}

	acc, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}

	for _, term := range termRe.FindAllStringSubmatch(m[2], -1) {
		n, err := strconv.Atoi(term[2])
		if err != nil {
			return 0, err
		}
		switch normalizeOp(term[1]) {
		case "+":
			acc += n
		case "-":
			acc -= n
		case "*":
			acc *= n
		case "/":
			if n == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			if acc%n != 0 {
				return 0, fmt.Errorf("inexact division %d / %d", acc, n)
			}
			acc /= n
		}
	}
	return acc, nil
}

// Check recomputes the answer from p.Text and compares it with p.Answer.
func Check(p Problem) error {
	computed, err := Evaluate(p.Text)
	if err != nil {
		return &ValidationError{Validator: "math-check", Message: err.Error()}
	}
	if computed != p.Answer {
		return &ValidationError{
			Validator: "math-check",
			Message:   fmt.Sprintf("computed %d but problem claims %d", computed, p.Answer),
		}
	}
	if computed < 0 {
		return &ValidationError{
			Validator: "math-check",
			Message:   fmt.Sprintf("negative answer %d", computed),
		}
	}
	return nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch strings.TrimSpace(op) {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}
