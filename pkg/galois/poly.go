package galois

import (
	"fmt"
	"strings"
)

// Poly is a polynomial with coefficients in a Field. Coefficients are
// stored low-to-high: coeffs[i] is the coefficient of x^i. Trailing zero
// coefficients are trimmed on every construction and mutation, so Degree is
// always the index of the last nonzero coefficient (0 for the zero
// polynomial). A Poly holds a non-owning reference to its Field; the Field
// must outlive every polynomial built from it.
type Poly struct {
	field  *Field
	coeffs []Element
}

// NewPoly builds a polynomial from low-to-high coefficients. The slice is
// copied, so the caller keeps ownership of its argument.
func NewPoly(f *Field, coeffs []Element) *Poly {
	p := &Poly{field: f, coeffs: append([]Element(nil), coeffs...)}
	p.trim()
	return p
}

// Monomial returns c * x^degree.
func Monomial(f *Field, degree int, c Element) *Poly {
	if degree < 0 {
		panic("galois: negative monomial degree")
	}
	coeffs := make([]Element, degree+1)
	coeffs[degree] = c
	return NewPoly(f, coeffs)
}

func (p *Poly) trim() {
	n := len(p.coeffs)
	for n > 1 && p.coeffs[n-1] == 0 {
		n--
	}
	if n == 0 {
		p.coeffs = []Element{0}
		return
	}
	p.coeffs = p.coeffs[:n]
}

// Field returns the field the coefficients live in.
func (p *Poly) Field() *Field { return p.field }

// Degree returns the degree of the polynomial. The zero polynomial has
// degree 0 by convention.
func (p *Poly) Degree() int { return len(p.coeffs) - 1 }

// Coefficient returns the coefficient of x^i. Out-of-range reads return 0.
func (p *Poly) Coefficient(i int) Element {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// Coefficients returns a copy of the coefficient slice, low-to-high.
func (p *Poly) Coefficients() []Element {
	return append([]Element(nil), p.coeffs...)
}

// SetCoefficient sets the coefficient of x^i, growing the polynomial if
// needed and re-trimming afterwards.
func (p *Poly) SetCoefficient(i int, v Element) {
	if i < 0 {
		panic("galois: negative coefficient index")
	}
	if i >= len(p.coeffs) {
		grown := make([]Element, i+1)
		copy(grown, p.coeffs)
		p.coeffs = grown
	}
	p.coeffs[i] = v
	p.trim()
}

// IsZero reports whether the polynomial is identically zero.
func (p *Poly) IsZero() bool {
	return len(p.coeffs) == 1 && p.coeffs[0] == 0
}

// Clone returns an independent copy sharing the same Field.
func (p *Poly) Clone() *Poly {
	return NewPoly(p.field, p.coeffs)
}

// Add returns p + q as a new polynomial.
func (p *Poly) Add(q *Poly) *Poly {
	size := len(p.coeffs)
	if len(q.coeffs) > size {
		size = len(q.coeffs)
	}

	result := make([]Element, size)
	for i := range result {
		result[i] = p.field.Add(p.Coefficient(i), q.Coefficient(i))
	}
	return NewPoly(p.field, result)
}

// Mul returns p * q as a new polynomial, computed as a full convolution.
func (p *Poly) Mul(q *Poly) *Poly {
	if p.IsZero() || q.IsZero() {
		return NewPoly(p.field, []Element{0})
	}

	result := make([]Element, len(p.coeffs)+len(q.coeffs)-1)
	for i, a := range p.coeffs {
		if a == 0 {
			continue
		}
		for j, b := range q.coeffs {
			result[i+j] = p.field.Add(result[i+j], p.field.Multiply(a, b))
		}
	}
	return NewPoly(p.field, result)
}

// Scale returns c * p as a new polynomial.
func (p *Poly) Scale(c Element) *Poly {
	result := make([]Element, len(p.coeffs))
	for i, a := range p.coeffs {
		result[i] = p.field.Multiply(a, c)
	}
	return NewPoly(p.field, result)
}

// Evaluate computes p(x) by Horner's method, iterating from the
// highest-degree coefficient down.
func (p *Poly) Evaluate(x Element) Element {
	result := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		result = p.field.Add(p.field.Multiply(result, x), p.coeffs[i])
	}
	return result
}

// DivMod divides p by divisor and returns quotient and remainder such that
// p = quotient*divisor + remainder with remainder degree below the divisor
// degree. Dividing by the zero polynomial returns an error.
func (p *Poly) DivMod(divisor *Poly) (quotient, remainder *Poly, err error) {
	if divisor.IsZero() {
		return nil, nil, fmt.Errorf("polynomial division by zero")
	}

	f := p.field
	rem := append([]Element(nil), p.coeffs...)
	divDeg := divisor.Degree()
	divLead := divisor.coeffs[divDeg]

	quoLen := len(rem) - divDeg
	if quoLen < 1 {
		quoLen = 1
	}
	quo := make([]Element, quoLen)

	for d := len(rem) - 1; d >= divDeg; d-- {
		if rem[d] == 0 {
			continue
		}
		factor := f.Divide(rem[d], divLead)
		quo[d-divDeg] = factor
		for i := 0; i <= divDeg; i++ {
			rem[d-divDeg+i] = f.Add(rem[d-divDeg+i], f.Multiply(factor, divisor.coeffs[i]))
		}
	}

	return NewPoly(f, quo), NewPoly(f, rem), nil
}

// FindRoots evaluates p at every field element and returns those where the
// value is zero. The exhaustive sweep costs O(field size), which is small
// (at most 2^16) relative to how often decoders call it.
func (p *Poly) FindRoots() []Element {
	var roots []Element
	for x := 0; x < p.field.Size(); x++ {
		if p.Evaluate(Element(x)) == 0 {
			roots = append(roots, Element(x))
		}
	}
	return roots
}

// String renders the polynomial high-degree first, e.g. "x^3 + x + 1".
func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}

	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		switch {
		case i == 0:
			terms = append(terms, fmt.Sprintf("%d", uint32(c)))
		case i == 1 && c == 1:
			terms = append(terms, "x")
		case i == 1:
			terms = append(terms, fmt.Sprintf("%d*x", uint32(c)))
		case c == 1:
			terms = append(terms, fmt.Sprintf("x^%d", i))
		default:
			terms = append(terms, fmt.Sprintf("%d*x^%d", uint32(c), i))
		}
	}
	return strings.Join(terms, " + ")
}
