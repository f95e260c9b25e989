// Package code implements the syndrome-based decoding kernel shared by the
// BCH and Reed-Solomon codecs: syndrome computation, the Berlekamp-Massey
// error-locator recursion, Chien root search, and Forney error magnitudes.
//
// The kernel works on received words in coefficient order: word[i] is the
// coefficient of x^i of the received polynomial. Codecs translate their own
// codeword layout to and from this order.
package code

import (
	"fmt"

	"github.com/fieldlab/ecc/pkg/galois"
)

// Decoder is a reusable decoding kernel for one code geometry. It is
// parametrized by the code length n, the redundancy r (the number of
// syndromes), and the error-correction capability t. A Decoder holds only
// immutable state and may be shared across goroutines.
type Decoder struct {
	field *galois.Field
	n     int
	r     int
	t     int
	alpha galois.Element
}

// Correction is the outcome of one kernel pass over a received word.
// Positions are coefficient degrees, ascending. Magnitudes is nil for
// binary codes, where every correction is a bit flip. OK is false when the
// word is uncorrectable; the positions and magnitudes are then empty and
// the caller returns its data portion uncorrected.
type Correction struct {
	Positions  []int
	Magnitudes []galois.Element
	OK         bool
}

// NewDecoder builds a kernel for a code of length n with r syndromes and
// capability t over the given field.
func NewDecoder(f *galois.Field, n, r, t int) (*Decoder, error) {
	if n < 3 || n > f.Order() {
		return nil, fmt.Errorf("code length %d out of range for GF(2^%d), max %d", n, f.M(), f.Order())
	}
	if r < 1 || r >= n {
		return nil, fmt.Errorf("redundancy %d must be in [1, %d)", r, n)
	}
	if t < 1 || 2*t > r {
		return nil, fmt.Errorf("correction capability %d inconsistent with redundancy %d", t, r)
	}

	return &Decoder{field: f, n: n, r: r, t: t, alpha: f.Primitive()}, nil
}

// Field returns the decoder's field.
func (d *Decoder) Field() *galois.Field { return d.field }

// Length returns the code length n.
func (d *Decoder) Length() int { return d.n }

// Redundancy returns the syndrome count r.
func (d *Decoder) Redundancy() int { return d.r }

// Capability returns the error-correction capability t.
func (d *Decoder) Capability() int { return d.t }

// Syndromes evaluates the received polynomial at α^1 … α^r. All syndromes
// are zero iff the word is a valid codeword.
func (d *Decoder) Syndromes(received []galois.Element) ([]galois.Element, error) {
	if len(received) != d.n {
		return nil, fmt.Errorf("received word has %d symbols, want %d", len(received), d.n)
	}

	poly := galois.NewPoly(d.field, received)
	syndromes := make([]galois.Element, d.r)
	for i := 1; i <= d.r; i++ {
		syndromes[i-1] = poly.Evaluate(d.field.Exp(i))
	}
	return syndromes, nil
}

// HasErrors reports whether any syndrome is nonzero.
func HasErrors(syndromes []galois.Element) bool {
	for _, s := range syndromes {
		if s != 0 {
			return true
		}
	}
	return false
}

// Locate runs Berlekamp-Massey over the syndrome sequence and returns the
// minimal-degree error locator polynomial C(x). The degree of the result is
// the number of errors the syndromes are consistent with; callers must
// reject it when it exceeds the capability t.
func (d *Decoder) Locate(syndromes []galois.Element) *galois.Poly {
	f := d.field

	c := galois.NewPoly(f, []galois.Element{1}) // error locator candidate
	b := galois.NewPoly(f, []galois.Element{1}) // shift register at last length change
	length := 0                                 // current recurrence length L
	pos := 1                                    // steps since last length change
	lastDisc := galois.Element(1)               // last nonzero discrepancy

	for n := 0; n < len(syndromes); n++ {
		// Discrepancy between the next syndrome and what the current
		// recurrence predicts.
		disc := syndromes[n]
		for i := 1; i <= length; i++ {
			disc = f.Add(disc, f.Multiply(c.Coefficient(i), syndromes[n-i]))
		}

		if disc == 0 {
			pos++
			continue
		}

		// C(x) <- C(x) - (disc/lastDisc) * x^pos * B(x)
		prev := c.Clone()
		adjust := galois.Monomial(f, pos, f.Divide(disc, lastDisc))
		c = c.Add(adjust.Mul(b))

		if 2*length <= n {
			length = n + 1 - length
			b = prev
			lastDisc = disc
			pos = 1
		} else {
			pos++
		}
	}

	return c
}

// ChienSearch finds the error positions encoded in the locator polynomial
// by evaluating it at α^(-p) for every coefficient position p in [0, n). A
// zero evaluation means the reciprocal root α^p is present, i.e. position p
// is in error. Positions are returned in ascending order.
func (d *Decoder) ChienSearch(locator *galois.Poly) []int {
	var positions []int
	for p := 0; p < d.n; p++ {
		if locator.Evaluate(d.field.Exp(-p)) == 0 {
			positions = append(positions, p)
		}
	}
	return positions
}

// ErrorValues computes the correction magnitude for each error position
// using the Forney algorithm. The error evaluator is
// Ω(x) = S(x)·Λ(x) mod x^r with S(x) = S₁ + S₂x + …, and the magnitude at
// position p is Ω(α^(-p)) / Λ'(α^(-p)). The formal derivative Λ' keeps only
// the odd-degree terms of Λ, since characteristic 2 kills the rest. A zero
// derivative at a claimed root means the locator and positions are
// inconsistent; that is reported as an error, never as a zero correction.
func (d *Decoder) ErrorValues(syndromes []galois.Element, locator *galois.Poly, positions []int) ([]galois.Element, error) {
	f := d.field

	product := galois.NewPoly(f, syndromes).Mul(locator)
	truncated := make([]galois.Element, d.r)
	for i := range truncated {
		truncated[i] = product.Coefficient(i)
	}
	evaluator := galois.NewPoly(f, truncated)

	derivCoeffs := make([]galois.Element, locator.Degree())
	for i := 1; i <= locator.Degree(); i += 2 {
		derivCoeffs[i-1] = locator.Coefficient(i)
	}
	derivative := galois.NewPoly(f, derivCoeffs)

	values := make([]galois.Element, len(positions))
	for i, p := range positions {
		x := d.field.Exp(-p)
		denom := derivative.Evaluate(x)
		if denom == 0 {
			return nil, fmt.Errorf("locator derivative vanished at position %d", p)
		}
		values[i] = f.Divide(evaluator.Evaluate(x), denom)
	}
	return values, nil
}

// Correct runs the full decoding pipeline on a received word: syndrome
// check, Berlekamp-Massey, Chien search, and (for symbol alphabets) Forney.
// The binary flag skips Forney, since binary corrections are always bit
// flips. An error is returned only for a malformed input length;
// uncorrectable words come back with OK set to false.
func (d *Decoder) Correct(received []galois.Element, binary bool) (*Correction, error) {
	syndromes, err := d.Syndromes(received)
	if err != nil {
		return nil, err
	}

	// Fast path: a clean codeword needs no locator search.
	if !HasErrors(syndromes) {
		return &Correction{OK: true}, nil
	}

	locator := d.Locate(syndromes)
	errorCount := locator.Degree()
	if errorCount < 1 || errorCount > d.t {
		return &Correction{}, nil
	}

	positions := d.ChienSearch(locator)
	if len(positions) != errorCount {
		// The locator does not split into distinct roots inside the
		// codeword range: more errors occurred than it can describe.
		return &Correction{}, nil
	}

	if binary {
		return &Correction{Positions: positions, OK: true}, nil
	}

	magnitudes, err := d.ErrorValues(syndromes, locator, positions)
	if err != nil {
		return &Correction{}, nil
	}
	return &Correction{Positions: positions, Magnitudes: magnitudes, OK: true}, nil
}
