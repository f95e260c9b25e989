// Package reedsolomon implements Reed-Solomon codes over GF(2^m) symbols.
// The generator polynomial is (x - α)(x - α²)…(x - α^(n-k)); encoding is
// systematic with the codeword laid out as [data | parity]; decoding runs
// the shared syndrome kernel followed by Forney magnitude recovery, since a
// symbol error needs a corrected value, not just a position.
package reedsolomon

import (
	"fmt"
	"sort"

	"github.com/fieldlab/ecc/pkg/code"
	"github.com/fieldlab/ecc/pkg/galois"
)

// Code is a Reed-Solomon codec over GF(2^m). Codewords and data words are
// slices of field symbols; array index j carries the coefficient of degree
// n-1-j, so the data occupies the high-order coefficients. All parameters
// are fixed at construction; a Code is immutable and safe for concurrent
// use.
type Code struct {
	field     *galois.Field
	decoder   *code.Decoder
	generator *galois.Poly
	n         int
	k         int
	r         int
	t         int
	m         int
}

// DecodeResult reports the outcome of one decode call. Data always holds k
// symbols: the corrected ones on success, the received ones (best-effort,
// possibly still wrong) when Success is false. ErrorPositions are codeword
// array indices, ascending.
type DecodeResult struct {
	Data            []galois.Element
	Success         bool
	ErrorsCorrected int
	ErrorPositions  []int
}

// New builds an RS(n, k) code over GF(2^m) using the standard primitive
// polynomial for m.
func New(n, k, m int) (*Code, error) {
	poly, err := galois.DefaultPrimitivePoly(m)
	if err != nil {
		return nil, err
	}
	return NewWithPolynomial(n, k, m, poly)
}

// NewWithPolynomial builds an RS(n, k) code over the field defined by the
// given primitive polynomial. It requires 0 < k < n <= 2^m - 1 and at least
// two parity symbols so that t = (n-k)/2 >= 1.
func NewWithPolynomial(n, k, m int, primPoly galois.Element) (*Code, error) {
	field, err := galois.NewField(m, primPoly)
	if err != nil {
		return nil, err
	}

	if n < 3 || n > field.Order() {
		return nil, fmt.Errorf("code length %d out of range for GF(2^%d), max %d", n, m, field.Order())
	}
	if k < 1 || k >= n {
		return nil, fmt.Errorf("data length %d must be in [1, %d)", k, n)
	}

	r := n - k
	t := r / 2
	if t < 1 {
		return nil, fmt.Errorf("RS(%d, %d) has %d parity symbol(s); at least 2 are needed to correct errors", n, k, r)
	}

	decoder, err := code.NewDecoder(field, n, r, t)
	if err != nil {
		return nil, err
	}

	// g(x) = (x - α)(x - α²)…(x - α^r), expanded by repeated multiplication.
	generator := galois.NewPoly(field, []galois.Element{1})
	for i := 1; i <= r; i++ {
		factor := galois.NewPoly(field, []galois.Element{field.Exp(i), 1})
		generator = generator.Mul(factor)
	}

	return &Code{
		field:     field,
		decoder:   decoder,
		generator: generator,
		n:         n,
		k:         k,
		r:         r,
		t:         t,
		m:         m,
	}, nil
}

// Encode produces the systematic codeword [data | parity] for a k-symbol
// data word: the data polynomial is shifted up by n-k and the remainder
// modulo the generator fills the trailing parity slots. Encode never fails
// for a well-formed data word.
func (c *Code) Encode(data []galois.Element) ([]galois.Element, error) {
	if err := c.checkSymbols("data", data, c.k); err != nil {
		return nil, err
	}

	// data[j] is the coefficient of degree n-1-j; the low r degrees stay
	// zero, which is exactly the shift by x^r.
	coeffs := make([]galois.Element, c.n)
	for j, s := range data {
		coeffs[c.n-1-j] = s
	}
	shifted := galois.NewPoly(c.field, coeffs)

	_, remainder, err := shifted.DivMod(c.generator)
	if err != nil {
		return nil, err
	}

	codeword := make([]galois.Element, c.n)
	copy(codeword, data)
	for j := c.k; j < c.n; j++ {
		codeword[j] = remainder.Coefficient(c.n - 1 - j)
	}
	return codeword, nil
}

// Decode corrects up to t symbol errors in a received codeword.
// Uncorrectable words are a normal outcome reported through Success; an
// error return means the input itself was malformed.
func (c *Code) Decode(received []galois.Element) (*DecodeResult, error) {
	if err := c.checkSymbols("codeword", received, c.n); err != nil {
		return nil, err
	}

	word := make([]galois.Element, c.n)
	for j, s := range received {
		word[c.n-1-j] = s
	}

	correction, err := c.decoder.Correct(word, false)
	if err != nil {
		return nil, err
	}
	if !correction.OK {
		return &DecodeResult{Data: c.dataSymbols(received)}, nil
	}

	corrected := append([]galois.Element(nil), received...)
	positions := make([]int, len(correction.Positions))
	for i, p := range correction.Positions {
		j := c.n - 1 - p
		corrected[j] = c.field.Add(corrected[j], correction.Magnitudes[i])
		positions[i] = j
	}
	sort.Ints(positions)

	return &DecodeResult{
		Data:            c.dataSymbols(corrected),
		Success:         true,
		ErrorsCorrected: len(positions),
		ErrorPositions:  positions,
	}, nil
}

// EncodeBatch encodes each data word in order.
func (c *Code) EncodeBatch(words [][]galois.Element) ([][]galois.Element, error) {
	encoded := make([][]galois.Element, len(words))
	for i, word := range words {
		cw, err := c.Encode(word)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		encoded[i] = cw
	}
	return encoded, nil
}

// DecodeBatch decodes each received word in order.
func (c *Code) DecodeBatch(words [][]galois.Element) ([]*DecodeResult, error) {
	results := make([]*DecodeResult, len(words))
	for i, word := range words {
		res, err := c.Decode(word)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		results[i] = res
	}
	return results, nil
}

func (c *Code) dataSymbols(codeword []galois.Element) []galois.Element {
	return append([]galois.Element(nil), codeword[:c.k]...)
}

func (c *Code) checkSymbols(what string, symbols []galois.Element, want int) error {
	if len(symbols) != want {
		return fmt.Errorf("%s must be %d symbols, got %d", what, want, len(symbols))
	}
	for i, s := range symbols {
		if int(s) >= c.field.Size() {
			return fmt.Errorf("%s symbol %d is %d, outside GF(2^%d)", what, i, uint32(s), c.m)
		}
	}
	return nil
}

// N returns the codeword length in symbols.
func (c *Code) N() int { return c.n }

// K returns the data length in symbols.
func (c *Code) K() int { return c.k }

// T returns the error-correction capability in symbols.
func (c *Code) T() int { return c.t }

// M returns the symbol width in bits.
func (c *Code) M() int { return c.m }

// ParityLength returns the number of parity symbols n-k.
func (c *Code) ParityLength() int { return c.r }

// MinDistance returns the minimum distance n-k+1.
func (c *Code) MinDistance() int { return c.r + 1 }

// Rate returns the code rate k/n.
func (c *Code) Rate() float64 { return float64(c.k) / float64(c.n) }

// Generator returns a copy of the generator polynomial.
func (c *Code) Generator() *galois.Poly { return c.generator.Clone() }

// Field returns the code's field.
func (c *Code) Field() *galois.Field { return c.field }
