// Package bch implements binary BCH codes of length 2^m - 1 correcting up
// to t bit errors. The generator polynomial is the product of the distinct
// minimal polynomials of α, α², …, α^2t; encoding is systematic with the
// codeword laid out as [parity | data]; decoding delegates to the shared
// syndrome kernel and flips the located bits.
package bch

import (
	"fmt"

	"github.com/fieldlab/ecc/pkg/code"
	"github.com/fieldlab/ecc/pkg/galois"
)

// Code is a binary BCH codec. Codewords and data words are slices of 0/1
// bytes, where the slice index is the coefficient degree of the codeword
// polynomial. All parameters are fixed at construction; a Code is immutable
// and safe for concurrent use.
type Code struct {
	field     *galois.Field
	decoder   *code.Decoder
	generator *galois.Poly
	m         int
	n         int
	k         int
	t         int
	parityLen int
}

// DecodeResult reports the outcome of one decode call. Data always holds
// the data bits: the corrected ones on success, the received ones
// (best-effort, possibly still wrong) when Success is false.
// ErrorPositions are codeword bit indices, ascending.
type DecodeResult struct {
	Data            []byte
	Success         bool
	ErrorsCorrected int
	ErrorPositions  []int
}

// New builds a BCH code over GF(2^m) with capability t using the standard
// primitive polynomial for m.
func New(m, t int) (*Code, error) {
	poly, err := galois.DefaultPrimitivePoly(m)
	if err != nil {
		return nil, err
	}
	return NewWithPolynomial(m, t, poly)
}

// NewWithPolynomial builds a BCH code over GF(2^m) defined by the given
// primitive polynomial, correcting up to t bit errors.
func NewWithPolynomial(m, t int, primPoly galois.Element) (*Code, error) {
	if t < 1 {
		return nil, fmt.Errorf("error capability t must be at least 1, got %d", t)
	}

	field, err := galois.NewField(m, primPoly)
	if err != nil {
		return nil, err
	}

	n := field.Order()
	generator, err := generatorPoly(field, t)
	if err != nil {
		return nil, err
	}

	parityLen := generator.Degree()
	k := n - parityLen
	if k < 1 {
		return nil, fmt.Errorf("BCH(m=%d, t=%d) leaves no data bits: %d parity bits of %d total", m, t, parityLen, n)
	}

	decoder, err := code.NewDecoder(field, n, 2*t, t)
	if err != nil {
		return nil, err
	}

	return &Code{
		field:     field,
		decoder:   decoder,
		generator: generator,
		m:         m,
		n:         n,
		k:         k,
		t:         t,
		parityLen: parityLen,
	}, nil
}

// generatorPoly multiplies the minimal polynomials of α^1 … α^2t, one per
// Frobenius orbit. Conjugate roots (exponent doubling mod 2^m - 1) share a
// minimal polynomial, so each orbit contributes exactly once.
func generatorPoly(field *galois.Field, t int) (*galois.Poly, error) {
	generator := galois.NewPoly(field, []galois.Element{1})
	covered := make(map[int]bool)

	for e := 1; e <= 2*t; e++ {
		exp := e % field.Order()
		if covered[exp] {
			continue
		}

		minimal := galois.NewPoly(field, []galois.Element{1})
		for c := exp; !covered[c]; c = (2 * c) % field.Order() {
			covered[c] = true
			factor := galois.NewPoly(field, []galois.Element{field.Exp(c), 1})
			minimal = minimal.Mul(factor)
		}
		generator = generator.Mul(minimal)
	}

	// A full conjugacy orbit always yields a polynomial over GF(2).
	for i := 0; i <= generator.Degree(); i++ {
		if c := generator.Coefficient(i); c > 1 {
			return nil, fmt.Errorf("generator coefficient %d at degree %d is not binary", uint32(c), i)
		}
	}
	return generator, nil
}

// Encode produces the systematic codeword [parity | data] for a k-bit data
// word: the data polynomial is shifted up by the parity length and the
// remainder modulo the generator fills the low-order positions. Encode
// never fails for a well-formed data word.
func (c *Code) Encode(data []byte) ([]byte, error) {
	if err := checkBits("data", data, c.k); err != nil {
		return nil, err
	}

	coeffs := make([]galois.Element, c.n)
	for i, bit := range data {
		coeffs[c.parityLen+i] = galois.Element(bit)
	}
	shifted := galois.NewPoly(c.field, coeffs)

	_, remainder, err := shifted.DivMod(c.generator)
	if err != nil {
		return nil, err
	}

	codeword := make([]byte, c.n)
	for i := 0; i < c.parityLen; i++ {
		codeword[i] = byte(remainder.Coefficient(i))
	}
	copy(codeword[c.parityLen:], data)
	return codeword, nil
}

// Decode corrects up to t bit errors in a received codeword. Uncorrectable
// words are a normal outcome reported through Success; an error return
// means the input itself was malformed.
func (c *Code) Decode(received []byte) (*DecodeResult, error) {
	if err := checkBits("codeword", received, c.n); err != nil {
		return nil, err
	}

	word := make([]galois.Element, c.n)
	for i, bit := range received {
		word[i] = galois.Element(bit)
	}

	correction, err := c.decoder.Correct(word, true)
	if err != nil {
		return nil, err
	}
	if !correction.OK {
		return &DecodeResult{Data: c.dataBits(received)}, nil
	}

	corrected := append([]byte(nil), received...)
	for _, p := range correction.Positions {
		corrected[p] ^= 1
	}

	return &DecodeResult{
		Data:            c.dataBits(corrected),
		Success:         true,
		ErrorsCorrected: len(correction.Positions),
		ErrorPositions:  correction.Positions,
	}, nil
}

// EncodeBatch encodes each data word in order.
func (c *Code) EncodeBatch(words [][]byte) ([][]byte, error) {
	encoded := make([][]byte, len(words))
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
func (c *Code) DecodeBatch(words [][]byte) ([]*DecodeResult, error) {
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

func (c *Code) dataBits(codeword []byte) []byte {
	return append([]byte(nil), codeword[c.parityLen:]...)
}

func checkBits(what string, bits []byte, want int) error {
	if len(bits) != want {
		return fmt.Errorf("%s must be %d bits, got %d", what, want, len(bits))
	}
	for i, b := range bits {
		if b > 1 {
			return fmt.Errorf("%s bit %d must be 0 or 1, got %d", what, i, b)
		}
	}
	return nil
}

// N returns the codeword length in bits.
func (c *Code) N() int { return c.n }

// K returns the data length in bits.
func (c *Code) K() int { return c.k }

// T returns the error-correction capability.
func (c *Code) T() int { return c.t }

// M returns the field extension degree.
func (c *Code) M() int { return c.m }

// ParityLength returns the number of parity bits.
func (c *Code) ParityLength() int { return c.parityLen }

// MinDistance returns the designed minimum distance 2t + 1.
func (c *Code) MinDistance() int { return 2*c.t + 1 }

// Rate returns the code rate k/n.
func (c *Code) Rate() float64 { return float64(c.k) / float64(c.n) }

// Generator returns a copy of the generator polynomial.
func (c *Code) Generator() *galois.Poly { return c.generator.Clone() }

// Field returns the code's field.
func (c *Code) Field() *galois.Field { return c.field }
