// Package galois implements arithmetic over Galois fields GF(2^m) using
// precomputed exponential and logarithm tables, along with polynomials whose
// coefficients live in such a field. Addition is bitwise XOR (the field has
// characteristic 2); multiplication and division reduce to table lookups on
// the discrete logarithm base the primitive element α.
package galois

import "fmt"

// Element is a field element: an unsigned integer in [0, 2^m) encoding a
// polynomial over GF(2) modulo the field's primitive polynomial.
type Element uint32

// Supported field orders. GF(2^2) is the smallest field with a nontrivial
// multiplicative group; 2^16 keeps the lookup tables at a sane size.
const (
	MinOrder = 2
	MaxOrder = 16
)

// Field represents GF(2^m). The exp and log tables are built once at
// construction and never mutated afterwards, so a single Field may be shared
// read-only across concurrent encoders and decoders without locking.
type Field struct {
	m        int
	size     int // 2^m
	order    int // 2^m - 1, the order of the multiplicative group
	primPoly Element
	exp      []Element
	log      []int
}

// NewField builds GF(2^m) from a degree-m primitive polynomial over GF(2),
// given as an integer with bit i set for the x^i term (e.g. 0x0B encodes
// x^3 + x + 1). It returns an error if m is out of range, the polynomial
// does not have degree m, or the polynomial is not primitive.
func NewField(m int, primPoly Element) (*Field, error) {
	if m < MinOrder || m > MaxOrder {
		return nil, fmt.Errorf("field order m must be between %d and %d, got %d", MinOrder, MaxOrder, m)
	}

	size := 1 << m
	if primPoly>>m != 1 {
		return nil, fmt.Errorf("primitive polynomial 0x%X must have degree %d", uint32(primPoly), m)
	}

	f := &Field{
		m:        m,
		size:     size,
		order:    size - 1,
		primPoly: primPoly,
		exp:      make([]Element, size),
		log:      make([]int, size),
	}

	// Walk the powers of α = x: shift left by one bit per step and reduce
	// modulo the primitive polynomial whenever the degree reaches m. A
	// primitive polynomial makes this walk visit every nonzero element
	// exactly once before returning to 1.
	x := Element(1)
	for i := 0; i < f.order; i++ {
		if x == 1 && i != 0 {
			return nil, fmt.Errorf("polynomial 0x%X is not primitive over GF(2)", uint32(primPoly))
		}
		f.exp[i] = x
		f.log[x] = i

		x <<= 1
		if x&Element(size) != 0 {
			x ^= primPoly
		}
	}
	if x != 1 {
		return nil, fmt.Errorf("polynomial 0x%X is not primitive over GF(2)", uint32(primPoly))
	}

	// log[0] is undefined; it stays 0 and must never be consulted.
	return f, nil
}

// M returns the field's extension degree m.
func (f *Field) M() int { return f.m }

// Size returns the number of field elements, 2^m.
func (f *Field) Size() int { return f.size }

// Order returns the order of the multiplicative group, 2^m - 1.
func (f *Field) Order() int { return f.order }

// PrimitivePolynomial returns the polynomial the field was built from.
func (f *Field) PrimitivePolynomial() Element { return f.primPoly }

// Primitive returns the primitive element α (always x, i.e. 2, for the
// table construction used here).
func (f *Field) Primitive() Element { return 2 }

// Add returns a + b. Addition in characteristic 2 is XOR.
func (f *Field) Add(a, b Element) Element { return a ^ b }

// Sub returns a - b, which equals a + b in characteristic 2.
func (f *Field) Sub(a, b Element) Element { return a ^ b }

// Multiply returns a * b. Zero is absorbing; otherwise the product is
// exp[(log a + log b) mod 2^m-1].
func (f *Field) Multiply(a, b Element) Element {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(f.log[a]+f.log[b])%f.order]
}

// Divide returns a / b. Dividing by zero is a caller bug and panics.
func (f *Field) Divide(a, b Element) Element {
	if b == 0 {
		panic("galois: division by zero")
	}
	if a == 0 {
		return 0
	}
	return f.exp[(f.log[a]-f.log[b]+f.order)%f.order]
}

// Inverse returns the multiplicative inverse of a. Zero has no inverse;
// asking for one is a caller bug and panics.
func (f *Field) Inverse(a Element) Element {
	if a == 0 {
		panic("galois: inverse of zero")
	}
	return f.exp[(f.order-f.log[a])%f.order]
}

// Power returns base^e. By convention Power(0, 0) = 1 and Power(0, e) = 0
// for e > 0. Negative exponents invert the base first.
func (f *Field) Power(base Element, e int) Element {
	if base == 0 {
		if e == 0 {
			return 1
		}
		return 0
	}
	if e < 0 {
		base = f.Inverse(base)
		e = -e
	}
	return f.exp[(f.log[base]*(e%f.order))%f.order]
}

// Exp returns α^i, reducing i modulo the group order.
func (f *Field) Exp(i int) Element {
	i %= f.order
	if i < 0 {
		i += f.order
	}
	return f.exp[i]
}

// Log returns the base-α logarithm of a. The logarithm of zero is
// undefined and panics.
func (f *Field) Log(a Element) int {
	if a == 0 {
		panic("galois: log of zero")
	}
	return f.log[a]
}

// IsPrimitive reports whether alpha generates the full multiplicative
// group, i.e. its order is exactly 2^m - 1. It multiplies repeatedly and
// checks that 1 is not reached before the last step.
func (f *Field) IsPrimitive(alpha Element) bool {
	if alpha <= 1 || int(alpha) >= f.size {
		return false
	}

	current := alpha
	for i := 1; i < f.order; i++ {
		if current == 1 {
			return false
		}
		current = f.Multiply(current, alpha)
	}
	return current == 1
}

// DefaultPrimitivePoly returns a standard primitive polynomial for GF(2^m).
// These match the polynomials commonly used in coding applications, e.g.
// 0x11D (x^8 + x^4 + x^3 + x^2 + 1) for GF(256).
func DefaultPrimitivePoly(m int) (Element, error) {
	polys := map[int]Element{
		2:  0x7,     // x^2 + x + 1
		3:  0x0B,    // x^3 + x + 1
		4:  0x13,    // x^4 + x + 1
		5:  0x25,    // x^5 + x^2 + 1
		6:  0x43,    // x^6 + x + 1
		7:  0x89,    // x^7 + x^3 + 1
		8:  0x11D,   // x^8 + x^4 + x^3 + x^2 + 1
		9:  0x211,   // x^9 + x^4 + 1
		10: 0x409,   // x^10 + x^3 + 1
		11: 0x805,   // x^11 + x^2 + 1
		12: 0x1053,  // x^12 + x^6 + x^4 + x + 1
		13: 0x201B,  // x^13 + x^4 + x^3 + x + 1
		14: 0x4443,  // x^14 + x^10 + x^6 + x + 1
		15: 0x8003,  // x^15 + x + 1
		16: 0x1100B, // x^16 + x^12 + x^3 + x + 1
	}

	poly, ok := polys[m]
	if !ok {
		return 0, fmt.Errorf("no default primitive polynomial for m=%d", m)
	}
	return poly, nil
}
