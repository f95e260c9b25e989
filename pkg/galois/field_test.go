package galois

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldValidation(t *testing.T) {
	tests := []struct {
		name      string
		m         int
		poly      Element
		wantError bool
	}{
		{
			name: "GF(8) with x^3+x+1",
			m:    3,
			poly: 0x0B,
		},
		{
			name: "GF(16) with x^4+x+1",
			m:    4,
			poly: 0x13,
		},
		{
			name: "GF(256) with 0x11D",
			m:    8,
			poly: 0x11D,
		},
		{
			name:      "m too small",
			m:         1,
			poly:      0x3,
			wantError: true,
		},
		{
			name:      "m too large",
			m:         17,
			poly:      0x3,
			wantError: true,
		},
		{
			name:      "polynomial degree mismatch",
			m:         4,
			poly:      0x0B,
			wantError: true,
		},
		{
			name:      "reducible polynomial x^4+1",
			m:         4,
			poly:      0x11,
			wantError: true,
		},
		{
			name:      "irreducible but not primitive x^4+x^3+x^2+x+1",
			m:         4,
			poly:      0x1F,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewField(tt.m, tt.poly)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, f)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.m, f.M())
				assert.Equal(t, 1<<tt.m, f.Size())
				assert.Equal(t, (1<<tt.m)-1, f.Order())
				assert.Equal(t, tt.poly, f.PrimitivePolynomial())
			}
		})
	}
}

// TestFieldAxioms exhaustively checks the field laws over GF(16):
// additive identity and self-inverse, multiplicative identity and inverse,
// and distributivity.
func TestFieldAxioms(t *testing.T) {
	f, err := NewField(4, 0x13)
	require.NoError(t, err)

	size := Element(f.Size())
	for a := Element(0); a < size; a++ {
		assert.Equal(t, a, f.Add(a, 0))
		assert.Equal(t, Element(0), f.Add(a, a))

		if a != 0 {
			assert.Equal(t, a, f.Multiply(a, 1))
			assert.Equal(t, Element(1), f.Multiply(a, f.Inverse(a)))
			assert.Equal(t, Element(1), f.Divide(a, a))
		}

		for b := Element(0); b < size; b++ {
			assert.Equal(t, f.Multiply(b, a), f.Multiply(a, b))
			for c := Element(0); c < size; c++ {
				left := f.Multiply(a, f.Add(b, c))
				right := f.Add(f.Multiply(a, b), f.Multiply(a, c))
				assert.Equal(t, left, right)
			}
		}
	}
}

// TestGF8Multiply pins the hand-checked GF(8) product: with x^3+x+1,
// 3 = α^3 and 5 = α^6, so 3*5 = α^9 = α^2 = 4.
func TestGF8Multiply(t *testing.T) {
	f, err := NewField(3, 0x0B)
	require.NoError(t, err)

	assert.Equal(t, Element(4), f.Multiply(3, 5))

	// Full GF(8) log table under x^3+x+1.
	wantExp := []Element{1, 2, 4, 3, 6, 7, 5}
	for i, want := range wantExp {
		assert.Equal(t, want, f.Exp(i), "alpha^%d", i)
		assert.Equal(t, i, f.Log(want))
	}
}

func TestDivideAndInverseOfZeroPanic(t *testing.T) {
	f, err := NewField(3, 0x0B)
	require.NoError(t, err)

	assert.Panics(t, func() { f.Divide(3, 0) })
	assert.Panics(t, func() { f.Inverse(0) })
	assert.Panics(t, func() { f.Log(0) })
	assert.Equal(t, Element(0), f.Divide(0, 5))
}

func TestPower(t *testing.T) {
	f, err := NewField(4, 0x13)
	require.NoError(t, err)

	tests := []struct {
		name string
		base Element
		e    int
		want Element
	}{
		{"zero to the zero", 0, 0, 1},
		{"zero to a positive power", 0, 7, 0},
		{"anything to the zero", 9, 0, 1},
		{"alpha first power", 2, 1, 2},
		{"alpha squared", 2, 2, 4},
		{"full group order wraps to one", 2, 15, 1},
		{"exponent beyond the order wraps", 2, 16, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Power(tt.base, tt.e))
		})
	}

	// Negative exponents agree with powers of the inverse.
	for a := Element(1); a < Element(f.Size()); a++ {
		assert.Equal(t, f.Power(f.Inverse(a), 3), f.Power(a, -3))
		assert.Equal(t, Element(1), f.Multiply(f.Power(a, 5), f.Power(a, -5)))
	}
}

func TestExpNegativeIndex(t *testing.T) {
	f, err := NewField(3, 0x0B)
	require.NoError(t, err)

	for i := 0; i < f.Order(); i++ {
		assert.Equal(t, f.Inverse(f.Exp(i)), f.Exp(-i))
	}
}

func TestIsPrimitive(t *testing.T) {
	f, err := NewField(4, 0x13)
	require.NoError(t, err)

	// α = 2 generates GF(16)*; its order-3 and order-5 powers do not.
	assert.True(t, f.IsPrimitive(2))
	assert.False(t, f.IsPrimitive(0))
	assert.False(t, f.IsPrimitive(1))
	assert.False(t, f.IsPrimitive(f.Power(2, 3)))
	assert.False(t, f.IsPrimitive(f.Power(2, 5)))

	count := 0
	for a := Element(0); a < Element(f.Size()); a++ {
		if f.IsPrimitive(a) {
			count++
		}
	}
	// GF(16)* has phi(15) = 8 generators.
	assert.Equal(t, 8, count)
}

func TestDefaultPrimitivePoly(t *testing.T) {
	for m := MinOrder; m <= MaxOrder; m++ {
		poly, err := DefaultPrimitivePoly(m)
		require.NoError(t, err, "m=%d", m)

		f, err := NewField(m, poly)
		require.NoError(t, err, "m=%d poly=0x%X", m, uint32(poly))
		assert.Equal(t, m, f.M())
	}

	_, err := DefaultPrimitivePoly(17)
	assert.Error(t, err)
}

func BenchmarkMultiply(b *testing.B) {
	f, err := NewField(8, 0x11D)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Multiply(Element(i%255+1), Element(i%251+1))
	}
}
