package reedsolomon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlab/ecc/pkg/galois"
)

func TestNewParameters(t *testing.T) {
	tests := []struct {
		name      string
		n, k, m   int
		wantT     int
		wantError bool
	}{
		{name: "RS(15,11) over GF(16)", n: 15, k: 11, m: 4, wantT: 2},
		{name: "RS(255,223) over GF(256)", n: 255, k: 223, m: 8, wantT: 16},
		{name: "RS(255,239) over GF(256)", n: 255, k: 239, m: 8, wantT: 8},
		{name: "shortened RS(12,8) over GF(16)", n: 12, k: 8, m: 4, wantT: 2},
		{name: "length exceeds field", n: 16, k: 8, m: 4, wantError: true},
		{name: "data length too large", n: 15, k: 15, m: 4, wantError: true},
		{name: "single parity symbol cannot correct", n: 15, k: 14, m: 4, wantError: true},
		{name: "unsupported field order", n: 3, k: 1, m: 1, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.n, tt.k, tt.m)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, c.N())
			assert.Equal(t, tt.k, c.K())
			assert.Equal(t, tt.wantT, c.T())
			assert.Equal(t, tt.n-tt.k, c.ParityLength())
			assert.Equal(t, tt.n-tt.k+1, c.MinDistance())
			assert.InDelta(t, float64(tt.k)/float64(tt.n), c.Rate(), 1e-9)
		})
	}
}

func TestGeneratorPolynomial(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	g := c.Generator()
	assert.Equal(t, 4, g.Degree())
	assert.Equal(t, galois.Element(1), g.Coefficient(4), "generator is monic")

	// By construction g vanishes at alpha^1 .. alpha^r and nowhere else
	// among the low powers.
	f := c.Field()
	for i := 1; i <= 4; i++ {
		assert.Equal(t, galois.Element(0), g.Evaluate(f.Exp(i)), "root alpha^%d", i)
	}
	assert.NotEqual(t, galois.Element(0), g.Evaluate(f.Exp(5)))
}

func TestEncodeSystematic(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	data := []galois.Element{1, 5, 0, 9, 14, 2, 7, 0, 3, 11, 6}
	codeword, err := c.Encode(data)
	require.NoError(t, err)

	assert.Len(t, codeword, 15)
	assert.Equal(t, data, codeword[:11])
}

// TestEncodedWordIsMultipleOfGenerator checks the defining property of the
// systematic construction: the codeword polynomial divides cleanly by the
// generator, i.e. every syndrome is zero.
func TestEncodedWordIsMultipleOfGenerator(t *testing.T) {
	c, err := New(15, 9, 4)
	require.NoError(t, err)
	f := c.Field()

	data := []galois.Element{3, 0, 12, 7, 1, 15, 8, 4, 10}
	codeword, err := c.Encode(data)
	require.NoError(t, err)

	// codeword[j] carries the coefficient of degree n-1-j.
	coeffs := make([]galois.Element, 15)
	for j, s := range codeword {
		coeffs[14-j] = s
	}
	poly := galois.NewPoly(f, coeffs)
	for i := 1; i <= c.ParityLength(); i++ {
		assert.Equal(t, galois.Element(0), poly.Evaluate(f.Exp(i)), "syndrome %d", i)
	}
}

func TestEncodeValidation(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	_, err = c.Encode(make([]galois.Element, 10))
	assert.Error(t, err)

	bad := make([]galois.Element, 11)
	bad[3] = 16 // outside GF(16)
	_, err = c.Encode(bad)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		data := make([]galois.Element, 11)
		for i := range data {
			data[i] = galois.Element(rng.Intn(16))
		}

		codeword, err := c.Encode(data)
		require.NoError(t, err)

		result, err := c.Decode(codeword)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 0, result.ErrorsCorrected)
		assert.Equal(t, data, result.Data)
	}
}

// TestSingleErrorEveryPosition corrupts each symbol in turn, with several
// magnitudes, and expects the decoder to name the exact position and
// restore the exact value.
func TestSingleErrorEveryPosition(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	data := []galois.Element{1, 5, 0, 9, 14, 2, 7, 0, 3, 11, 6}
	codeword, err := c.Encode(data)
	require.NoError(t, err)

	for p := 0; p < c.N(); p++ {
		for _, e := range []galois.Element{1, 7, 15} {
			received := append([]galois.Element(nil), codeword...)
			received[p] = c.Field().Add(received[p], e)

			result, err := c.Decode(received)
			require.NoError(t, err)
			assert.True(t, result.Success, "position %d magnitude %d", p, e)
			assert.Equal(t, 1, result.ErrorsCorrected)
			assert.Equal(t, []int{p}, result.ErrorPositions)
			assert.Equal(t, data, result.Data)
		}
	}
}

func TestCorrectsUpToCapability(t *testing.T) {
	c, err := New(255, 223, 8)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	data := make([]galois.Element, 223)
	for i := range data {
		data[i] = galois.Element(rng.Intn(256))
	}
	codeword, err := c.Encode(data)
	require.NoError(t, err)

	// Exactly t = 16 randomly placed symbol errors.
	received := append([]galois.Element(nil), codeword...)
	positions := rng.Perm(255)[:16]
	for _, p := range positions {
		received[p] = galois.Element((int(received[p]) + 1 + rng.Intn(255)) % 256)
	}

	result, err := c.Decode(received)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 16, result.ErrorsCorrected)
	assert.Equal(t, data, result.Data)
}

// TestBeyondCapability injects t+1 errors and requires either a reported
// failure with the received data handed back, or a success whose output
// re-encodes to a valid codeword.
func TestBeyondCapability(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)
	f := c.Field()

	data := []galois.Element{4, 4, 4, 4, 8, 8, 8, 8, 2, 2, 2}
	codeword, err := c.Encode(data)
	require.NoError(t, err)

	for seed := 1; seed < 15; seed++ {
		received := append([]galois.Element(nil), codeword...)
		for i, p := range []int{seed % 15, (seed + 4) % 15, (seed + 9) % 15} {
			received[p] = f.Add(received[p], galois.Element((seed+i)%15+1))
		}

		result, err := c.Decode(received)
		require.NoError(t, err)
		if result.Success {
			reencoded, err := c.Encode(result.Data)
			require.NoError(t, err)
			check, err := c.Decode(reencoded)
			require.NoError(t, err)
			assert.Equal(t, 0, check.ErrorsCorrected)
		} else {
			assert.Equal(t, received[:11], result.Data)
			assert.Empty(t, result.ErrorPositions)
		}
	}
}

func TestShortenedCode(t *testing.T) {
	c, err := New(12, 8, 4)
	require.NoError(t, err)

	data := []galois.Element{9, 1, 0, 15, 3, 3, 7, 12}
	codeword, err := c.Encode(data)
	require.NoError(t, err)
	assert.Equal(t, data, codeword[:8])

	received := append([]galois.Element(nil), codeword...)
	received[1] = c.Field().Add(received[1], 6)
	received[10] = c.Field().Add(received[10], 9)

	result, err := c.Decode(received)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ErrorsCorrected)
	assert.Equal(t, []int{1, 10}, result.ErrorPositions)
	assert.Equal(t, data, result.Data)
}

func TestDecodeValidation(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	_, err = c.Decode(make([]galois.Element, 14))
	assert.Error(t, err)

	bad := make([]galois.Element, 15)
	bad[0] = 99
	_, err = c.Decode(bad)
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	c, err := New(15, 11, 4)
	require.NoError(t, err)

	words := [][]galois.Element{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5},
	}

	encoded, err := c.EncodeBatch(words)
	require.NoError(t, err)
	require.Len(t, encoded, len(words))

	encoded[0][3] = c.Field().Add(encoded[0][3], 5)

	results, err := c.DecodeBatch(encoded)
	require.NoError(t, err)
	for i, result := range results {
		assert.True(t, result.Success)
		assert.Equal(t, words[i], result.Data, "word %d", i)
	}
	assert.Equal(t, 1, results[0].ErrorsCorrected)

	_, err = c.DecodeBatch([][]galois.Element{{1, 2}})
	assert.Error(t, err)
}

func BenchmarkEncode(b *testing.B) {
	c, err := New(255, 223, 8)
	if err != nil {
		b.Fatal(err)
	}

	data := make([]galois.Element, 223)
	for i := range data {
		data[i] = galois.Element(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Encode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeWithErrors(b *testing.B) {
	c, err := New(255, 223, 8)
	if err != nil {
		b.Fatal(err)
	}

	data := make([]galois.Element, 223)
	for i := range data {
		data[i] = galois.Element(i % 256)
	}
	codeword, err := c.Encode(data)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 16; i++ {
		codeword[i*15] = c.Field().Add(codeword[i*15], galois.Element(i+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Decode(codeword); err != nil {
			b.Fatal(err)
		}
	}
}
