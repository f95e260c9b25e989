package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fieldlab/ecc/internal/validation"
	"github.com/fieldlab/ecc/pkg/code/bch"
	"github.com/fieldlab/ecc/pkg/code/reedsolomon"
	"github.com/fieldlab/ecc/pkg/config"
	"github.com/fieldlab/ecc/pkg/galois"
)

// codec wraps a BCH or Reed-Solomon code behind the operations the
// commands share, including parsing and formatting words in the code's
// textual format (bit strings for BCH, symbol lists for Reed-Solomon).
type codec struct {
	kind string
	bch  *bch.Code
	rs   *reedsolomon.Code
}

// codecParams is the JSON shape for code parameter output.
type codecParams struct {
	Kind          string  `json:"code"`
	N             int     `json:"n"`
	K             int     `json:"k"`
	T             int     `json:"t"`
	M             int     `json:"m"`
	ParityLength  int     `json:"parity_length"`
	MinDistance   int     `json:"min_distance"`
	Rate          float64 `json:"rate"`
	Generator     string  `json:"generator"`
	PrimitivePoly uint32  `json:"primitive_poly"`
}

// decodeReport is the JSON shape for decode output.
type decodeReport struct {
	Data            string `json:"data"`
	Success         bool   `json:"success"`
	ErrorsCorrected int    `json:"errors_corrected"`
	ErrorPositions  []int  `json:"error_positions"`
}

// addCodeFlags registers the flags that select which code a command
// operates on, either by named profile or by explicit parameters.
func addCodeFlags(cmd *cobra.Command) {
	cmd.Flags().String("profile", "", "Named code profile from config (e.g. bch-15-2, rs-255-223)")
	cmd.Flags().String("code", "bch", "Code family: bch or rs")
	cmd.Flags().IntP("field", "m", 4, "Field extension degree, symbols live in GF(2^m)")
	cmd.Flags().IntP("capability", "t", 2, "Error-correction capability in symbols")
	cmd.Flags().IntP("length", "n", 0, "Codeword length (Reed-Solomon only, default 2^m-1)")
	cmd.Flags().IntP("data-length", "k", 0, "Data length (Reed-Solomon only, default n-2t)")
}

// resolveCodec builds the codec selected by a command's flags. A --profile
// flag takes precedence over explicit parameters.
func resolveCodec(cmd *cobra.Command) (*codec, error) {
	profileName, _ := cmd.Flags().GetString("profile")
	kind, _ := cmd.Flags().GetString("code")
	m, _ := cmd.Flags().GetInt("field")
	t, _ := cmd.Flags().GetInt("capability")
	n, _ := cmd.Flags().GetInt("length")
	k, _ := cmd.Flags().GetInt("data-length")

	if profileName != "" {
		manager, err := config.NewManager("")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		profile, err := manager.Profile(profileName)
		if err != nil {
			return nil, err
		}
		return codecFromProfile(profile)
	}

	switch kind {
	case "bch":
		c, err := bch.New(m, t)
		if err != nil {
			return nil, fmt.Errorf("failed to build BCH code: %w", err)
		}
		return &codec{kind: "bch", bch: c}, nil
	case "rs":
		if n == 0 {
			n = (1 << m) - 1
		}
		if k == 0 {
			k = n - 2*t
		}
		c, err := reedsolomon.New(n, k, m)
		if err != nil {
			return nil, fmt.Errorf("failed to build Reed-Solomon code: %w", err)
		}
		return &codec{kind: "rs", rs: c}, nil
	default:
		return nil, fmt.Errorf("unknown code family %q, expected bch or rs", kind)
	}
}

func codecFromProfile(p config.Profile) (*codec, error) {
	switch p.Code {
	case "bch":
		var (
			c   *bch.Code
			err error
		)
		if p.PrimitivePoly != 0 {
			c, err = bch.NewWithPolynomial(p.M, p.T, galois.Element(p.PrimitivePoly))
		} else {
			c, err = bch.New(p.M, p.T)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to build BCH code from profile: %w", err)
		}
		return &codec{kind: "bch", bch: c}, nil
	case "rs":
		var (
			c   *reedsolomon.Code
			err error
		)
		if p.PrimitivePoly != 0 {
			c, err = reedsolomon.NewWithPolynomial(p.N, p.K, p.M, galois.Element(p.PrimitivePoly))
		} else {
			c, err = reedsolomon.New(p.N, p.K, p.M)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to build Reed-Solomon code from profile: %w", err)
		}
		return &codec{kind: "rs", rs: c}, nil
	default:
		return nil, fmt.Errorf("profile has unknown code family %q", p.Code)
	}
}

func (c *codec) params() codecParams {
	switch c.kind {
	case "bch":
		return codecParams{
			Kind:          "bch",
			N:             c.bch.N(),
			K:             c.bch.K(),
			T:             c.bch.T(),
			M:             c.bch.M(),
			ParityLength:  c.bch.ParityLength(),
			MinDistance:   c.bch.MinDistance(),
			Rate:          c.bch.Rate(),
			Generator:     c.bch.Generator().String(),
			PrimitivePoly: uint32(c.bch.Field().PrimitivePolynomial()),
		}
	default:
		return codecParams{
			Kind:          "rs",
			N:             c.rs.N(),
			K:             c.rs.K(),
			T:             c.rs.T(),
			M:             c.rs.M(),
			ParityLength:  c.rs.ParityLength(),
			MinDistance:   c.rs.MinDistance(),
			Rate:          c.rs.Rate(),
			Generator:     c.rs.Generator().String(),
			PrimitivePoly: uint32(c.rs.Field().PrimitivePolynomial()),
		}
	}
}

func (c *codec) n() int {
	if c.kind == "bch" {
		return c.bch.N()
	}
	return c.rs.N()
}

// encode parses a data word in the codec's textual format, encodes it, and
// returns the codeword in the same format.
func (c *codec) encode(input string) (string, error) {
	if c.kind == "bch" {
		data, err := validation.ParseBits(input)
		if err != nil {
			return "", err
		}
		codeword, err := c.bch.Encode(data)
		if err != nil {
			return "", err
		}
		return validation.FormatBits(codeword), nil
	}

	symbols, err := validation.ParseSymbols(input, c.rs.M())
	if err != nil {
		return "", err
	}
	codeword, err := c.rs.Encode(toElements(symbols))
	if err != nil {
		return "", err
	}
	return validation.FormatSymbols(fromElements(codeword), c.rs.M()), nil
}

// decode parses a received word, runs error correction, and reports the
// outcome with the recovered data in the codec's textual format.
func (c *codec) decode(input string) (*decodeReport, error) {
	if c.kind == "bch" {
		word, err := validation.ParseBits(input)
		if err != nil {
			return nil, err
		}
		result, err := c.bch.Decode(word)
		if err != nil {
			return nil, err
		}
		return &decodeReport{
			Data:            validation.FormatBits(result.Data),
			Success:         result.Success,
			ErrorsCorrected: result.ErrorsCorrected,
			ErrorPositions:  result.ErrorPositions,
		}, nil
	}

	symbols, err := validation.ParseSymbols(input, c.rs.M())
	if err != nil {
		return nil, err
	}
	result, err := c.rs.Decode(toElements(symbols))
	if err != nil {
		return nil, err
	}
	return &decodeReport{
		Data:            validation.FormatSymbols(fromElements(result.Data), c.rs.M()),
		Success:         result.Success,
		ErrorsCorrected: result.ErrorsCorrected,
		ErrorPositions:  result.ErrorPositions,
	}, nil
}

// corrupt injects errors into a codeword at the given positions. For BCH
// the bits are flipped; for Reed-Solomon each symbol is XORed with the
// matching value (default 1 when no values are given).
func (c *codec) corrupt(input string, positions []int, values []uint32) (string, error) {
	if c.kind == "bch" {
		if values != nil {
			return "", fmt.Errorf("error values only apply to Reed-Solomon codes")
		}
		word, err := validation.ParseBits(input)
		if err != nil {
			return "", err
		}
		if len(word) != c.bch.N() {
			return "", fmt.Errorf("codeword length is %d, expected %d", len(word), c.bch.N())
		}
		for _, p := range positions {
			word[p] ^= 1
		}
		return validation.FormatBits(word), nil
	}

	symbols, err := validation.ParseSymbols(input, c.rs.M())
	if err != nil {
		return "", err
	}
	if len(symbols) != c.rs.N() {
		return "", fmt.Errorf("codeword length is %d, expected %d", len(symbols), c.rs.N())
	}
	if values == nil {
		values = make([]uint32, len(positions))
		for i := range values {
			values[i] = 1
		}
	}
	if len(values) != len(positions) {
		return "", fmt.Errorf("got %d error values for %d positions", len(values), len(positions))
	}
	limit := uint32(1) << c.rs.M()
	for i, v := range values {
		if v == 0 || v >= limit {
			return "", fmt.Errorf("error value %d must be in [1, %d)", v, limit)
		}
		symbols[positions[i]] ^= v
	}
	return validation.FormatSymbols(symbols, c.rs.M()), nil
}

func toElements(symbols []uint32) []galois.Element {
	out := make([]galois.Element, len(symbols))
	for i, s := range symbols {
		out[i] = galois.Element(s)
	}
	return out
}

func fromElements(elements []galois.Element) []uint32 {
	out := make([]uint32, len(elements))
	for i, e := range elements {
		out[i] = uint32(e)
	}
	return out
}

// readWordInteractive prompts for a word when none was supplied via flags.
func readWordInteractive(prompt string) (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		fmt.Print(prompt)
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("input cannot be empty")
	}
	return line, nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printParams(p codecParams) {
	yellow := color.New(color.FgYellow)

	family := "BCH"
	if p.Kind == "rs" {
		family = "Reed-Solomon"
	}

	fmt.Printf("Code:            %s(%d, %d)\n", family, p.N, p.K)
	fmt.Printf("Field:           GF(2^%d), primitive polynomial 0x%X\n", p.M, p.PrimitivePoly)
	fmt.Printf("Corrects:        up to %d errors per word\n", p.T)
	fmt.Printf("Min distance:    %d\n", p.MinDistance)
	fmt.Printf("Parity symbols:  %d\n", p.ParityLength)
	fmt.Printf("Rate:            %.3f\n", p.Rate)
	yellow.Printf("Generator:       %s\n", p.Generator)
}
