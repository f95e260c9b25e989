// Package validation checks and parses the textual word formats accepted
// by the CLI: bit strings for BCH words, hex or comma-separated symbol
// lists for Reed-Solomon words, and position lists for deliberate
// corruption.
package validation

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	bitPattern = regexp.MustCompile(`^[01]+$`)
	hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)
)

// ValidateBitString checks that the input is a nonempty string of 0s and 1s.
func ValidateBitString(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("bit string cannot be empty")
	}
	if !bitPattern.MatchString(input) {
		return fmt.Errorf("bit string may contain only 0 and 1")
	}
	return nil
}

// ParseBits converts a bit string into a slice of 0/1 bytes, leftmost
// character first.
func ParseBits(input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if err := ValidateBitString(input); err != nil {
		return nil, err
	}

	bits := make([]byte, len(input))
	for i, ch := range input {
		bits[i] = byte(ch - '0')
	}
	return bits, nil
}

// FormatBits renders a slice of 0/1 bytes as a bit string.
func FormatBits(bits []byte) string {
	var sb strings.Builder
	for _, b := range bits {
		if b == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// ParseSymbols parses a word of GF(2^m) symbols. Two formats are accepted:
// a comma-separated list of decimal values ("12,0,255"), or — for m = 8
// only — a plain hex string where each byte pair is one symbol.
func ParseSymbols(input string, m int) ([]uint32, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("symbol word cannot be empty")
	}

	if !strings.Contains(input, ",") && hexPattern.MatchString(input) && m == 8 {
		if len(input)%2 != 0 {
			return nil, fmt.Errorf("hex symbol string must have even length")
		}
		raw, err := hex.DecodeString(input)
		if err != nil {
			return nil, fmt.Errorf("failed to decode hex symbols: %w", err)
		}
		symbols := make([]uint32, len(raw))
		for i, b := range raw {
			symbols[i] = uint32(b)
		}
		return symbols, nil
	}

	limit := uint32(1) << m
	parts := strings.Split(input, ",")
	symbols := make([]uint32, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("symbol %d: %w", i, err)
		}
		if uint32(v) >= limit {
			return nil, fmt.Errorf("symbol %d is %d, outside GF(2^%d)", i, v, m)
		}
		symbols[i] = uint32(v)
	}
	return symbols, nil
}

// FormatSymbols renders symbols as hex for byte-sized fields and as a
// comma-separated decimal list otherwise.
func FormatSymbols(symbols []uint32, m int) string {
	if m == 8 {
		raw := make([]byte, len(symbols))
		for i, s := range symbols {
			raw[i] = byte(s)
		}
		return hex.EncodeToString(raw)
	}

	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = strconv.FormatUint(uint64(s), 10)
	}
	return strings.Join(parts, ",")
}

// ParsePositions parses a comma-separated list of distinct positions, each
// within [0, n).
func ParsePositions(input string, n int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("position list cannot be empty")
	}

	seen := make(map[int]bool)
	parts := strings.Split(input, ",")
	positions := make([]int, len(parts))
	for i, part := range parts {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		if p < 0 || p >= n {
			return nil, fmt.Errorf("position %d out of range [0, %d)", p, n)
		}
		if seen[p] {
			return nil, fmt.Errorf("position %d listed twice", p)
		}
		seen[p] = true
		positions[i] = p
	}
	return positions, nil
}
