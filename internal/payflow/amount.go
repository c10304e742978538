package payflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders integer cents as the two-decimal string the AMT
// field requires.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	return fmt.Sprintf("%s%d.%02d", sign, whole, frac)
}

// ParseAmount converts a decimal amount string from a response field into
// integer cents.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount string")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return int64(math.Round(f * 100)), nil
}
