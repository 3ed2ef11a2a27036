package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/comexdesk/invoice-extract/constants"
)

var (
	reCurrency   = regexp.MustCompile(`(?i)(R\$|US\$|U\$S|\$|€|£|¥|USD|BRL|EUR)`)
	reGroupedInt = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)
)

// ParseAmount converts locale-formatted numeric text to a decimal under the
// given style. Currency symbols and whitespace are stripped first. Callers
// treat a returned error as a normalization warning, never a failure.
func ParseAmount(raw string, style constants.NumberStyle) (decimal.Decimal, error) {
	cleaned := stripNoise(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty numeric text %q", raw)
	}

	switch style {
	case constants.DotDecimal:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case constants.CommaDecimal:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	default:
		return decimal.Zero, fmt.Errorf("unknown number style %q", style)
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q: %w", raw, err)
	}
	return value, nil
}

// ParseInt converts quantity text to an integer, tolerating thousands
// grouping in either convention.
func ParseInt(raw string) (int, error) {
	cleaned := stripNoise(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty integer text %q", raw)
	}
	if reGroupedInt.MatchString(cleaned) {
		cleaned = strings.Map(func(r rune) rune {
			if r == '.' || r == ',' {
				return -1
			}
			return r
		}, cleaned)
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	return value, nil
}

// CleanText returns a trimmed copy with inner whitespace collapsed.
func CleanText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func stripNoise(raw string) string {
	s := reCurrency.ReplaceAllString(raw, "")
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == ' ' {
			return -1
		}
		return r
	}, s)
}
