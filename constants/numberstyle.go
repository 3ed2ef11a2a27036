package constants

import (
	"strings"
)

// NumberStyle is the numeric convention a document family uses.
type NumberStyle string

const (
	// CommaDecimal: dot thousands, comma decimal ("1.234,56").
	CommaDecimal NumberStyle = "comma-decimal"
	// DotDecimal: comma thousands, dot decimal ("1,234.56").
	DotDecimal NumberStyle = "dot-decimal"
)

// ParseNumberStyle canonicalizes a style name from profiles or config.
func ParseNumberStyle(input string) (NumberStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(CommaDecimal):
		return CommaDecimal, true
	case string(DotDecimal):
		return DotDecimal, true
	}
	return "", false
}
