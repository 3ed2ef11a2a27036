package constants

// defaultSummaryKeywords flag rows that summarize rather than itemize.
// Tuned to observed documents; document families can override the set.
var defaultSummaryKeywords = []string{
	"total",
	"subtotal",
	"sub-total",
	"total quantity",
	"total amount",
	"grand total",
	"total geral",
	"soma",
	"carried forward",
}

// DefaultSummaryKeywords returns a copy of the built-in summary keyword set.
func DefaultSummaryKeywords() []string {
	out := make([]string, len(defaultSummaryKeywords))
	copy(out, defaultSummaryKeywords)
	return out
}
