package aggregate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/comexdesk/invoice-extract/constants"
	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/entity"
	"github.com/comexdesk/invoice-extract/internal/extract"
	"github.com/comexdesk/invoice-extract/internal/layout"
	"github.com/comexdesk/invoice-extract/internal/profiles"
)

// ReadDeclared locates the summary region on a page and reads the declared
// totals from it with the profile's label patterns. An absent summary region
// yields nil totals (the caller falls back to computed sums). Values that
// match a label but fail to parse degrade to absent with a warning.
func ReadDeclared(ix *layout.WordIndex, summary *profiles.CompiledSummary, style constants.NumberStyle) (*entity.DeclaredTotals, []entity.Warning) {
	if summary == nil {
		return nil, nil
	}

	band, err := layout.LocateSection(ix, summary.Start, summary.End)
	if err != nil {
		if errors.Is(err, common.ErrSectionNotFound) {
			return nil, nil
		}
		return nil, []entity.Warning{{
			Code:    entity.WarnInvalidBand,
			Section: "summary",
			Page:    ix.Page().Number,
			Message: err.Error(),
		}}
	}

	lines := ix.LinesWithin(band)
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text()
	}

	var warnings []entity.Warning
	declared := &entity.DeclaredTotals{}
	found := false

	if raw, ok := firstCapture(texts, summary.Amount); ok {
		if value, err := extract.ParseAmount(raw, style); err != nil {
			warnings = append(warnings, declaredWarning(ix, "amount", raw, err))
		} else {
			declared.Amount = &value
			found = true
		}
	}
	if raw, ok := firstCapture(texts, summary.Weight); ok {
		if value, err := extract.ParseAmount(raw, style); err != nil {
			warnings = append(warnings, declaredWarning(ix, "weight", raw, err))
		} else {
			declared.Weight = &value
			found = true
		}
	}
	if raw, ok := firstCapture(texts, summary.Count); ok {
		if value, err := extract.ParseInt(raw); err != nil {
			warnings = append(warnings, declaredWarning(ix, "count", raw, err))
		} else {
			declared.Count = &value
			found = true
		}
	}

	if !found {
		return nil, warnings
	}
	return declared, warnings
}

func firstCapture(texts []string, pattern *regexp.Regexp) (string, bool) {
	if pattern == nil {
		return "", false
	}
	for _, text := range texts {
		if m := pattern.FindStringSubmatch(text); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

func declaredWarning(ix *layout.WordIndex, metric, raw string, err error) entity.Warning {
	return entity.Warning{
		Code:    entity.WarnDeclaredUnparsable,
		Section: "summary",
		Page:    ix.Page().Number,
		Field:   metric,
		Message: fmt.Sprintf("declared %s %q: %v", metric, raw, err),
	}
}
